package account

import "github.com/NikolayFrontendDeveloper/picChatServer/internal/model"

type CredentialsRequest struct {
	Username model.Username `json:"username"`
	Password string         `json:"password"`
}

type TokenRequest struct {
	Token model.UserID `json:"token"`
}

type SubscribeRequest struct {
	Token       model.UserID `json:"token"`
	TargetToken model.UserID `json:"targetToken"`
}

type AvatarRequest struct {
	Token    model.UserID `json:"token"`
	ImageURL string       `json:"imageUrl"`
}

type FavoriteRequest struct {
	Token     model.UserID `json:"token"`
	PostToken model.UserID `json:"postToken"`
	ImageURL  string       `json:"imageUrl"`
}
