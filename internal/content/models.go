package content

import "github.com/NikolayFrontendDeveloper/picChatServer/internal/model"

type CreatePostRequest struct {
	User     model.UserID `json:"user"`
	Text     string       `json:"text,omitempty"`
	ImageURL string       `json:"imageUrl"`
}

type DeletePostRequest struct {
	Token    model.UserID `json:"token"`
	ImageURL string       `json:"imageUrl"`
}

// LikeRequest addresses a post by its owner's username plus the image key;
// Token is the liker.
type LikeRequest struct {
	User     model.Username `json:"user"`
	Token    model.UserID   `json:"token"`
	ImageURL string         `json:"imageUrl"`
}

type AddCommentRequest struct {
	User     model.Username `json:"user"`
	Token    model.UserID   `json:"token"`
	ImageURL string         `json:"imageUrl"`
	Text     string         `json:"text"`
}

// CommentRequest addresses a comment three levels deep: owner username,
// image key, comment id. Token is the requester (liker or author).
type CommentRequest struct {
	User     model.Username `json:"user"`
	Token    model.UserID   `json:"token"`
	ImageURL string         `json:"imageUrl"`
	ID       string         `json:"id"`
}
