package account

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/model"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/shared/apperr"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/store"
)

type Service struct {
	users store.UserStore
	now   func() int64
}

func NewService(users store.UserStore) *Service {
	return &Service{
		users: users,
		now:   func() int64 { return time.Now().UnixMilli() },
	}
}

// Create registers a new account. Username uniqueness is enforced by the
// store's unique constraint, so two concurrent signups cannot both win.
func (s *Service) Create(ctx context.Context, username model.Username, password string) (model.UserID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Store(err, "internal server error during signup")
	}

	id, err := s.users.Insert(ctx, &model.User{
		Username: username,
		Password: string(hash),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return "", apperr.New(apperr.KindConflict, "user already exists")
		}
		return "", apperr.Store(err, "internal server error during signup")
	}
	return id, nil
}

// Authenticate keeps the three-outcome contract: unknown username, wrong
// password, or the account id.
func (s *Service) Authenticate(ctx context.Context, username model.Username, password string) (model.UserID, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apperr.New(apperr.KindNotFound, "user doesn't exist")
		}
		return "", apperr.Store(err, "internal server error during login")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", apperr.New(apperr.KindUnauthorized, "incorrect password")
	}
	return u.UserID(), nil
}

// Fetch returns the full account document, embedded posts included; profile
// views are served from this without field filtering. The credential hash is
// blanked before the document leaves the service.
func (s *Service) Fetch(ctx context.Context, id model.UserID) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "user not found")
		}
		return nil, apperr.Store(err, "internal server error during getting users data")
	}
	u.Password = ""
	return u, nil
}

func (s *Service) FetchAll(ctx context.Context) ([]model.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, apperr.Store(err, "internal server error during fetching data")
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// Subscribe appends the edge on both sides with two independent writes and
// no rollback: if the mirrored write fails the graph stays asymmetric.
// Neither side's existence is checked, and duplicate edges are possible.
func (s *Service) Subscribe(ctx context.Context, subscriber, target model.UserID) error {
	if err := s.users.PushToField(ctx, subscriber, "subscriptions", target); err != nil {
		return apperr.Store(err, "internal server error during adding subscriptions list")
	}
	if err := s.users.PushToField(ctx, target, "subscribers", subscriber); err != nil {
		return apperr.Store(err, "internal server error during adding subscriptions list")
	}
	return nil
}

// Unsubscribe recomputes both sequences by value and writes them back.
// Removing an edge that is not there is a no-op success.
func (s *Service) Unsubscribe(ctx context.Context, subscriber, target model.UserID) error {
	sub, err := s.users.FindByID(ctx, subscriber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "user not found")
		}
		return apperr.Store(err, "internal server error during adding subscriptions list")
	}
	tgt, err := s.users.FindByID(ctx, target)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "target user not found")
		}
		return apperr.Store(err, "internal server error during adding subscriptions list")
	}

	subscriptions := removeID(sub.Subscriptions, target)
	subscribers := removeID(tgt.Subscribers, subscriber)

	if _, err := s.users.SetField(ctx, subscriber, "subscriptions", subscriptions); err != nil {
		return apperr.Store(err, "internal server error during adding subscriptions list")
	}
	if _, err := s.users.SetField(ctx, target, "subscribers", subscribers); err != nil {
		return apperr.Store(err, "internal server error during adding subscriptions list")
	}
	return nil
}

func (s *Service) SetAvatar(ctx context.Context, id model.UserID, imageURL string) error {
	return s.writeAvatar(ctx, id, imageURL)
}

func (s *Service) ClearAvatar(ctx context.Context, id model.UserID) error {
	return s.writeAvatar(ctx, id, "")
}

func (s *Service) writeAvatar(ctx context.Context, id model.UserID, imageURL string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "user not found")
		}
		return apperr.Store(err, "internal server error during creating ava")
	}
	matched, err := s.users.SetField(ctx, id, "avaUrl", imageURL)
	if err != nil {
		return apperr.Store(err, "internal server error during creating ava")
	}
	if matched == 0 {
		return apperr.New(apperr.KindStoreFailure, "failed to update avatar")
	}
	return nil
}

// AddFavorite appends a timestamped entry. The referenced post is not
// checked for existence and duplicates are allowed; a favorite is a copy,
// not a reference.
func (s *Service) AddFavorite(ctx context.Context, id, postToken model.UserID, imageURL string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "user not found")
		}
		return apperr.Store(err, "internal server error during creating post")
	}
	entry := model.FavoriteEntry{
		PostToken: postToken,
		ImageURL:  imageURL,
		Time:      s.now(),
	}
	if err := s.users.PushToField(ctx, id, "favoritePosts", entry); err != nil {
		return apperr.Store(err, "internal server error during creating post")
	}
	return nil
}

// RemoveFavorite filters out entries matching the exact pair; an absent
// match is a silent no-op.
func (s *Service) RemoveFavorite(ctx context.Context, id, postToken model.UserID, imageURL string) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "user not found")
		}
		return apperr.Store(err, "internal server error during deleting post from favorite")
	}

	kept := make([]model.FavoriteEntry, 0, len(u.FavoritePosts))
	for _, entry := range u.FavoritePosts {
		if entry.PostToken == postToken && entry.ImageURL == imageURL {
			continue
		}
		kept = append(kept, entry)
	}

	if _, err := s.users.SetField(ctx, id, "favoritePosts", kept); err != nil {
		return apperr.Store(err, "internal server error during deleting post from favorite")
	}
	return nil
}

func removeID(ids []model.UserID, drop model.UserID) []model.UserID {
	kept := make([]model.UserID, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			kept = append(kept, id)
		}
	}
	return kept
}
