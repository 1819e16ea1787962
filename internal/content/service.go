package content

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/model"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/shared/apperr"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/store"
)

// Service owns every mutation of the embedded post/comment/like sequences.
//
// All of these are read-modify-write cycles over one document field. Two
// concurrent mutations of the same sequence can lose an update to each
// other; the store's conditional nested updates narrow the window but the
// model itself accepts the race.
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

// CreatePost appends a post to the owner's sequence with a server-assigned
// timestamp. ImageURL is the post's key within the owner; uniqueness there
// is the caller's concern, as the image host hands out distinct URLs.
func (s *Service) CreatePost(ctx context.Context, owner model.UserID, text, imageURL string) error {
	if _, err := s.users.FindByID(ctx, owner); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "user not found")
		}
		return apperr.Store(err, "internal server error during creating post")
	}
	post := model.Post{
		Text:     text,
		Token:    owner,
		ImageURL: imageURL,
		Time:     s.now(),
	}
	if err := s.users.PushToField(ctx, owner, "posts", post); err != nil {
		return apperr.Store(err, "internal server error during creating post")
	}
	return nil
}

// DeletePost removes by value-match on imageUrl. The owner id itself is the
// only authorization; deleting an absent key is a no-op success.
func (s *Service) DeletePost(ctx context.Context, owner model.UserID, imageURL string) error {
	u, err := s.users.FindByID(ctx, owner)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "user not found")
		}
		return apperr.Store(err, "internal server error during deleting post")
	}

	kept := make([]model.Post, 0, len(u.Posts))
	for _, p := range u.Posts {
		if p.ImageURL != imageURL {
			kept = append(kept, p)
		}
	}

	if _, err := s.users.SetField(ctx, owner, "posts", kept); err != nil {
		return apperr.Store(err, "internal server error during deleting post")
	}
	return nil
}

// LikePost appends the liker unconditionally: the same account liking twice
// counts twice. The owner is addressed by username, not id.
func (s *Service) LikePost(ctx context.Context, owner model.Username, liker model.UserID, imageURL string) error {
	post, err := s.findPost(ctx, owner, imageURL, "liking post")
	if err != nil {
		return err
	}

	likes := append(post.Likes, liker)
	return s.writePostLikes(ctx, owner, imageURL, likes, "liking post")
}

// UnlikePost removes the first occurrence of the liker only; absent is a
// no-op success.
func (s *Service) UnlikePost(ctx context.Context, owner model.Username, liker model.UserID, imageURL string) error {
	post, err := s.findPost(ctx, owner, imageURL, "unliking post")
	if err != nil {
		return err
	}

	return s.writePostLikes(ctx, owner, imageURL, removeFirst(post.Likes, liker), "unliking post")
}

// AddComment resolves the commenter by id to denormalize their display name
// into the comment, then the post by (owner username, imageUrl). The new
// comment's generated id is returned.
func (s *Service) AddComment(ctx context.Context, owner model.Username, commenter model.UserID, imageURL, text string) (string, error) {
	author, err := s.users.FindByID(ctx, commenter)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apperr.New(apperr.KindNotFound, "poster not found")
		}
		return "", apperr.Store(err, "internal server error during adding comment")
	}

	post, err := s.findPost(ctx, owner, imageURL, "adding comment")
	if err != nil {
		return "", err
	}

	comment := model.Comment{
		ID:       uuid.NewString(),
		Token:    commenter,
		Username: author.Username,
		Text:     text,
	}
	comments := append(post.Comments, comment)

	matched, err := s.users.SetPostField(ctx, owner, imageURL, "comments", comments)
	if err != nil {
		return "", apperr.Store(err, "internal server error during adding comment")
	}
	if matched == 0 {
		return "", apperr.New(apperr.KindNotFound, "post not found")
	}
	return comment.ID, nil
}

// RemoveComment deletes the comment only when the requester is its author.
// A missing comment and a foreign comment collapse into one response so the
// caller cannot probe which it was.
func (s *Service) RemoveComment(ctx context.Context, owner model.Username, requester model.UserID, imageURL, commentID string) error {
	post, err := s.findPost(ctx, owner, imageURL, "removing comment")
	if err != nil {
		return err
	}

	idx := -1
	for i, cm := range post.Comments {
		if cm.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 || post.Comments[idx].Token != requester {
		return apperr.New(apperr.KindNotFound, "comment not found or not authorized to delete")
	}

	comments := append(append([]model.Comment{}, post.Comments[:idx]...), post.Comments[idx+1:]...)

	matched, err := s.users.SetPostField(ctx, owner, imageURL, "comments", comments)
	if err != nil {
		return apperr.Store(err, "internal server error during removing comment")
	}
	if matched == 0 {
		return apperr.New(apperr.KindNotFound, "post not found")
	}
	return nil
}

// LikeComment appends the liker to a comment's like list; same duplicate
// policy as post likes.
func (s *Service) LikeComment(ctx context.Context, owner model.Username, liker model.UserID, imageURL, commentID string) error {
	_, comment, err := s.findComment(ctx, owner, imageURL, commentID, "liking post")
	if err != nil {
		return err
	}

	likes := append(comment.Likes, liker)
	return s.writeCommentLikes(ctx, owner, imageURL, commentID, likes, "liking post")
}

// UnlikeComment removes the first occurrence only.
func (s *Service) UnlikeComment(ctx context.Context, owner model.Username, liker model.UserID, imageURL, commentID string) error {
	_, comment, err := s.findComment(ctx, owner, imageURL, commentID, "unliking post")
	if err != nil {
		return err
	}

	return s.writeCommentLikes(ctx, owner, imageURL, commentID, removeFirst(comment.Likes, liker), "unliking post")
}

func (s *Service) findPost(ctx context.Context, owner model.Username, imageURL, op string) (*model.Post, error) {
	u, err := s.users.FindByUsername(ctx, owner)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "user not found")
		}
		return nil, apperr.Store(err, "internal server error during "+op)
	}
	for i := range u.Posts {
		if u.Posts[i].ImageURL == imageURL {
			return &u.Posts[i], nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "post not found")
}

func (s *Service) findComment(ctx context.Context, owner model.Username, imageURL, commentID, op string) (*model.Post, *model.Comment, error) {
	post, err := s.findPost(ctx, owner, imageURL, op)
	if err != nil {
		return nil, nil, err
	}
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			return post, &post.Comments[i], nil
		}
	}
	return nil, nil, apperr.New(apperr.KindNotFound, "comment not found")
}

func (s *Service) writePostLikes(ctx context.Context, owner model.Username, imageURL string, likes []model.UserID, op string) error {
	matched, err := s.users.SetPostField(ctx, owner, imageURL, "likes", likes)
	if err != nil {
		return apperr.Store(err, "internal server error during "+op)
	}
	if matched == 0 {
		// the post vanished between lookup and write
		return apperr.New(apperr.KindNotFound, "post not found")
	}
	return nil
}

func (s *Service) writeCommentLikes(ctx context.Context, owner model.Username, imageURL, commentID string, likes []model.UserID, op string) error {
	matched, err := s.users.SetCommentField(ctx, owner, imageURL, commentID, "likes", likes)
	if err != nil {
		return apperr.Store(err, "internal server error during "+op)
	}
	if matched == 0 {
		return apperr.New(apperr.KindNotFound, "post not found")
	}
	return nil
}

func removeFirst(ids []model.UserID, drop model.UserID) []model.UserID {
	for i, id := range ids {
		if id == drop {
			return append(append([]model.UserID{}, ids[:i]...), ids[i+1:]...)
		}
	}
	return ids
}
