package blogservice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/iosebkhe/blog-list-full-stack/internal/common"
)

var (
	ErrUserForeignKey = errors.New("user_id does not exist")
	ErrForbidden      = errors.New("only the creator can delete a blog")
)

func NewBlogService(repo Repository, mb common.MessageProducer, logger *slog.Logger) *BlogService {
	return &BlogService{
		repo:   repo,
		mb:     mb,
		logger: logger,
	}
}

type CreateBlogRequest struct {
	Title  string
	Author string
	URL    string
	Likes  *int
	UserID string
}

// ListBlogs returns every blog with its owner populated.
func (s *BlogService) ListBlogs(ctx context.Context) ([]Blog, error) {
	return s.repo.ListBlogs(ctx)
}

// GetBlog returns a blog by its ID.
func (s *BlogService) GetBlog(ctx context.Context, id string) (*Blog, error) {
	return s.repo.GetBlog(ctx, id)
}

// CreateBlog stores a blog owned by req.UserID and appends it to the owner's blog list.
// The two writes are not atomic: if linking fails the blog stays stored but unlinked.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	b := &Blog{
		Title:  sanitizeText(req.Title),
		Author: sanitizeText(req.Author),
		URL:    req.URL,
		UserID: req.UserID,
	}
	if req.Likes != nil {
		b.Likes = *req.Likes
	}

	v := common.NewValidator("blog")
	validateTitle(v, b.Title)
	validateAuthor(v, b.Author)
	validateURL(v, b.URL)
	validateLikes(v, b.Likes)
	v.Check(b.UserID != "", "user", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.repo.InsertBlog(ctx, b)
	if err != nil {
		return nil, err
	}

	err = s.repo.LinkUserBlog(ctx, b.UserID, b.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, common.BlogCreatedKey, b)

	return b, nil
}

// UpdateBlog replaces the fields set in patch. Ownership is not checked.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, patch BlogPatch) (*Blog, error) {
	v := common.NewValidator("blog")
	if patch.Title != nil {
		title := sanitizeText(*patch.Title)
		patch.Title = &title
		validateTitle(v, title)
	}
	if patch.Author != nil {
		author := sanitizeText(*patch.Author)
		patch.Author = &author
		validateAuthor(v, author)
	}
	if patch.URL != nil {
		validateURL(v, *patch.URL)
	}
	if patch.Likes != nil {
		validateLikes(v, *patch.Likes)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.repo.UpdateBlog(ctx, id, patch)
}

// DeleteBlog deletes a blog. Only the user who created the blog can delete it.
func (s *BlogService) DeleteBlog(ctx context.Context, id, userID string) error {
	b, err := s.repo.GetBlog(ctx, id)
	if err != nil {
		return err
	}

	if b.UserID == "" || b.UserID != userID {
		return ErrForbidden
	}

	err = s.repo.DeleteBlog(ctx, id)
	if err != nil {
		return err
	}

	err = s.repo.UnlinkUserBlog(ctx, b.UserID, b.ID)
	if err != nil && !errors.Is(err, common.ErrRecordNotFound) {
		return err
	}

	s.publish(ctx, common.BlogDeletedKey, b)

	return nil
}

// publish is best effort; the write it reports has already happened.
func (s *BlogService) publish(ctx context.Context, key common.BindingKey, b *Blog) {
	event := common.BlogEvent{
		BlogID: b.ID,
		Title:  b.Title,
		Author: b.Author,
		URL:    b.URL,
		UserID: b.UserID,
	}
	if b.User != nil {
		event.Username = b.User.Username
	}

	msg, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("could not encode blog event", slog.String("error", err.Error()))
		return
	}

	err = s.mb.Publish(ctx, msg, key, common.BlogExchange)
	if err != nil {
		s.logger.Error("could not publish blog event", slog.String("key", string(key)), slog.String("blog_id", b.ID), slog.String("error", err.Error()))
	}
}
