package blogservice

import (
	"context"
	"log/slog"

	"github.com/iosebkhe/blog-list-full-stack/internal/common"
)

type Blog struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	// UserID is the owner. Empty for blogs stored without one.
	UserID string `json:"-"`
	User   *Owner `json:"user,omitempty"`
}

// Owner is the populated view of the user a blog belongs to.
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// BlogPatch holds the fields an update replaces. Nil fields are left untouched.
type BlogPatch struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
}

// Repository is the persistence the blog service needs. Every method taking an
// id returns common.ErrMalformedID when the id cannot be parsed and
// common.ErrRecordNotFound when nothing matches.
type Repository interface {
	ListBlogs(ctx context.Context) ([]Blog, error)
	GetBlog(ctx context.Context, id string) (*Blog, error)
	// InsertBlog sets b.ID and b.User. It returns ErrUserForeignKey when b.UserID does not exist.
	InsertBlog(ctx context.Context, b *Blog) error
	UpdateBlog(ctx context.Context, id string, patch BlogPatch) (*Blog, error)
	DeleteBlog(ctx context.Context, id string) error
	LinkUserBlog(ctx context.Context, userID, blogID string) error
	UnlinkUserBlog(ctx context.Context, userID, blogID string) error
}

type BlogService struct {
	repo   Repository
	mb     common.MessageProducer
	logger *slog.Logger
}
