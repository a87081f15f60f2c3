package blogservice

import (
	"context"

	"github.com/iosebkhe/blog-list-full-stack/internal/common"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListBlogs(ctx context.Context) ([]Blog, error) {
	args := m.Called(ctx)
	blogs, _ := args.Get(0).([]Blog)
	return blogs, args.Error(1)
}

func (m *MockRepository) GetBlog(ctx context.Context, id string) (*Blog, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*Blog)
	return b, args.Error(1)
}

func (m *MockRepository) InsertBlog(ctx context.Context, b *Blog) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepository) UpdateBlog(ctx context.Context, id string, patch BlogPatch) (*Blog, error) {
	args := m.Called(ctx, id, patch)
	b, _ := args.Get(0).(*Blog)
	return b, args.Error(1)
}

func (m *MockRepository) DeleteBlog(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) LinkUserBlog(ctx context.Context, userID, blogID string) error {
	args := m.Called(ctx, userID, blogID)
	return args.Error(0)
}

func (m *MockRepository) UnlinkUserBlog(ctx context.Context, userID, blogID string) error {
	args := m.Called(ctx, userID, blogID)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	args := m.Called(ctx, msg, key, exchange)
	return args.Error(0)
}
