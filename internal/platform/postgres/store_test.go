package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/iosebkhe/blog-list-full-stack/internal/blogservice"
	"github.com/iosebkhe/blog-list-full-stack/internal/common"
	"github.com/iosebkhe/blog-list-full-stack/internal/userservice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string {
	return &s
}

func intptr(i int) *int {
	return &i
}

func setupTestEnvironment(t *testing.T) (*Store, *sql.DB) {
	db := common.TestDB("file://../../../migrations", t)

	return NewStore(db), db
}

func createTestUser(t *testing.T, s *Store, username string) *userservice.User {
	t.Helper()

	u := &userservice.User{Username: username, Name: "Test " + username, Password: userservice.Password{Hash: []byte("hash")}}
	require.NoError(t, s.InsertUser(context.Background(), u))

	return u
}

func createTestBlog(t *testing.T, s *Store, userID, title string) *blogservice.Blog {
	t.Helper()

	b := &blogservice.Blog{Title: title, Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 7, UserID: userID}
	require.NoError(t, s.InsertBlog(context.Background(), b))
	require.NoError(t, s.LinkUserBlog(context.Background(), userID, b.ID))

	return b
}

func TestUsers(t *testing.T) {
	s, _ := setupTestEnvironment(t)
	ctx := context.Background()

	root := createTestUser(t, s, "root")
	_, err := uuid.Parse(root.ID)
	require.NoError(t, err)

	err = s.InsertUser(ctx, &userservice.User{Username: "root", Password: userservice.Password{Hash: []byte("hash")}})
	assert.Equal(t, userservice.ErrDuplicateUsername, err)

	testCases := []struct {
		name        string
		username    string
		expectedErr error
	}{
		{name: "existing user", username: "root"},
		{name: "missing user", username: "nobody", expectedErr: common.ErrRecordNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := s.GetUserByUsername(ctx, tc.username)
			assert.Equal(t, tc.expectedErr, err)

			if tc.expectedErr == nil {
				require.NotNil(t, u)
				assert.Equal(t, root.ID, u.ID)
				assert.Equal(t, "Test root", u.Name)
				assert.Equal(t, []byte("hash"), u.Password.Hash)
				assert.Empty(t, u.Blogs)
			}
		})
	}
}

func TestBlogs(t *testing.T) {
	s, db := setupTestEnvironment(t)
	ctx := context.Background()

	root := createTestUser(t, s, "root")

	t.Run("insert", func(t *testing.T) {
		testCases := []struct {
			name        string
			userID      string
			expectedErr error
		}{
			{name: "existing owner", userID: root.ID},
			{name: "unknown owner", userID: uuid.NewString(), expectedErr: blogservice.ErrUserForeignKey},
			{name: "malformed owner", userID: "123", expectedErr: blogservice.ErrUserForeignKey},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				b := &blogservice.Blog{Title: "Type wars", URL: "http://blog.cleancoder.com/uncle-bob/2016/05/01/TypeWars.html", UserID: tc.userID}

				err := s.InsertBlog(ctx, b)
				assert.Equal(t, tc.expectedErr, err)

				if tc.expectedErr == nil {
					assert.NotEmpty(t, b.ID)
					assert.Equal(t, &blogservice.Owner{ID: root.ID, Username: "root", Name: "Test root"}, b.User)
					require.NoError(t, s.DeleteBlog(ctx, b.ID))
				}
			})
		}
	})

	first := createTestBlog(t, s, root.ID, "React patterns")

	// a legacy blog stored without an owner
	_, err := db.ExecContext(ctx, `INSERT INTO blogs (title, url) VALUES ('orphan', 'http://example.com')`)
	require.NoError(t, err)

	t.Run("list", func(t *testing.T) {
		blogs, err := s.ListBlogs(ctx)
		require.NoError(t, err)
		require.Len(t, blogs, 2)

		var owned, orphan blogservice.Blog
		for _, b := range blogs {
			if b.ID == first.ID {
				owned = b
			} else {
				orphan = b
			}
		}

		assert.Equal(t, root.ID, owned.UserID)
		require.NotNil(t, owned.User)
		assert.Equal(t, "root", owned.User.Username)
		assert.Equal(t, 7, owned.Likes)

		assert.Equal(t, "orphan", orphan.Title)
		assert.Empty(t, orphan.UserID)
		assert.Nil(t, orphan.User)
	})

	t.Run("get", func(t *testing.T) {
		testCases := []struct {
			name        string
			id          string
			expectedErr error
		}{
			{name: "existing blog", id: first.ID},
			{name: "missing blog", id: uuid.NewString(), expectedErr: common.ErrRecordNotFound},
			{name: "malformed id", id: "5a3d5da59070081a82a3445", expectedErr: common.ErrMalformedID},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				b, err := s.GetBlog(ctx, tc.id)
				assert.Equal(t, tc.expectedErr, err)

				if tc.expectedErr == nil {
					require.NotNil(t, b)
					assert.Equal(t, "React patterns", b.Title)
					assert.Equal(t, root.ID, b.UserID)
				}
			})
		}
	})

	t.Run("update", func(t *testing.T) {
		b, err := s.UpdateBlog(ctx, first.ID, blogservice.BlogPatch{URL: strptr("https://example.com/updated"), Likes: intptr(8)})
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/updated", b.URL)
		assert.Equal(t, 8, b.Likes)
		assert.Equal(t, "React patterns", b.Title)
		assert.Equal(t, "root", b.User.Username)

		unchanged, err := s.UpdateBlog(ctx, first.ID, blogservice.BlogPatch{})
		require.NoError(t, err)
		assert.Equal(t, b, unchanged)

		_, err = s.UpdateBlog(ctx, uuid.NewString(), blogservice.BlogPatch{Title: strptr("x")})
		assert.Equal(t, common.ErrRecordNotFound, err)

		_, err = s.UpdateBlog(ctx, "zzz", blogservice.BlogPatch{Title: strptr("x")})
		assert.Equal(t, common.ErrMalformedID, err)
	})
}

func TestDeleteAndUnlinkBlog(t *testing.T) {
	s, _ := setupTestEnvironment(t)
	ctx := context.Background()

	root := createTestUser(t, s, "root")
	keep := createTestBlog(t, s, root.ID, "React patterns")
	remove := createTestBlog(t, s, root.ID, "Type wars")

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, []userservice.BlogRef{
		{ID: keep.ID, Title: keep.Title, Author: keep.Author, URL: keep.URL},
		{ID: remove.ID, Title: remove.Title, Author: remove.Author, URL: remove.URL},
	}, users[0].Blogs)

	require.NoError(t, s.UnlinkUserBlog(ctx, root.ID, remove.ID))
	require.NoError(t, s.DeleteBlog(ctx, remove.ID))

	users, err = s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []userservice.BlogRef{{ID: keep.ID, Title: keep.Title, Author: keep.Author, URL: keep.URL}}, users[0].Blogs)

	assert.Equal(t, common.ErrRecordNotFound, s.DeleteBlog(ctx, remove.ID))
	assert.Equal(t, common.ErrRecordNotFound, s.UnlinkUserBlog(ctx, root.ID, remove.ID))
	assert.Equal(t, common.ErrRecordNotFound, s.LinkUserBlog(ctx, uuid.NewString(), keep.ID))
}
