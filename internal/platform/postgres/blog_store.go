package postgres

import (
	"context"
	"database/sql"

	"github.com/iosebkhe/blog-list-full-stack/internal/blogservice"
	"github.com/iosebkhe/blog-list-full-stack/internal/common"
)

const selectBlogs = `
	SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, u.username, u.name
	FROM blogs b
	LEFT JOIN users u ON u.id = b.user_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanBlog(row scanner) (*blogservice.Blog, error) {
	var (
		b                      blogservice.Blog
		userID, username, name sql.NullString
	)

	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &userID, &username, &name)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		b.UserID = userID.String
		b.User = &blogservice.Owner{ID: userID.String, Username: username.String, Name: name.String}
	}

	return &b, nil
}

func (s *Store) ListBlogs(ctx context.Context) ([]blogservice.Blog, error) {
	query := selectBlogs + `
		ORDER BY b.created_at, b.id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []blogservice.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (s *Store) GetBlog(ctx context.Context, id string) (*blogservice.Blog, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	query := selectBlogs + `
		WHERE b.id = $1`

	b, err := scanBlog(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}

	return b, nil
}

func (s *Store) InsertBlog(ctx context.Context, b *blogservice.Blog) error {
	userID, err := parseID(b.UserID)
	if err != nil {
		return blogservice.ErrUserForeignKey
	}

	query := `
		WITH inserted AS (
			INSERT INTO blogs (title, author, url, likes, user_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, user_id
		)
		SELECT i.id, u.username, u.name
		FROM inserted i
		JOIN users u ON u.id = i.user_id`

	owner := blogservice.Owner{ID: userID}

	err = s.db.QueryRowContext(ctx, query, b.Title, b.Author, b.URL, b.Likes, userID).Scan(&b.ID, &owner.Username, &owner.Name)
	if err != nil {
		switch {
		case constraintError(err, foreignKeyViolationCode, "blogs_user_id_fkey"):
			return blogservice.ErrUserForeignKey
		default:
			return err
		}
	}

	b.UserID = userID
	b.User = &owner

	return nil
}

func (s *Store) UpdateBlog(ctx context.Context, id string, patch blogservice.BlogPatch) (*blogservice.Blog, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE blogs
		SET title = COALESCE($2, title),
			author = COALESCE($3, author),
			url = COALESCE($4, url),
			likes = COALESCE($5, likes)
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id, patch.Title, patch.Author, patch.URL, patch.Likes)
	if err != nil {
		return nil, err
	}

	if err := checkRowsAffected(res); err != nil {
		return nil, err
	}

	return s.GetBlog(ctx, id)
}

func (s *Store) DeleteBlog(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return checkRowsAffected(res)
}

// LinkUserBlog appends the blog to the user's list. Linking twice is a no-op.
func (s *Store) LinkUserBlog(ctx context.Context, userID, blogID string) error {
	userID, err := parseID(userID)
	if err != nil {
		return common.ErrRecordNotFound
	}

	blogID, err = parseID(blogID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_blogs (user_id, blog_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	_, err = s.db.ExecContext(ctx, query, userID, blogID)
	if err != nil {
		switch {
		case constraintError(err, foreignKeyViolationCode, "user_blogs_user_id_fkey"):
			return common.ErrRecordNotFound
		case constraintError(err, foreignKeyViolationCode, "user_blogs_blog_id_fkey"):
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

// UnlinkUserBlog removes the blog from the user's list. Deleting a blog already
// drops its links through the cascade, so a missing link reports ErrRecordNotFound.
func (s *Store) UnlinkUserBlog(ctx context.Context, userID, blogID string) error {
	userID, err := parseID(userID)
	if err != nil {
		return common.ErrRecordNotFound
	}

	blogID, err = parseID(blogID)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM user_blogs WHERE user_id = $1 AND blog_id = $2`, userID, blogID)
	if err != nil {
		return err
	}

	return checkRowsAffected(res)
}
