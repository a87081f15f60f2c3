package postgres

import (
	"context"

	"github.com/iosebkhe/blog-list-full-stack/internal/userservice"
)

func (s *Store) InsertUser(ctx context.Context, u *userservice.User) error {
	query := `
		INSERT INTO users (username, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query, u.Username, u.Name, u.Password.Hash).Scan(&u.ID)
	if err != nil {
		switch {
		case constraintError(err, uniqueViolationCode, "users_username_key"):
			return userservice.ErrDuplicateUsername
		default:
			return err
		}
	}

	return nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*userservice.User, error) {
	query := `
		SELECT id, username, name, password_hash
		FROM users
		WHERE username = $1`

	var u userservice.User

	err := s.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Name, &u.Password.Hash)
	if err != nil {
		return nil, mapError(err)
	}

	refs, err := s.blogRefs(ctx, `WHERE ub.user_id = $1`, u.ID)
	if err != nil {
		return nil, err
	}

	u.Blogs = refs[u.ID]
	if u.Blogs == nil {
		u.Blogs = []userservice.BlogRef{}
	}

	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]userservice.User, error) {
	query := `
		SELECT id, username, name
		FROM users
		ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []userservice.User{}
	for rows.Next() {
		var u userservice.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs, err := s.blogRefs(ctx, "")
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].Blogs = refs[users[i].ID]
		if users[i].Blogs == nil {
			users[i].Blogs = []userservice.BlogRef{}
		}
	}

	return users, nil
}

// blogRefs returns the linked blogs grouped by user id, each list in link order.
func (s *Store) blogRefs(ctx context.Context, where string, args ...any) (map[string][]userservice.BlogRef, error) {
	query := `
		SELECT ub.user_id, b.id, b.title, b.author, b.url
		FROM user_blogs ub
		JOIN blogs b ON b.id = ub.blog_id
		` + where + `
		ORDER BY ub.position`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make(map[string][]userservice.BlogRef)
	for rows.Next() {
		var (
			userID string
			ref    userservice.BlogRef
		)
		if err := rows.Scan(&userID, &ref.ID, &ref.Title, &ref.Author, &ref.URL); err != nil {
			return nil, err
		}
		refs[userID] = append(refs[userID], ref)
	}

	return refs, rows.Err()
}
