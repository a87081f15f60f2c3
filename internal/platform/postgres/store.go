package postgres

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/iosebkhe/blog-list-full-stack/internal/blogservice"
	"github.com/iosebkhe/blog-list-full-stack/internal/common"
	"github.com/iosebkhe/blog-list-full-stack/internal/userservice"
	"github.com/lib/pq"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

type Store struct {
	db *sql.DB
}

var (
	_ userservice.Repository = (*Store)(nil)
	_ blogservice.Repository = (*Store)(nil)
)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// constraintError reports whether err is a pq error with the given code on the named constraint.
func constraintError(err error, code, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code && pqErr.Constraint == name
	}

	return false
}

func parseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", common.ErrMalformedID
	}

	return u.String(), nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return common.ErrRecordNotFound
	default:
		return err
	}
}

func checkRowsAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}
