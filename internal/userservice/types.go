package userservice

import (
	"context"
	"time"
)

type UserService struct {
	repo   Repository
	tokens *TokenIssuer
}

// Repository is the persistence the user service needs. Implementations live in
// internal/platform.
type Repository interface {
	InsertUser(ctx context.Context, u *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Password Password  `json:"-"`
	Blogs    []BlogRef `json:"blogs"`
}

// BlogRef is the summary of a blog shown inside a user.
type BlogRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

type Password struct {
	Plain string `json:"-"`
	Hash  []byte `json:"-"`
}

// Identity is what a verified token says about the caller.
type Identity struct {
	ID       string
	Username string
}

var (
	AnonymousIdentity = Identity{}
)

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}
