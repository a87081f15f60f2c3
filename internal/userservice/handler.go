package userservice

import (
	"context"
	"errors"

	"github.com/iosebkhe/blog-list-full-stack/internal/common"
)

var (
	ErrDuplicateUsername     = errors.New("duplicate username")
	ErrAuthenticationFailure = errors.New("invalid username or password")
)

func NewUserService(repo Repository, tokens *TokenIssuer) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
	}
}

// CreateUser creates a new user account with an empty blog list.
func (s *UserService) CreateUser(ctx context.Context, username, name, password string) (*User, error) {
	v := common.NewValidator("user")
	validateUsername(v, username)
	validateName(v, name)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Name:     name,
		Blogs:    []BlogRef{},
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.repo.InsertUser(ctx, &u)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateUsername):
			v.AddError("username", "must be unique")
			return nil, v.ValidationError()
		default:
			return nil, err
		}
	}

	return &u, nil
}

// ListUsers returns every user with the blogs they created.
func (s *UserService) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// LoginUser checks the credentials and returns a signed access token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*LoginResult, error) {
	v := common.NewValidator("login")
	v.Check(username != "", "username", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

// GetIdentityByToken verifies an access token and returns who it was issued to.
func (s *UserService) GetIdentityByToken(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	return &Identity{
		ID:       claims.UserID,
		Username: claims.Username,
	}, nil
}

func (i *Identity) IsAnonymous() bool {
	return i == &AnonymousIdentity
}
