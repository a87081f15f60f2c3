package main

import (
	"context"
	"net/http"

	"github.com/iosebkhe/blog-list-full-stack/internal/userservice"
)

type contextKey string

const identityContextKey = contextKey("identity")

func (app *application) createIdentityContext(r *http.Request, identity *userservice.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityContextKey, identity)
	return r.WithContext(ctx)
}

// getIdentityContext returns the anonymous identity when authenticate did not run.
func (app *application) getIdentityContext(r *http.Request) *userservice.Identity {
	identity, ok := r.Context().Value(identityContextKey).(*userservice.Identity)
	if !ok {
		return &userservice.AnonymousIdentity
	}
	return identity
}
