package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iosebkhe/blog-list-full-stack/internal/common"
	"github.com/iosebkhe/blog-list-full-stack/internal/platform/mongodb"
	"github.com/iosebkhe/blog-list-full-stack/internal/platform/postgres"
)

const testSecret = "test-secret"

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func newTestConfig() *Config {
	return &Config{
		Environment:    "testing",
		Version:        "test",
		TrustedOrigins: []string{"http://localhost:5173"},
		Secret:         testSecret,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// newTestApplication builds an application over a fresh container of the given backend.
// It returns the application and an id that is well formed for that backend but unused.
func newTestApplication(t *testing.T, driver string) (*application, string) {
	t.Helper()

	var (
		st     store
		unused string
	)

	switch driver {
	case storePostgres:
		db := common.TestDB("file://../../migrations", t)
		st = postgres.NewStore(db)
		unused = uuid.NewString()
	default:
		client := common.TestMongo(t)
		s := mongodb.NewStore(client.Database("bloglist_test"))
		require.NoError(t, s.EnsureIndexes(context.Background()))
		st = s
		unused = primitive.NewObjectID().Hex()
	}

	cfg := newTestConfig()
	cfg.StoreDriver = driver

	return newApplication(cfg, newTestLogger(), st, common.DiscardProducer{}), unused
}

// readResponse decodes the body into dst unless dst is nil.
func readResponse(t *testing.T, res *http.Response, dst any) (int, http.Header) {
	t.Helper()
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	if dst != nil {
		require.NoError(t, json.Unmarshal(responseBody, dst), "body: %s", responseBody)
	}

	return res.StatusCode, res.Header
}

func (ts *testServer) do(t *testing.T, method, path string, payload any, token string, dst any) (int, http.Header) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)

	return readResponse(t, res, dst)
}

func (ts *testServer) get(t *testing.T, path string, dst any) (int, http.Header) {
	return ts.do(t, http.MethodGet, path, nil, "", dst)
}

func (ts *testServer) post(t *testing.T, path string, payload any, token string, dst any) (int, http.Header) {
	return ts.do(t, http.MethodPost, path, payload, token, dst)
}

func (ts *testServer) put(t *testing.T, path string, payload any, dst any) (int, http.Header) {
	return ts.do(t, http.MethodPut, path, payload, "", dst)
}

func (ts *testServer) delete(t *testing.T, path string, token string, dst any) (int, http.Header) {
	return ts.do(t, http.MethodDelete, path, nil, token, dst)
}
