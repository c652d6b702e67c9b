package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/velvetkeys/inkpost/internal/authservice"
	"github.com/velvetkeys/inkpost/internal/common"
	"github.com/velvetkeys/inkpost/internal/mediaservice"
	"github.com/velvetkeys/inkpost/internal/newsletterservice"
	"github.com/velvetkeys/inkpost/internal/postservice"
	"github.com/velvetkeys/inkpost/internal/store"
)

const (
	testAdminUsername = "admin"
	testAdminPassword = "Sup3r_secret!"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cache := common.NewCache(0, 0)

	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	return newTestApplicationWithStore(t, st, logger, cache)
}

func newTestApplicationWithStore(t *testing.T, st store.Store, logger *slog.Logger, cache *common.Cache) *application {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	gate, err := authservice.New(authservice.Config{
		Username: testAdminUsername,
		Secret:   string(hash),
		Mode:     authservice.ModeSession,
	}, cache, logger)
	require.NoError(t, err)

	uploadDir := t.TempDir()
	uploader, err := mediaservice.NewDiskUploader(uploadDir, "/uploads")
	require.NoError(t, err)

	cfg := &Config{
		Port:             ":0",
		Environment:      "testing",
		Version:          "test",
		UploadBackend:    "disk",
		UploadDir:        uploadDir,
		RateLimitEnabled: false,
	}

	return &application{
		config:            cfg,
		logger:            logger,
		gate:              gate,
		postService:       postservice.NewPostService(st, cache, nil, logger),
		newsletterService: newsletterservice.NewNewsletterService(st),
		mediaService:      mediaservice.NewMediaService(uploader),
	}
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	// the client keeps cookies so a login carries over to later requests
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	ts.Client().Jar = jar

	return &testServer{ts}
}

// do sends a request with an optional JSON body and decodes the JSON
// response envelope.
func (ts *testServer) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var env map[string]any
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &env))
	}

	return res.StatusCode, env
}

func (ts *testServer) login(t *testing.T) {
	t.Helper()

	status, _ := ts.do(t, http.MethodPost, "/api/login", map[string]string{
		"username": testAdminUsername,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, status)
}
