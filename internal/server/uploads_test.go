package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storedKey = "3f2c1e9a-7b4d-4c1a-9e2f-5d6b7a8c9d0e"

func assertImageNotFound(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Image not found. Please check and try again", rec.Body.String())
}

func TestGetUpload(t *testing.T) {
	env := newTestEnv(t, nil)
	require.NoError(t, env.blobs.Put(context.Background(), storedKey, "image/webp", []byte("webp bytes")))

	rec := env.do(httptest.NewRequest(http.MethodGet, "/uploads/"+storedKey, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/webp", rec.Header().Get("Content-Type"))
	assert.Equal(t, "10", rec.Header().Get("Content-Length"))
	assert.Equal(t, "webp bytes", rec.Body.String())
}

func TestGetUploadNormalizesKey(t *testing.T) {
	env := newTestEnv(t, nil)
	require.NoError(t, env.blobs.Put(context.Background(), storedKey, "image/png", []byte("png")))

	for _, path := range []string{
		"/uploads/" + strings.ToUpper(storedKey),
		"/uploads/%20" + storedKey + "%20",
	} {
		rec := env.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "png", rec.Body.String(), path)
	}
}

func TestGetUploadDecodesKeyOnce(t *testing.T) {
	env := newTestEnv(t, nil)
	require.NoError(t, env.blobs.Put(context.Background(), storedKey, "image/png", []byte("png")))

	// %2520 decodes to a literal "%20", which is not whitespace
	assertImageNotFound(t, env.do(httptest.NewRequest(http.MethodGet, "/uploads/%2520"+storedKey, nil)))
}

func TestUploadRejectsOtherMethods(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(httptest.NewRequest(http.MethodPost, "/uploads/"+storedKey, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "POST is not allowed on this endpoint", body.Message)
}

func TestGetUploadNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	assertImageNotFound(t, env.do(httptest.NewRequest(http.MethodGet, "/uploads/"+storedKey, nil)))
}

func TestGetUploadRejectsNonUUID(t *testing.T) {
	env := newTestEnv(t, nil)
	require.NoError(t, env.blobs.Put(context.Background(), "not-a-uuid", "image/png", []byte("png")))

	for _, key := range []string{"not-a-uuid", "..", "{" + storedKey + "}", "urn:uuid:" + storedKey} {
		assertImageNotFound(t, env.do(httptest.NewRequest(http.MethodGet, "/uploads/"+key, nil)))
	}
}

func TestGetUploadStoreError(t *testing.T) {
	env := newTestEnv(t, nil)
	env.blobs.getErr = errors.New("connection refused")

	assertImageNotFound(t, env.do(httptest.NewRequest(http.MethodGet, "/uploads/"+storedKey, nil)))
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)

	env.submissions.pingErr = errors.New("down")
	rec = env.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, msgDatabaseDown, body.Message)
}

func TestNewRequiresStores(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := New(env.service.config, env.service.logger, nil, env.submissions, nil)
	assert.Error(t, err)

	_, err = New(env.service.config, env.service.logger, env.blobs, nil, nil)
	assert.Error(t, err)
}
