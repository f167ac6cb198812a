package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"sosintake/internal/notify"
	"sosintake/internal/storage"
	"sosintake/pkg/types"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type memBlob struct {
	contentType string
	data        []byte
}

// memBlobStore is an in-memory storage.BlobStore that records write order.
type memBlobStore struct {
	mu      sync.Mutex
	blobs   map[string]memBlob
	puts    []string
	deletes []string

	// failPutAt makes the n-th Put (1-based) fail
	failPutAt int
	getErr    error
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string]memBlob)}
}

func (m *memBlobStore) Put(_ context.Context, key, contentType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failPutAt > 0 && len(m.puts)+1 == m.failPutAt {
		return errors.New("bucket unavailable")
	}

	if contentType == "" {
		contentType = storage.DefaultContentType
	}
	m.blobs[key] = memBlob{contentType: contentType, data: append([]byte(nil), data...)}
	m.puts = append(m.puts, key)
	return nil
}

func (m *memBlobStore) Get(_ context.Context, key string) (*storage.Blob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}

	b, ok := m.blobs[key]
	if !ok {
		return nil, types.ErrBlobNotFound
	}
	return &storage.Blob{
		Key:         key,
		ContentType: b.contentType,
		Size:        int64(len(b.data)),
		Body:        io.NopCloser(bytes.NewReader(b.data)),
	}, nil
}

func (m *memBlobStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletes = append(m.deletes, key)
	if _, ok := m.blobs[key]; !ok {
		return types.ErrBlobNotFound
	}
	delete(m.blobs, key)
	return nil
}

func (m *memBlobStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}

type fakeSubmissions struct {
	mu      sync.Mutex
	rows    []*types.Submission
	err     error
	pingErr error
}

func (f *fakeSubmissions) CreateSubmission(_ context.Context, submission *types.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	submission.ID = fmt.Sprintf("row-%d", len(f.rows)+1)
	f.rows = append(f.rows, submission)
	return nil
}

func (f *fakeSubmissions) Ping(context.Context) error {
	return f.pingErr
}

func (f *fakeSubmissions) inserted() []*types.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*types.Submission(nil), f.rows...)
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []*types.Submission
}

func (r *recordingNotifier) Notify(_ context.Context, submission *types.Submission) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, submission)
}

type testEnv struct {
	service     *Service
	blobs       *memBlobStore
	submissions *fakeSubmissions
}

func newTestEnv(t *testing.T, notifier notify.Notifier) *testEnv {
	t.Helper()

	logger, _ := test.NewNullLogger()
	blobs := newMemBlobStore()
	submissions := &fakeSubmissions{}

	config := &types.Config{
		ServerPort:     8080,
		MaxUploadBytes: 10 << 20,
		PublicBaseURL:  "http://localhost:8080",
	}

	service, err := New(config, logger, blobs, submissions, notifier)
	require.NoError(t, err)

	return &testEnv{service: service, blobs: blobs, submissions: submissions}
}

func (e *testEnv) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.service.Handler().ServeHTTP(rec, r)
	return rec
}

type field struct {
	name  string
	value string
}

type photo struct {
	filename    string
	contentType string
	data        []byte
}

func newSubmitRequest(t *testing.T, fields []field, photos []photo) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for _, f := range fields {
		require.NoError(t, mw.WriteField(f.name, f.value))
	}

	for _, p := range photos {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photos"; filename="%s"`, p.filename))
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		}
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(p.data)
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/submit", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func jpegPhoto(name string) photo {
	return photo{filename: name, contentType: "image/jpeg", data: []byte("jpeg:" + name)}
}
