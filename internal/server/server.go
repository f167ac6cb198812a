package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"sosintake/internal/notify"
	"sosintake/internal/storage"
	"sosintake/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var (
	decoder  = form.NewDecoder()
	validate = validator.New()
)

// SubmissionStore persists accepted requests
type SubmissionStore interface {
	CreateSubmission(ctx context.Context, submission *types.Submission) error
	Ping(ctx context.Context) error
}

type Service struct {
	logger      *logrus.Logger
	config      *types.Config
	blobs       storage.BlobStore
	submissions SubmissionStore

	// nil when no webhook targets are configured
	notifier notify.Notifier

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	blobs storage.BlobStore,
	submissions SubmissionStore,
	notifier notify.Notifier,
) (*Service, error) {
	if blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if submissions == nil {
		return nil, fmt.Errorf("submission store is required")
	}

	mux := flow.New()

	s := &Service{
		logger:      logger,
		config:      config,
		blobs:       blobs,
		submissions: submissions,
		notifier:    notifier,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	// Wrapped outside the mux so unmatched paths are logged and redirected too
	s.server.Handler = s.LoggingMiddleware(s.StripTrailingSlash(mux))

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed handler, mainly for tests.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

// The submission endpoint answers the common methods itself so non-POST
// requests get the JSON envelope. Any other method reaches
// handleMethodNotAllowed through the router.
var submitMethods = []string{
	http.MethodPost,
	http.MethodGet,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.MethodNotAllowed = http.HandlerFunc(s.handleMethodNotAllowed)

	r.HandleFunc("/submit", s.handleSubmit, submitMethods...)
	r.HandleFunc("/uploads/:id", s.handleGetUpload, http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
}

// handleMethodNotAllowed replaces the router's plain-text 405 so a method
// mismatch is reported in the same envelope as every other request error.
func (s *Service) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, newRequestError(KindMethodNotAllowed, fmt.Sprintf("%s is not allowed on this endpoint", r.Method)))
}
