package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"sosintake/pkg/types"

	"github.com/google/uuid"
)

func (s *Service) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key, ok := normalizeBlobKey(r.PathValue("id"))
	if !ok {
		s.writeImageNotFound(w)
		return
	}

	blob, err := s.blobs.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, types.ErrBlobNotFound) {
			s.logger.WithError(err).WithField("key", key).Error("failed to fetch photo")
		}
		s.writeImageNotFound(w)
		return
	}
	defer blob.Body.Close()

	w.Header().Set("Content-Type", blob.ContentType)
	if blob.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, blob.Body); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("failed to stream photo")
	}
}

func (s *Service) writeImageNotFound(w http.ResponseWriter) {
	s.writePlainText(w, KindNotFound.Status(), msgImageNotFound)
}

// normalizeBlobKey trims and lowercases the identifier, which the router has
// already unescaped. Keys are always generated as canonical lowercase UUIDs,
// so anything else cannot exist.
func normalizeBlobKey(raw string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))

	parsed, err := uuid.Parse(key)
	if err != nil || parsed.String() != key {
		return "", false
	}

	return key, true
}
