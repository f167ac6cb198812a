package server

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"sosintake/internal/utils"
	"sosintake/pkg/types"

	"github.com/google/uuid"
)

const (
	photosField     = "photos"
	multipartMemory = 32 << 20
	persistTimeout  = 30 * time.Second
	cleanupTimeout  = 10 * time.Second
)

type submissionForm struct {
	FirstName           string   `form:"firstName"`
	LastName            string   `form:"lastName"`
	OthersName          []string `form:"othersName"`
	Email               string   `form:"email"`
	PhoneNumber         string   `form:"phoneNumber"`
	LocationDescription string   `form:"locationDescription"`
	Need                string   `form:"need"`
	OtherNeed           string   `form:"otherNeed"`
	USCitizen           string   `form:"usCitizen"`
	Latitude            string   `form:"latitude"`
	Longitude           string   `form:"longitude"`
}

func (s *Service) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.handleMethodNotAllowed(w, r)
		return
	}

	if s.config.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	}

	err := r.ParseMultipartForm(multipartMemory)
	if err != nil {
		s.logger.WithError(err).Debug("failed to parse multipart form")
		s.writeError(w, newRequestError(KindMalformedBody, err.Error()))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			s.logger.WithError(err).Warn("failed to remove multipart temp files")
		}
	}()

	submission, photos, rerr := parseSubmission(r.MultipartForm)
	if rerr != nil {
		s.writeError(w, rerr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), persistTimeout)
	defer cancel()

	keys, err := s.storePhotos(ctx, photos)
	if err != nil {
		s.logger.WithError(err).WithField("stored", len(keys)).Error("failed to store photos")
		s.removePhotos(r.Context(), keys)
		s.writeError(w, newRequestError(KindPersistence, msgPersistence))
		return
	}

	submission.PhotoURLs = types.JoinList(keys)
	submission.CreatedAt = time.Now().Unix()

	err = s.submissions.CreateSubmission(ctx, submission)
	if err != nil {
		s.logger.WithError(err).WithField("photos", len(keys)).Error("failed to insert sos request")
		s.removePhotos(r.Context(), keys)
		s.writeError(w, newRequestError(KindPersistence, msgPersistence))
		return
	}

	s.logger.WithField("submission_id", submission.ID).
		WithField("photos", len(keys)).
		Info("sos request saved")

	if s.notifier != nil {
		s.notifier.Notify(r.Context(), submission)
	}

	s.writeJSON(w, http.StatusOK, envelope{Success: true, Message: msgSaved})
}

// parseSubmission validates the form and returns the record to persist along
// with the photo parts still to be stored. Nothing is written here.
func parseSubmission(mf *multipart.Form) (*types.Submission, []*multipart.FileHeader, *requestError) {
	if mf == nil || (len(mf.Value) == 0 && len(mf.File) == 0) {
		return nil, nil, newRequestError(KindEmptyForm, msgEmptyForm)
	}

	var f submissionForm
	if err := decoder.Decode(&f, url.Values(mf.Value)); err != nil {
		return nil, nil, newRequestError(KindMalformedBody, err.Error())
	}

	email := utils.NilIfEmpty(f.Email)
	if email != nil {
		if err := validate.Var(*email, "email"); err != nil {
			return nil, nil, newRequestError(KindInvalidEmail, msgInvalidEmail)
		}
	}

	citizen := types.CitizenStatus(valueOr(f.USCitizen, string(types.CitizenStatusNo)))
	if !citizen.Valid() {
		return nil, nil, newRequestError(KindInvalidCitizenStatus, msgInvalidCitizen)
	}

	// Unnamed parts, which browsers send for an empty file input, are parsed
	// as plain values and never show up here.
	photos := mf.File[photosField]
	if len(photos) > types.MaxPhotos {
		return nil, nil, newRequestError(KindTooManyPhotos, msgTooManyPhotos)
	}

	submission := &types.Submission{
		FirstName:           valueOr(f.FirstName, ""),
		LastName:            valueOr(f.LastName, ""),
		OthersName:          types.JoinList(f.OthersName),
		Email:               email,
		PhoneNumber:         valueOr(f.PhoneNumber, ""),
		LocationDescription: valueOr(f.LocationDescription, ""),
		Need:                valueOr(f.Need, ""),
		OtherNeed:           valueOr(f.OtherNeed, ""),
		USCitizen:           citizen,
		Latitude:            coordinate(f.Latitude),
		Longitude:           coordinate(f.Longitude),
	}

	return submission, photos, nil
}

// valueOr returns def when the field was missing or left blank.
func valueOr(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func coordinate(value string) *string {
	if value == types.LocationNotRetrieved {
		return nil
	}
	return utils.NilIfEmpty(value)
}

// storePhotos writes each photo under a fresh identifier, one at a time. On
// failure it returns the keys written so far so the caller can clean up.
func (s *Service) storePhotos(ctx context.Context, photos []*multipart.FileHeader) ([]string, error) {
	keys := make([]string, 0, len(photos))

	for _, fh := range photos {
		key := uuid.NewString()

		data, err := readPart(fh)
		if err != nil {
			return keys, fmt.Errorf("failed to read photo %q: %w", fh.Filename, err)
		}

		err = s.blobs.Put(ctx, key, fh.Header.Get("Content-Type"), data)
		if err != nil {
			return keys, fmt.Errorf("failed to store photo %q: %w", fh.Filename, err)
		}

		keys = append(keys, key)
	}

	return keys, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// removePhotos is a best effort rollback of photos written by a request that
// ultimately failed.
func (s *Service) removePhotos(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		if err := s.blobs.Delete(ctx, key); err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("failed to remove orphaned photo")
		}
	}
}
