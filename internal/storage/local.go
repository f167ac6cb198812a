package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sosintake/pkg/types"
)

const metaSuffix = ".meta.json"

// LocalStorage keeps blobs on disk for development. The content type is stored
// in a JSON sidecar next to each blob.
type LocalStorage struct {
	basePath string
}

type localMeta struct {
	ContentType string `json:"contentType"`
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

func (s *LocalStorage) Put(_ context.Context, key, contentType string, data []byte) error {
	blobPath, err := s.safeJoin(key)
	if err != nil {
		return err
	}

	meta, err := json.Marshal(localMeta{ContentType: contentTypeOrDefault(contentType)})
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	if err := os.WriteFile(blobPath+metaSuffix, meta, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := os.WriteFile(blobPath, data, 0644); err != nil {
		_ = os.Remove(blobPath + metaSuffix)
		return fmt.Errorf("failed to write blob: %w", err)
	}

	return nil
}

func (s *LocalStorage) Get(_ context.Context, key string) (*Blob, error) {
	blobPath, err := s.safeJoin(key)
	if err != nil {
		return nil, types.ErrBlobNotFound
	}

	rawMeta, err := os.ReadFile(blobPath + metaSuffix)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, types.ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var meta localMeta
	if err := json.Unmarshal(rawMeta, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}

	f, err := os.Open(blobPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, types.ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat blob: %w", err)
	}

	return &Blob{
		Key:         key,
		ContentType: contentTypeOrDefault(meta.ContentType),
		Size:        info.Size(),
		Body:        f,
	}, nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	blobPath, err := s.safeJoin(key)
	if err != nil {
		return err
	}

	if err := os.Remove(blobPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.ErrBlobNotFound
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	if err := os.Remove(blobPath + metaSuffix); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete metadata: %w", err)
	}

	return nil
}

// safeJoin resolves key inside basePath and rejects directory traversal.
func (s *LocalStorage) safeJoin(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}

	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, key))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}
