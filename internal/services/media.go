package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"fitcoach-backend-go/internal/models"
	"fitcoach-backend-go/internal/store"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	uploadsBucket   = "uploads"
	sniffLen        = 3072
	defaultMaxBytes = 10 << 20
)

type MediaService struct {
	*deps
	root     string
	maxBytes int64
}

type UploadInput struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

func EnsureStoragePath(base string, parts ...string) (string, error) {
	dir := filepath.Join(append([]string{base}, parts...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Save stores an uploaded image under uploads/<owner>/ and records it.
// The declared content type decides unless it is missing or generic, in
// which case the bytes are sniffed.
func (s *MediaService) Save(ctx context.Context, caller Identity, in UploadInput) (models.MediaAsset, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return models.MediaAsset{}, WrapError(err, "read upload")
	}
	head = head[:n]
	if n == 0 {
		return models.MediaAsset{}, ErrBadRequest("File is empty")
	}

	detected := mimetype.Detect(head)
	contentType := strings.ToLower(strings.TrimSpace(in.ContentType))
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = detected.String()
		if i := strings.Index(contentType, ";"); i >= 0 {
			contentType = contentType[:i]
		}
	}
	if !strings.HasPrefix(contentType, "image/") {
		return models.MediaAsset{}, ErrBadRequest("File type not allowed")
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	if strings.HasPrefix(detected.String(), "image/") {
		ext = detected.Extension()
	}

	assetID := uuid.NewString()
	storagePath := path.Join(uploadsBucket, caller.UserID, assetID+ext)
	dir, err := EnsureStoragePath(s.root, uploadsBucket, caller.UserID)
	if err != nil {
		return models.MediaAsset{}, WrapError(err, "storage path")
	}
	targetPath := filepath.Join(dir, assetID+ext)

	file, err := os.Create(targetPath)
	if err != nil {
		return models.MediaAsset{}, WrapError(err, "create file")
	}
	limit := s.maxBytes
	if limit <= 0 {
		limit = defaultMaxBytes
	}
	hasher := sha256.New()
	writer := io.MultiWriter(file, hasher)
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), in.Body), limit+1)
	size, err := io.Copy(writer, body)
	_ = file.Close()
	if err != nil {
		_ = os.Remove(targetPath)
		return models.MediaAsset{}, WrapError(err, "write file")
	}
	if size > limit {
		_ = os.Remove(targetPath)
		return models.MediaAsset{}, ErrBadRequest("File too large")
	}

	asset := models.MediaAsset{
		ID:          assetID,
		OwnerUserID: caller.UserID,
		StoragePath: storagePath,
		Filename:    filepath.Base(in.Filename),
		ContentType: contentType,
		SizeBytes:   size,
		Sha256:      hex.EncodeToString(hasher.Sum(nil)),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.media.Create(ctx, &asset); err != nil {
		_ = os.Remove(targetPath)
		return models.MediaAsset{}, WrapError(err, "record upload")
	}
	s.events.FileUploaded(contentType, size)
	s.log.Debug("file uploaded", zap.String("storage_path", storagePath), zap.Int64("size", size))
	return asset, nil
}

// Open resolves a storage path to its record and location on disk. Any
// authenticated caller may download.
func (s *MediaService) Open(ctx context.Context, storagePath string) (models.MediaAsset, string, error) {
	clean := path.Clean("/" + storagePath)[1:]
	if clean == "" || clean != strings.TrimPrefix(storagePath, "/") {
		return models.MediaAsset{}, "", ErrNotFound("File not found")
	}
	asset, err := s.media.GetByPath(ctx, clean)
	if errors.Is(err, store.ErrNotFound) {
		return models.MediaAsset{}, "", ErrNotFound("File not found")
	}
	if err != nil {
		return models.MediaAsset{}, "", WrapError(err, "lookup file")
	}
	full := filepath.Join(s.root, filepath.FromSlash(asset.StoragePath))
	if _, err := os.Stat(full); err != nil {
		return models.MediaAsset{}, "", ErrNotFound("File not found")
	}
	return asset, full, nil
}

// Delete removes an upload owned by the caller.
func (s *MediaService) Delete(ctx context.Context, caller Identity, storagePath string) error {
	asset, full, err := s.Open(ctx, storagePath)
	if err != nil {
		return err
	}
	if asset.OwnerUserID != caller.UserID {
		return ErrForbidden("Not authorized")
	}
	if err := s.media.Delete(ctx, asset.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return WrapError(err, "delete file record")
	}
	_ = os.Remove(full)
	return nil
}
