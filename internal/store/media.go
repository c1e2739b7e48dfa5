package store

import (
	"context"
	"fmt"

	"fitcoach-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const mediaColumns = `id, owner_user_id, storage_path, filename, content_type, size_bytes, sha256, created_at`

type MediaStore struct {
	db *sqlx.DB
}

func (s *MediaStore) Create(ctx context.Context, a *models.MediaAsset) error {
	stamp(&a.CreatedAt)
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
INSERT INTO media_assets (`+mediaColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		a.ID, a.OwnerUserID, a.StoragePath, a.Filename, a.ContentType, a.SizeBytes, a.Sha256, a.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert media asset -> %w", err)
	}
	return nil
}

func (s *MediaStore) GetByPath(ctx context.Context, storagePath string) (models.MediaAsset, error) {
	var a models.MediaAsset
	err := s.db.GetContext(ctx, &a, s.db.Rebind(`SELECT `+mediaColumns+` FROM media_assets WHERE storage_path = ?`), storagePath)
	return a, notFound(err)
}

func (s *MediaStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM media_assets WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete media asset -> %w", err)
	}
	return affectedOne(res)
}
