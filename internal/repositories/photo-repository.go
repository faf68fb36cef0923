package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workshop-system/internal/entities"
	apperrors "workshop-system/pkg/errors"
)

type PhotoRepositoryInterface interface {
	// ListByOrderID возвращает метаданные без бинарного содержимого.
	ListByOrderID(ctx context.Context, orderID uint64) ([]entities.Photo, error)
	// FindPhoto возвращает запись целиком, включая data и file_path.
	FindPhoto(ctx context.Context, id uint64) (*entities.Photo, error)
	CreatePhoto(ctx context.Context, photo entities.Photo) (*entities.Photo, error)
	DeletePhoto(ctx context.Context, id uint64) error
}

type PhotoRepository struct {
	storage *pgxpool.Pool
}

func NewPhotoRepository(storage *pgxpool.Pool) PhotoRepositoryInterface {
	return &PhotoRepository{storage: storage}
}

func (r *PhotoRepository) ListByOrderID(ctx context.Context, orderID uint64) ([]entities.Photo, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, order_id, original_name, mime_type, size, created_at, updated_at
		FROM photos
		WHERE order_id = $1
		ORDER BY created_at DESC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка фотографий: %w", err)
	}
	defer rows.Close()

	photos := make([]entities.Photo, 0)
	for rows.Next() {
		var p entities.Photo
		if err := rows.Scan(&p.ID, &p.OrderID, &p.OriginalName, &p.MimeType, &p.Size, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования фотографии: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *PhotoRepository) FindPhoto(ctx context.Context, id uint64) (*entities.Photo, error) {
	var p entities.Photo
	var filePath sql.NullString

	err := r.storage.QueryRow(ctx, `
		SELECT id, order_id, original_name, mime_type, size, data, file_path, created_at, updated_at
		FROM photos
		WHERE id = $1`, id).Scan(
		&p.ID, &p.OrderID, &p.OriginalName, &p.MimeType, &p.Size,
		&p.Data, &filePath, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования фотографии: %w", err)
	}

	if filePath.Valid {
		p.FilePath = &filePath.String
	}
	return &p, nil
}

func (r *PhotoRepository) CreatePhoto(ctx context.Context, photo entities.Photo) (*entities.Photo, error) {
	err := r.storage.QueryRow(ctx, `
		INSERT INTO photos (order_id, original_name, mime_type, size, data, file_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		photo.OrderID, photo.OriginalName, photo.MimeType, photo.Size, photo.Data, photo.FilePath,
	).Scan(&photo.ID, &photo.CreatedAt, &photo.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка записи в 'photos': %w", err)
	}
	return &photo, nil
}

func (r *PhotoRepository) DeletePhoto(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления фотографии: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
