package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/entities"
	"workshop-system/internal/repositories"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/imaging"
	"workshop-system/pkg/validation"
)

// PhotoContent - содержимое фотографии для отдачи клиенту.
type PhotoContent struct {
	MimeType string
	Data     []byte
}

type PhotoServiceInterface interface {
	GetOrderPhotos(ctx context.Context, orderID uint64) ([]dto.PhotoResponseDTO, error)
	GetPhotoContent(ctx context.Context, photoID uint64) (*PhotoContent, error)
	UploadPhotos(ctx context.Context, orderID uint64, files []*multipart.FileHeader) ([]dto.PhotoResponseDTO, error)
	DeletePhoto(ctx context.Context, photoID uint64) error
}

type PhotoService struct {
	photoRepo    repositories.PhotoRepositoryInterface
	orderRepo    repositories.OrderRepositoryInterface
	contentStore PhotoContentStore
	processor    *imaging.Processor
	maxFileSize  int64
	maxFiles     int
	logger       *zap.Logger
}

func NewPhotoService(
	photoRepo repositories.PhotoRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	contentStore PhotoContentStore,
	processor *imaging.Processor,
	maxFileSize int64,
	maxFiles int,
	logger *zap.Logger,
) PhotoServiceInterface {
	return &PhotoService{
		photoRepo:    photoRepo,
		orderRepo:    orderRepo,
		contentStore: contentStore,
		processor:    processor,
		maxFileSize:  maxFileSize,
		maxFiles:     maxFiles,
		logger:       logger,
	}
}

func (s *PhotoService) GetOrderPhotos(ctx context.Context, orderID uint64) ([]dto.PhotoResponseDTO, error) {
	photos, err := s.photoRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		s.logger.Error("не удалось получить фотографии заказа", zap.Uint64("orderId", orderID), zap.Error(err))
		return nil, err
	}
	return dto.NewPhotoListResponse(photos), nil
}

func (s *PhotoService) GetPhotoContent(ctx context.Context, photoID uint64) (*PhotoContent, error) {
	photo, err := s.photoRepo.FindPhoto(ctx, photoID)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return nil, apperrors.NotFound("Photo not found", fmt.Sprintf("No photo found with ID %d", photoID))
		}
		return nil, err
	}

	data, err := s.contentStore.Load(photo)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return nil, apperrors.NotFound("Photo content not found", "Binary data is missing")
		}
		s.logger.Error("не удалось прочитать содержимое фотографии", zap.Uint64("photoId", photoID), zap.Error(err))
		return nil, err
	}

	return &PhotoContent{MimeType: photo.MimeType, Data: data}, nil
}

// UploadPhotos принимает пакет файлов для заказа. Весь пакет отклоняется
// до какой-либо записи, если заказ не существует, файлов слишком много,
// либо хоть один файл не изображение или превышает лимит размера.
// Ошибка обработки отдельного файла пакет не прерывает: файл
// пропускается с предупреждением в логе, поэтому ответ может быть короче
// списка отправленных файлов.
func (s *PhotoService) UploadPhotos(ctx context.Context, orderID uint64, files []*multipart.FileHeader) ([]dto.PhotoResponseDTO, error) {
	if len(files) == 0 {
		return nil, apperrors.BadRequest("No files uploaded", "Photo files are required")
	}
	if len(files) > s.maxFiles {
		return nil, apperrors.BadRequest("Too many files", fmt.Sprintf("At most %d files per request", s.maxFiles))
	}

	exists, err := s.orderRepo.OrderExists(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("Order not found", fmt.Sprintf("No order found with ID %d", orderID))
	}

	// Сначала проверяем все файлы, чтобы невалидный пакет не оставил
	// в базе половину фотографий.
	for _, fh := range files {
		if err := s.validateFile(fh); err != nil {
			return nil, err
		}
	}

	uploaded := make([]dto.PhotoResponseDTO, 0, len(files))
	for _, fh := range files {
		photo, err := s.processAndStore(ctx, orderID, fh)
		if err != nil {
			s.logger.Warn("файл пропущен: ошибка обработки изображения",
				zap.String("file", fh.Filename), zap.Uint64("orderId", orderID), zap.Error(err))
			continue
		}
		uploaded = append(uploaded, dto.NewPhotoResponse(*photo))
	}
	return uploaded, nil
}

func (s *PhotoService) validateFile(fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("не удалось открыть файл '%s': %w", fh.Filename, err)
	}
	defer src.Close()

	if err := validation.ValidateImageFile(fh, src, s.maxFileSize); err != nil {
		switch err {
		case apperrors.ErrFileTooLarge:
			return apperrors.NewHttpError(http.StatusRequestEntityTooLarge,
				"File too large", err,
				fmt.Sprintf("File '%s' exceeds the limit of %d bytes", fh.Filename, s.maxFileSize))
		case apperrors.ErrNotAnImage:
			return apperrors.NewHttpError(http.StatusUnsupportedMediaType,
				"Only images are allowed", err, fmt.Sprintf("File '%s' is not an image", fh.Filename))
		default:
			return err
		}
	}
	return nil
}

func (s *PhotoService) processAndStore(ctx context.Context, orderID uint64, fh *multipart.FileHeader) (*entities.Photo, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	processed, err := s.processor.Process(raw)
	if err != nil {
		return nil, err
	}

	data, filePath, err := s.contentStore.Save(processed, jpegName(fh.Filename))
	if err != nil {
		return nil, err
	}

	photo := entities.Photo{
		OrderID:      orderID,
		OriginalName: fh.Filename,
		// После обработки содержимое всегда JPEG.
		MimeType: "image/jpeg",
		Size:     int64(len(processed)),
		Data:     data,
		FilePath: filePath,
	}
	created, err := s.photoRepo.CreatePhoto(ctx, photo)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeletePhoto удаляет фотографию. Неудачное удаление файла с диска только
// логируется: запись в базе удаляется в любом случае.
func (s *PhotoService) DeletePhoto(ctx context.Context, photoID uint64) error {
	photo, err := s.photoRepo.FindPhoto(ctx, photoID)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return apperrors.NotFound("Photo not found", fmt.Sprintf("No photo found with ID %d", photoID))
		}
		return err
	}

	if err := s.contentStore.Remove(photo); err != nil {
		s.logger.Warn("не удалось удалить файл фотографии с диска",
			zap.Uint64("photoId", photoID), zap.Error(err))
	}

	return s.photoRepo.DeletePhoto(ctx, photoID)
}

func jpegName(originalName string) string {
	ext := filepath.Ext(originalName)
	return strings.TrimSuffix(originalName, ext) + ".jpg"
}
