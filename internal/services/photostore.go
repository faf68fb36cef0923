package services

import (
	"bytes"
	"errors"
	"io/fs"

	"workshop-system/internal/entities"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/filestorage"
)

// PhotoContentStore - порт хранения бинарного содержимого фотографий.
// Реализация выбирается при старте из конфигурации: blob в строке таблицы
// либо файл на диске с путем в строке.
type PhotoContentStore interface {
	// Save принимает обработанные байты и возвращает то, что нужно
	// положить в строку таблицы: data и/или file_path.
	Save(processed []byte, originalName string) (data []byte, filePath *string, err error)
	Load(photo *entities.Photo) ([]byte, error)
	Remove(photo *entities.Photo) error
}

// BlobContentStore хранит содержимое прямо в колонке data.
type BlobContentStore struct{}

func NewBlobContentStore() PhotoContentStore {
	return BlobContentStore{}
}

func (BlobContentStore) Save(processed []byte, _ string) ([]byte, *string, error) {
	return processed, nil, nil
}

func (BlobContentStore) Load(photo *entities.Photo) ([]byte, error) {
	if len(photo.Data) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return photo.Data, nil
}

func (BlobContentStore) Remove(_ *entities.Photo) error {
	return nil
}

// DiskContentStore пишет содержимое на диск и хранит в строке только путь.
type DiskContentStore struct {
	files filestorage.FileStorageInterface
}

func NewDiskContentStore(files filestorage.FileStorageInterface) PhotoContentStore {
	return &DiskContentStore{files: files}
}

func (s *DiskContentStore) Save(processed []byte, originalName string) ([]byte, *string, error) {
	path, err := s.files.Save(bytes.NewReader(processed), originalName)
	if err != nil {
		return nil, nil, err
	}
	return nil, &path, nil
}

func (s *DiskContentStore) Load(photo *entities.Photo) ([]byte, error) {
	if photo.FilePath == nil {
		return nil, apperrors.ErrNotFound
	}
	data, err := s.files.Read(*photo.FilePath)
	// Пропавший с диска файл - то же самое, что отсутствующее содержимое.
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.ErrNotFound
	}
	return data, err
}

func (s *DiskContentStore) Remove(photo *entities.Photo) error {
	if photo.FilePath == nil {
		return nil
	}
	return s.files.Delete(*photo.FilePath)
}
