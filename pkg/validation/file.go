package validation

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	apperrors "workshop-system/pkg/errors"
)

// ValidateImageFile проверяет размер файла и то, что его содержимое -
// изображение. Тип определяется по сигнатуре (первые 512 байт), а не по
// расширению или заголовку Content-Type клиента.
func ValidateImageFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, maxSizeBytes int64) error {
	if maxSizeBytes > 0 && fileHeader.Size > maxSizeBytes {
		return apperrors.ErrFileTooLarge
	}

	buffer := make([]byte, 512)
	if _, err := file.Read(buffer); err != nil && err != io.EOF {
		return apperrors.NewInvalidInputError("ошибка чтения файла '%s'", fileHeader.Filename)
	}

	// Возвращаем курсор чтения в начало.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return apperrors.NewInvalidInputError("ошибка обработки файла '%s'", fileHeader.Filename)
	}

	mimeType := http.DetectContentType(buffer)
	if !strings.HasPrefix(mimeType, "image/") {
		return apperrors.ErrNotAnImage
	}

	return nil
}
