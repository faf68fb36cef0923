package errors

import (
	"fmt"
	"net/http"
)

var (
	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Загрузка файлов
	ErrFileTooLarge = fmt.Errorf("файл превышает допустимый размер")
	ErrNotAnImage   = fmt.Errorf("разрешены только изображения")
)

// HttpError переносит ошибку бизнес-слоя на HTTP-границу:
// код ответа, сообщение для клиента и исходная ошибка для логов.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details string
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(code int, message string, err error, details string) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

func BadRequest(message string, details string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, ErrBadRequest, details)
}

func NotFound(message string, details string) *HttpError {
	return NewHttpError(http.StatusNotFound, message, ErrNotFound, details)
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
