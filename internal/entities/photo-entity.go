package entities

import "time"

type Photo struct {
	ID           uint64
	OrderID      uint64
	OriginalName string
	MimeType     string
	Size         int64

	// Ровно одно из двух полей заполнено, в зависимости от режима хранения:
	// Data - содержимое в строке таблицы, FilePath - путь на диске.
	Data     []byte
	FilePath *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
