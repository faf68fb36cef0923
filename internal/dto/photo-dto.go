package dto

import (
	"fmt"
	"time"

	"workshop-system/internal/entities"
)

// PhotoResponseDTO - метаданные фотографии. Бинарное содержимое в ответы
// API не включается, клиент забирает его по URL.
type PhotoResponseDTO struct {
	ID           uint64 `json:"id"`
	OrderID      uint64 `json:"orderId"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

func NewPhotoResponse(p entities.Photo) PhotoResponseDTO {
	return PhotoResponseDTO{
		ID:           p.ID,
		OrderID:      p.OrderID,
		OriginalName: p.OriginalName,
		MimeType:     p.MimeType,
		Size:         p.Size,
		URL:          fmt.Sprintf("/api/photos/%d/content", p.ID),
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
}

func NewPhotoListResponse(photos []entities.Photo) []PhotoResponseDTO {
	res := make([]PhotoResponseDTO, 0, len(photos))
	for _, p := range photos {
		res = append(res, NewPhotoResponse(p))
	}
	return res
}
