package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// Processor вписывает изображение в квадратную рамку и пережимает его в JPEG.
type Processor struct {
	maxDimension int
	quality      int
}

func NewProcessor(maxDimension, quality int) *Processor {
	return &Processor{maxDimension: maxDimension, quality: quality}
}

// Process декодирует исходные байты, уменьшает картинку до рамки
// maxDimension x maxDimension с сохранением пропорций (маленькие оригиналы
// не увеличиваются) и кодирует результат в JPEG заданного качества.
func (p *Processor) Process(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("не удалось декодировать изображение: %w", err)
	}

	// Thumbnail сохраняет пропорции и никогда не увеличивает оригинал.
	thumb := resize.Thumbnail(uint(p.maxDimension), uint(p.maxDimension), img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("не удалось закодировать JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
