package domain

import (
	"encoding/json"
	"math"
)

// ResolveDimensions вычисляет размеры для отображения фото.
//
// Без ограничения возвращаются оригинальные width_o и height_o. С ограничением
// недостающая сторона вычисляется по пропорциям оригинала и округляется.
// Нулевая сторона ограничения считается незаданной. Нулевая высота оригинала
// даёт Inf или NaN, ошибки при этом нет.
func ResolveDimensions(photo Photo, constraint *SizeConstraint) Dimensions {
	if constraint == nil {
		return Dimensions{
			Width:  float64(photo.OriginalWidth),
			Height: float64(photo.OriginalHeight),
		}
	}

	ratio := float64(photo.OriginalWidth) / float64(photo.OriginalHeight)

	width := constraint.Width
	if width == 0 {
		width = math.Round(constraint.Height * ratio)
	}
	height := constraint.Height
	if height == 0 {
		height = math.Round(constraint.Width / ratio)
	}

	return Dimensions{Width: width, Height: height}
}

// MarshalJSON кодирует нечисловые размеры (Inf, NaN) как null: encoding/json их не поддерживает.
func (d Dimensions) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Width  *float64 `json:"width"`
		Height *float64 `json:"height"`
	}{finite(d.Width), finite(d.Height)})
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
