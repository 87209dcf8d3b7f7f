package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Photo представляет запись о фотографии из ответа flickr.photos.search.
// Ядро только читает поля, запись никогда не изменяется.
type Photo struct {
	ID       string      `json:"id"`
	Owner    string      `json:"owner,omitempty"`
	Secret   string      `json:"secret"`
	Server   string      `json:"server"`
	Farm     json.Number `json:"farm"`
	Title    string      `json:"title,omitempty"`
	IsPublic int         `json:"ispublic,omitempty"`
	IsFriend int         `json:"isfriend,omitempty"`
	IsFamily int         `json:"isfamily,omitempty"`

	// Поля из extras=o_dims,url_o
	OriginalWidth  Pixels `json:"width_o,omitempty"`
	OriginalHeight Pixels `json:"height_o,omitempty"`
	OriginalURL    string `json:"url_o,omitempty"`
}

// Photos — поле photos ответа поиска: список фото и метаданные страницы.
// Передаётся вызывающему без изменений.
type Photos struct {
	Page    int         `json:"page"`
	Pages   int         `json:"pages"`
	PerPage int         `json:"perpage"`
	Total   json.Number `json:"total"`
	Photo   []Photo     `json:"photo"`
}

// SizeConstraint — необязательное ограничение размера: задаётся ширина или высота.
// Нулевое значение поля означает "не задано".
type SizeConstraint struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// NewSizeConstraint возвращает ограничение или nil, если обе стороны нулевые.
func NewSizeConstraint(width, height float64) *SizeConstraint {
	if width == 0 && height == 0 {
		return nil
	}
	return &SizeConstraint{Width: width, Height: height}
}

// Dimensions — ширина и высота для отображения фото.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Pixels — размер в пикселях. Flickr отдаёт o_dims то числом, то строкой.
type Pixels float64

func (p *Pixels) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*p = 0
			return nil
		}
		data = []byte(s)
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("некорректный размер в пикселях %q: %w", data, err)
	}
	*p = Pixels(v)
	return nil
}
