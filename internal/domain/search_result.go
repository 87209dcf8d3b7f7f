package domain

// PhotoView — фото вместе с адресом картинки и размерами для отображения.
type PhotoView struct {
	Photo      Photo      `json:"photo"`
	ImageURL   string     `json:"image_url"`
	Dimensions Dimensions `json:"dimensions"`
}

// SearchResult — ответ поиска, подготовленный для отображения.
type SearchResult struct {
	Query   string      `json:"query"`
	Page    int         `json:"page"`
	Pages   int         `json:"pages"`
	PerPage int         `json:"perpage"`
	Total   string      `json:"total"`
	Photos  []PhotoView `json:"photos"`
}

// NewPhotoView собирает PhotoView для одного фото.
func NewPhotoView(photo Photo, constraint *SizeConstraint) PhotoView {
	return PhotoView{
		Photo:      photo,
		ImageURL:   ImageURL(photo),
		Dimensions: ResolveDimensions(photo, constraint),
	}
}

// NewSearchResult собирает SearchResult из поля photos ответа Flickr.
func NewSearchResult(query string, photos *Photos, constraint *SizeConstraint) *SearchResult {
	result := &SearchResult{
		Query:   query,
		Page:    photos.Page,
		Pages:   photos.Pages,
		PerPage: photos.PerPage,
		Total:   photos.Total.String(),
		Photos:  make([]PhotoView, 0, len(photos.Photo)),
	}
	for _, p := range photos.Photo {
		result.Photos = append(result.Photos, NewPhotoView(p, constraint))
	}
	return result
}
