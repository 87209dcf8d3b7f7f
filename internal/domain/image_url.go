package domain

import "fmt"

// ImageSizeSuffix — суффикс размера статических картинок: "c" — 800px по длинной стороне.
const ImageSizeSuffix = "c"

// ImageURL возвращает адрес статической картинки фото фиксированного размера:
// https://farm{farm}.staticflickr.com/{server}/{id}_{secret}_c.jpg
func ImageURL(photo Photo) string {
	return fmt.Sprintf("https://farm%s.staticflickr.com/%s/%s_%s_%s.jpg",
		photo.Farm, photo.Server, photo.ID, photo.Secret, ImageSizeSuffix)
}
