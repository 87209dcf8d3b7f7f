package flickr

import "github.com/GoArmGo/FlickrSearch/internal/domain"

const statOK = "ok"

// searchResponse — тело ответа flickr.photos.search.
// При stat "fail" заполнены Code и Message, а Photos отсутствует.
type searchResponse struct {
	Photos  *domain.Photos `json:"photos"`
	Stat    string         `json:"stat"`
	Code    int            `json:"code"`
	Message string         `json:"message"`
}
