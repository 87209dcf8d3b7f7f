package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/GoArmGo/FlickrSearch/internal/core/ports"
	"github.com/GoArmGo/FlickrSearch/internal/domain"
	"github.com/GoArmGo/FlickrSearch/internal/messaging/payloads"
	"github.com/GoArmGo/FlickrSearch/internal/usecase"
	"github.com/google/uuid"
)

// maxEnqueueBodyBytes ограничивает тело запроса асинхронного поиска.
const maxEnqueueBodyBytes = 4 << 10

// PhotoHandler — обработчик HTTP-запросов для поиска фотографий.
type PhotoHandler struct {
	photoUseCase         usecase.PhotoUseCase
	photoSearchPublisher ports.PhotoSearchPublisher
	logger               *slog.Logger
}

// NewPhotoHandler создаёт новый экземпляр PhotoHandler.
// publisher может быть nil: тогда асинхронный поиск недоступен.
func NewPhotoHandler(
	uc usecase.PhotoUseCase,
	publisher ports.PhotoSearchPublisher,
	logger *slog.Logger,
) *PhotoHandler {
	return &PhotoHandler{
		photoUseCase:         uc,
		photoSearchPublisher: publisher,
		logger:               logger,
	}
}

// searchRequest — тело запроса асинхронного поиска.
type searchRequest struct {
	Text   string  `json:"text"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// SearchPhotos — ищет фото во Flickr и возвращает их с адресами картинок и размерами.
// GET /photos/search?text=...&width=...&height=...
func (h *PhotoHandler) SearchPhotos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("text")
	if text == "" {
		text = q.Get("query")
	}
	if text == "" {
		h.logger.Warn("missing required parameter", "param", "text")
		respondWithError(w, http.StatusBadRequest, "Не указан параметр text", h.logger)
		return
	}

	width, err := parseSide(q.Get("width"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Некорректный width: %v", err), h.logger)
		return
	}
	height, err := parseSide(q.Get("height"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Некорректный height: %v", err), h.logger)
		return
	}

	result, err := h.photoUseCase.SearchPhotoViews(r.Context(), text, domain.NewSizeConstraint(width, height))
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyQuery) {
			respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		h.logger.Error("failed to search photos", "query", text, "error", err)
		respondWithError(w, http.StatusBadGateway, "Сервис поиска фото недоступен", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, result, h.logger)
}

// EnqueueSearch — ставит поиск в очередь для воркера.
// POST /photos/search/async
func (h *PhotoHandler) EnqueueSearch(w http.ResponseWriter, r *http.Request) {
	if h.photoSearchPublisher == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Асинхронный поиск не настроен", h.logger)
		return
	}

	var req searchRequest
	body := http.MaxBytesReader(w, r.Body, maxEnqueueBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Слишком большое тело запроса", h.logger)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Некорректное тело запроса", h.logger)
		return
	}
	if req.Text == "" {
		respondWithError(w, http.StatusBadRequest, "Не указан параметр text", h.logger)
		return
	}
	if req.Width < 0 || req.Height < 0 {
		respondWithError(w, http.StatusBadRequest, "Размеры не могут быть отрицательными", h.logger)
		return
	}

	payload := payloads.PhotoSearchPayload{
		RequestID: uuid.New(),
		Query:     req.Text,
		Width:     req.Width,
		Height:    req.Height,
	}
	if err := h.photoSearchPublisher.PublishPhotoSearchRequest(r.Context(), payload); err != nil {
		h.logger.Error("failed to publish search request", "query", req.Text, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Не удалось поставить поиск в очередь", h.logger)
		return
	}

	respondWithJSON(w, http.StatusAccepted, map[string]string{"request_id": payload.RequestID.String()}, h.logger)
}

// Health — проверка живости.
func (h *PhotoHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// parseSide разбирает необязательную сторону ограничения; пустая строка — 0.
func parseSide(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("ожидается число")
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("ожидается неотрицательное конечное число")
	}
	return v, nil
}
