package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/GoArmGo/FlickrSearch/internal/domain"
	"github.com/GoArmGo/FlickrSearch/internal/usecase"
)

// runSearch выполняет один поиск и печатает результат в out в виде JSON.
func runSearch(ctx context.Context, photoUseCase usecase.PhotoUseCase, opts RunOptions, out io.Writer) error {
	if opts.Width < 0 || opts.Height < 0 {
		return fmt.Errorf("размеры не могут быть отрицательными: width=%v height=%v", opts.Width, opts.Height)
	}

	result, err := photoUseCase.SearchPhotoViews(ctx, opts.Text, domain.NewSizeConstraint(opts.Width, opts.Height))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("ошибка вывода результата: %w", err)
	}
	return nil
}
