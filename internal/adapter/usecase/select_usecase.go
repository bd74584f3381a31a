package usecase

import (
	"context"

	"adselect/internal/core/dto"
	"adselect/internal/core/port"
)

// SelectUseCase normalizes raw ad-slot requests and matches them against
// the creative index. It is stateless and safe for concurrent use.
type SelectUseCase struct {
	index port.BannerIndex
}

// NewSelectUseCase creates a select usecase backed by the given index.
func NewSelectUseCase(index port.BannerIndex) *SelectUseCase {
	return &SelectUseCase{index: index}
}

// FindBanners validates the raw request into a query and asks the index for
// matching creatives. Validation failures surface as *dto.ValidationError;
// index failures are returned as-is.
func (u *SelectUseCase) FindBanners(ctx context.Context, input map[string]any) ([]dto.FoundBanner, error) {
	q, err := dto.QueryFromMap(input)
	if err != nil {
		return nil, err
	}
	return u.index.FindBanners(ctx, q)
}
