package port

import (
	"context"

	"adselect/internal/core/domain"
	"adselect/internal/core/dto"
)

// BannerIndex is the outbound port to the creative index. The index stores
// flattened fields per document: filter values under
// "filters:require:<category>:<attribute>" and
// "filters:exclude:<category>:<attribute>", keyword tokens under
// "banner:keywords:<category>" and the creative size under "banner:size".
// Multi-valued fields are sets of strings.
type BannerIndex interface {
	// FindBanners returns the candidate creatives matching the query's size
	// and require/exclude filters.
	FindBanners(ctx context.Context, q *dto.Query) ([]dto.FoundBanner, error)
	// IndexEvent stores the event's flattened keyword tokens for later
	// keyword-based analytics queries.
	IndexEvent(ctx context.Context, ev *domain.Event) error
}
