package port

import (
	"context"
	"time"

	"adselect/internal/core/domain"
	"adselect/internal/core/dto"
)

// SelectUseCase is the primary port for ad selection. It normalizes a raw
// request into a validated query and matches it against the creative index.
type SelectUseCase interface {
	// FindBanners validates the raw request mapping and returns the
	// candidate creatives. Invalid input yields a *dto.ValidationError.
	FindBanners(ctx context.Context, input map[string]any) ([]dto.FoundBanner, error)
}

// EventUseCase is the primary port for the delivery-event lifecycle:
// impression registration followed by click and payment attribution.
type EventUseCase interface {
	// RegisterImpression creates a new delivery event and indexes its
	// keyword context.
	RegisterImpression(ctx context.Context, req ImpressionReq) (*dto.FoundEvent, error)
	// AttributeClick attributes a click to an existing event.
	AttributeClick(ctx context.Context, eventID, clickID int64, clickTime time.Time) (*dto.FoundEvent, error)
	// AttributePayment attributes a payment to an existing event. Payments
	// may repeat; the paid amount accumulates.
	AttributePayment(ctx context.Context, eventID, paymentID int64, amount float64, paymentTime time.Time) (*dto.FoundEvent, error)
	// GetEvent returns a stored event by id.
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
	// GetStats aggregates delivery outcomes for a period.
	GetStats(ctx context.Context, req StatsReq) (*StatsResp, error)
}

// ImpressionReq carries the raw fields of an impression registration.
// Identifier fields are string tokens validated during event construction.
type ImpressionReq struct {
	Id           int64          `json:"id"`
	Time         time.Time      `json:"time"`
	PublisherId  string         `json:"publisher_id"`
	SiteId       string         `json:"site_id"`
	ZoneId       string         `json:"zone_id"`
	CampaignId   string         `json:"campaign_id"`
	BannerId     string         `json:"banner_id"`
	ImpressionId string         `json:"impression_id"`
	TrackingId   string         `json:"tracking_id"`
	UserId       string         `json:"user_id"`
	Keywords     map[string]any `json:"keywords"`
}
