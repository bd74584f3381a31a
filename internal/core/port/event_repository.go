package port

import (
	"context"
	"errors"
	"time"

	"adselect/internal/core/domain"
)

var ErrEventNotFound = errors.New("event not found")

// EventRepository is the outbound port for delivery-event persistence.
// Implementations must apply AttachClick and AddPayment with per-record
// atomicity: concurrent attributions for the same event id must not lose
// updates. The repository loads the stored event, applies the domain
// mutation and writes it back under a per-record lock or equivalent.
type EventRepository interface {
	// CreateEvent stores a freshly constructed impression event.
	CreateEvent(ctx context.Context, ev *domain.Event) error
	// AttachClick attributes a click to the identified event and returns
	// the updated event. Conflicting attributions propagate the domain
	// invariant error unchanged.
	AttachClick(ctx context.Context, eventID, clickID int64, clickTime time.Time) (*domain.Event, error)
	// AddPayment attributes a payment to the identified event and returns
	// the updated event.
	AddPayment(ctx context.Context, eventID, paymentID int64, amount float64, paymentTime time.Time) (*domain.Event, error)
	// GetEvent returns the event with the given id, or ErrEventNotFound.
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
	// GetStats aggregates event counts and paid amounts for a period.
	GetStats(ctx context.Context, req StatsReq) (*StatsResp, error)
}

// StatsReq selects the period (and optionally one campaign) to aggregate.
type StatsReq struct {
	From       time.Time
	To         time.Time
	CampaignId *domain.Id
}

// StatsResp contains aggregated delivery outcomes: Events counts stored
// impressions, Clicks counts those with a click attributed, PaidAmount sums
// accumulated payments.
type StatsResp struct {
	Events     int64   `json:"events"`
	Clicks     int64   `json:"clicks"`
	PaidAmount float64 `json:"paid_amount"`
}
