package usecase

import (
	"context"
	"log/slog"
	"time"

	"adselect/internal/core/domain"
	"adselect/internal/core/dto"
	"adselect/internal/core/port"
)

// EventUseCase drives the delivery-event lifecycle: impressions are created
// once, then clicks and payments are attributed to them by id. The storage
// layer guarantees per-record atomicity for the mutations.
type EventUseCase struct {
	repo   port.EventRepository
	index  port.BannerIndex
	logger *slog.Logger
}

// NewEventUseCase creates an event usecase with the provided repository and
// index.
func NewEventUseCase(repo port.EventRepository, index port.BannerIndex, logger *slog.Logger) *EventUseCase {
	return &EventUseCase{repo: repo, index: index, logger: logger}
}

// RegisterImpression constructs a delivery event from the raw request,
// stores it and indexes its flattened keyword tokens. Identifier and
// keyword parsing failures propagate as domain invariant errors.
func (u *EventUseCase) RegisterImpression(ctx context.Context, req port.ImpressionReq) (*dto.FoundEvent, error) {
	ev, err := buildEvent(req)
	if err != nil {
		return nil, err
	}
	if err = u.repo.CreateEvent(ctx, ev); err != nil {
		return nil, err
	}
	// Keyword indexing is best-effort: the event of record is already
	// stored, a missing analytics entry must not fail the registration.
	if err = u.index.IndexEvent(ctx, ev); err != nil {
		u.logger.Warn("event keyword indexing failed",
			slog.Int64("event_id", ev.Id()), slog.Any("error", err))
	}
	return &dto.FoundEvent{Id: ev.Id()}, nil
}

// AttributeClick attributes a click to a stored event.
func (u *EventUseCase) AttributeClick(ctx context.Context, eventID, clickID int64, clickTime time.Time) (*dto.FoundEvent, error) {
	ev, err := u.repo.AttachClick(ctx, eventID, clickID, clickTime)
	if err != nil {
		return nil, err
	}
	return &dto.FoundEvent{Id: ev.Id()}, nil
}

// AttributePayment attributes a payment to a stored event.
func (u *EventUseCase) AttributePayment(ctx context.Context, eventID, paymentID int64, amount float64, paymentTime time.Time) (*dto.FoundEvent, error) {
	ev, err := u.repo.AddPayment(ctx, eventID, paymentID, amount, paymentTime)
	if err != nil {
		return nil, err
	}
	return &dto.FoundEvent{Id: ev.Id()}, nil
}

// GetEvent returns a stored event by id.
func (u *EventUseCase) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	return u.repo.GetEvent(ctx, id)
}

// GetStats aggregates delivery outcomes for a period.
func (u *EventUseCase) GetStats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	return u.repo.GetStats(ctx, req)
}

func buildEvent(req port.ImpressionReq) (*domain.Event, error) {
	tokens := []string{
		req.PublisherId, req.SiteId, req.ZoneId, req.CampaignId,
		req.BannerId, req.ImpressionId, req.TrackingId, req.UserId,
	}
	ids := make([]domain.Id, len(tokens))
	for i, tok := range tokens {
		id, err := domain.NewId(tok)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	keywords, err := domain.ParseKeywords(anyMap(req.Keywords))
	if err != nil {
		return nil, err
	}
	createdAt := req.Time
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return domain.NewEvent(req.Id, createdAt,
		ids[0], ids[1], ids[2], ids[3], ids[4], ids[5], ids[6], ids[7], keywords)
}

func anyMap(m map[string]any) any {
	if m == nil {
		return nil
	}
	return m
}

// Compile-time checks: usecases implement their primary ports.
var (
	_ port.SelectUseCase = (*SelectUseCase)(nil)
	_ port.EventUseCase  = (*EventUseCase)(nil)
)
