package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adselect/internal/core/domain"
	"adselect/internal/core/port"
)

// EventRepository implements port.EventRepository using pgxpool for
// PostgreSQL. Click and payment attributions run in a transaction with a
// row lock, so concurrent updates for the same event id serialize instead
// of losing writes.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository returns a new repository instance.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, created_at, publisher_id, site_id, zone_id, campaign_id, banner_id,
	impression_id, tracking_id, user_id, keywords, click_id, click_time,
	paid_amount, last_payment_id, last_payment_time`

// CreateEvent stores a freshly constructed impression event.
func (r *EventRepository) CreateEvent(ctx context.Context, ev *domain.Event) error {
	keywords, err := json.Marshal(ev.Keywords())
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO events
(id, created_at, publisher_id, site_id, zone_id, campaign_id, banner_id, impression_id, tracking_id, user_id, keywords, paid_amount)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		ev.Id(), ev.CreatedAt(),
		ev.PublisherId().String(), ev.SiteId().String(), ev.ZoneId().String(),
		ev.CampaignId().String(), ev.BannerId().String(), ev.ImpressionId().String(),
		ev.TrackingId().String(), ev.UserId().String(),
		keywords, ev.PaidAmount())
	return err
}

// AttachClick attributes a click to the identified event under a row lock.
func (r *EventRepository) AttachClick(ctx context.Context, eventID, clickID int64, clickTime time.Time) (*domain.Event, error) {
	return r.mutate(ctx, eventID, func(ev *domain.Event) error {
		return ev.AttributeClick(clickID, clickTime)
	})
}

// AddPayment attributes a payment to the identified event under a row lock.
func (r *EventRepository) AddPayment(ctx context.Context, eventID, paymentID int64, amount float64, paymentTime time.Time) (*domain.Event, error) {
	return r.mutate(ctx, eventID, func(ev *domain.Event) error {
		return ev.AttributePayment(paymentID, amount, paymentTime)
	})
}

// mutate loads the event FOR UPDATE, applies the domain mutation and writes
// the attribution columns back inside one transaction.
func (r *EventRepository) mutate(ctx context.Context, eventID int64, apply func(*domain.Event) error) (*domain.Event, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, err
	}
	// rollback is a no-op once the transaction committed
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, eventID)
	ev, err := scanEvent(row)
	if err != nil {
		return nil, err
	}
	if err = apply(ev); err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, `UPDATE events SET
click_id = $2, click_time = $3, paid_amount = $4, last_payment_id = $5, last_payment_time = $6
WHERE id = $1`,
		ev.Id(), ev.ClickId(), ev.ClickTime(), ev.PaidAmount(), ev.LastPaymentId(), ev.LastPaymentTime())
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ev, nil
}

// GetEvent returns the event with the given id.
func (r *EventRepository) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	return scanEvent(row)
}

// GetStats aggregates events, attributed clicks and paid amounts in a
// period, optionally narrowed to one campaign.
func (r *EventRepository) GetStats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	args := []any{req.From, req.To}
	whereCampaign := ""
	if req.CampaignId != nil {
		whereCampaign = "AND campaign_id = $3"
		args = append(args, req.CampaignId.String())
	}
	query := fmt.Sprintf(`SELECT
COALESCE(count(*),0), COALESCE(count(click_id),0), COALESCE(sum(paid_amount),0)
FROM events WHERE created_at >= $1 AND created_at <= $2 %s`, whereCampaign)
	var resp port.StatsResp
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&resp.Events, &resp.Clicks, &resp.PaidAmount); err != nil {
		return nil, err
	}
	return &resp, nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var (
		rec      domain.EventRecord
		keywords []byte
	)
	err := row.Scan(
		&rec.Id, &rec.CreatedAt,
		&rec.PublisherId, &rec.SiteId, &rec.ZoneId, &rec.CampaignId, &rec.BannerId,
		&rec.ImpressionId, &rec.TrackingId, &rec.UserId,
		&keywords, &rec.ClickId, &rec.ClickTime,
		&rec.PaidAmount, &rec.LastPaymentId, &rec.LastPaymentTime,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(keywords) > 0 {
		if err = json.Unmarshal(keywords, &rec.Keywords); err != nil {
			return nil, fmt.Errorf("unmarshal keywords: %w", err)
		}
	}
	return domain.RestoreEvent(rec)
}

// Compile-time check: EventRepository implements the port.
var _ port.EventRepository = (*EventRepository)(nil)
