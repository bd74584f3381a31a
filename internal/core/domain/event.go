package domain

import (
	"time"
)

// Timestamp layouts used by the serialized projection. The day bucket is
// always derived from createdAt at read time, never stored.
const (
	timeLayout = "2006-01-02 15:04:05"
	dayLayout  = "2006-01-02"
)

// Event records one ad delivery: an impression and its downstream click and
// payment attributions. Identity is the id alone; two events with the same
// id are equal regardless of any other field.
type Event struct {
	id        int64
	createdAt time.Time

	publisherID  Id
	siteID       Id
	zoneID       Id
	campaignID   Id
	bannerID     Id
	impressionID Id
	trackingID   Id
	userID       Id

	keywords Keywords

	clickID   *int64
	clickTime *time.Time

	paidAmount      float64
	lastPaymentID   *int64
	lastPaymentTime *time.Time
}

// NewEvent constructs an event in its initial state: no click, no payments,
// paid amount zero. All identifiers must be valid (non-zero) values.
func NewEvent(
	id int64,
	createdAt time.Time,
	publisherID, siteID, zoneID, campaignID, bannerID, impressionID, trackingID, userID Id,
	keywords Keywords,
) (*Event, error) {
	ids := []struct {
		name  string
		value Id
	}{
		{"publisher_id", publisherID},
		{"site_id", siteID},
		{"zone_id", zoneID},
		{"campaign_id", campaignID},
		{"banner_id", bannerID},
		{"impression_id", impressionID},
		{"tracking_id", trackingID},
		{"user_id", userID},
	}
	for _, v := range ids {
		if v.value.IsZero() {
			return nil, invariantf("event %d: identifier `%s` is invalid", id, v.name)
		}
	}
	if keywords == nil {
		keywords = Keywords{}
	}
	return &Event{
		id:           id,
		createdAt:    createdAt,
		publisherID:  publisherID,
		siteID:       siteID,
		zoneID:       zoneID,
		campaignID:   campaignID,
		bannerID:     bannerID,
		impressionID: impressionID,
		trackingID:   trackingID,
		userID:       userID,
		keywords:     keywords,
	}, nil
}

// AttributeClick marks the event as clicked. A repeated attribution with the
// same click id is a no-op; a different click id is rejected so an earlier
// attribution is never silently overwritten.
func (e *Event) AttributeClick(clickID int64, clickTime time.Time) error {
	if e.clickID != nil {
		if *e.clickID == clickID {
			return nil
		}
		return conflictf("event %d: click %d already attributed, refusing click %d", e.id, *e.clickID, clickID)
	}
	e.clickID = &clickID
	t := clickTime
	e.clickTime = &t
	return nil
}

// AttributePayment accumulates a payment on the event. The paid amount only
// grows; the last-payment pointer always reflects the most recent call.
func (e *Event) AttributePayment(paymentID int64, amount float64, paymentTime time.Time) error {
	if amount < 0 {
		return invariantf("event %d: payment amount %v must not be negative", e.id, amount)
	}
	e.paidAmount += amount
	e.lastPaymentID = &paymentID
	t := paymentTime
	e.lastPaymentTime = &t
	return nil
}

// FlatKeywords returns the event's keyword context as flat "key=value"
// tokens, the form stored in the index for keyword analytics.
func (e *Event) FlatKeywords() []string {
	return e.keywords.Flatten()
}

func (e *Event) Id() int64            { return e.id }
func (e *Event) CreatedAt() time.Time { return e.createdAt }
func (e *Event) PublisherId() Id      { return e.publisherID }
func (e *Event) SiteId() Id           { return e.siteID }
func (e *Event) ZoneId() Id           { return e.zoneID }
func (e *Event) CampaignId() Id       { return e.campaignID }
func (e *Event) BannerId() Id         { return e.bannerID }
func (e *Event) ImpressionId() Id     { return e.impressionID }
func (e *Event) TrackingId() Id       { return e.trackingID }
func (e *Event) UserId() Id           { return e.userID }
func (e *Event) Keywords() Keywords   { return e.keywords }
func (e *Event) PaidAmount() float64  { return e.paidAmount }

func (e *Event) ClickId() *int64             { return e.clickID }
func (e *Event) ClickTime() *time.Time       { return e.clickTime }
func (e *Event) LastPaymentId() *int64       { return e.lastPaymentID }
func (e *Event) LastPaymentTime() *time.Time { return e.lastPaymentTime }

// Time is createdAt in the transport layout.
func (e *Event) Time() string {
	return e.createdAt.Format(timeLayout)
}

// DayDate is the reporting partition key, derived from createdAt.
func (e *Event) DayDate() string {
	return e.createdAt.Format(dayLayout)
}

// Equals compares events by identity.
func (e *Event) Equals(other *Event) bool {
	return other != nil && e.id == other.id
}

// ToMap produces the full serialized projection used for persistence and
// transport. Optional fields are nil when unset.
func (e *Event) ToMap() map[string]any {
	return map[string]any{
		"id":                e.id,
		"time":              e.Time(),
		"publisher_id":      e.publisherID.String(),
		"site_id":           e.siteID.String(),
		"zone_id":           e.zoneID.String(),
		"user_id":           e.userID.String(),
		"tracking_id":       e.trackingID.String(),
		"impression_id":     e.impressionID.String(),
		"campaign_id":       e.campaignID.String(),
		"banner_id":         e.bannerID.String(),
		"paid_amount":       e.paidAmount,
		"last_payment_id":   optionalInt(e.lastPaymentID),
		"last_payment_time": optionalTime(e.lastPaymentTime),
		"click_id":          optionalInt(e.clickID),
		"click_time":        optionalTime(e.clickTime),
	}
}

func optionalInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func optionalTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.Format(timeLayout)
}

// EventRecord carries the full stored state of an event so repositories can
// rehydrate it. Identifier fields hold string tokens and are validated on
// restore exactly as on create.
type EventRecord struct {
	Id              int64
	CreatedAt       time.Time
	PublisherId     string
	SiteId          string
	ZoneId          string
	CampaignId      string
	BannerId        string
	ImpressionId    string
	TrackingId      string
	UserId          string
	Keywords        Keywords
	ClickId         *int64
	ClickTime       *time.Time
	PaidAmount      float64
	LastPaymentId   *int64
	LastPaymentTime *time.Time
}

// RestoreEvent rebuilds an event from its stored record.
func RestoreEvent(r EventRecord) (*Event, error) {
	tokens := []struct {
		name  string
		value string
	}{
		{"publisher_id", r.PublisherId},
		{"site_id", r.SiteId},
		{"zone_id", r.ZoneId},
		{"campaign_id", r.CampaignId},
		{"banner_id", r.BannerId},
		{"impression_id", r.ImpressionId},
		{"tracking_id", r.TrackingId},
		{"user_id", r.UserId},
	}
	ids := make([]Id, len(tokens))
	for i, tok := range tokens {
		id, err := NewId(tok.value)
		if err != nil {
			return nil, invariantf("event %d: identifier `%s`: %v", r.Id, tok.name, err)
		}
		ids[i] = id
	}
	ev, err := NewEvent(r.Id, r.CreatedAt, ids[0], ids[1], ids[2], ids[3], ids[4], ids[5], ids[6], ids[7], r.Keywords)
	if err != nil {
		return nil, err
	}
	if (r.ClickId == nil) != (r.ClickTime == nil) {
		return nil, invariantf("event %d: click id and click time must be set together", r.Id)
	}
	if r.ClickId != nil {
		if err := ev.AttributeClick(*r.ClickId, *r.ClickTime); err != nil {
			return nil, err
		}
	}
	if r.PaidAmount < 0 {
		return nil, invariantf("event %d: paid amount %v must not be negative", r.Id, r.PaidAmount)
	}
	ev.paidAmount = r.PaidAmount
	ev.lastPaymentID = r.LastPaymentId
	ev.lastPaymentTime = r.LastPaymentTime
	return ev, nil
}
