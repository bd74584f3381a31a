package usecase

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"adselect/internal/core/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func restoredEvent(t *testing.T, id int64) *domain.Event {
	t.Helper()
	ev, err := domain.RestoreEvent(domain.EventRecord{
		Id:           id,
		CreatedAt:    time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC),
		PublisherId:  "11111111111111111111111111111111",
		SiteId:       "22222222222222222222222222222222",
		ZoneId:       "33333333333333333333333333333333",
		CampaignId:   "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		BannerId:     "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		ImpressionId: "cccccccccccccccccccccccccccccccc",
		TrackingId:   "55555555555555555555555555555555",
		UserId:       "44444444444444444444444444444444",
		Keywords:     domain.Keywords{"type": {"image"}},
	})
	if err != nil {
		t.Fatalf("RestoreEvent: %v", err)
	}
	return ev
}
