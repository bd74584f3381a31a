package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"adselect/internal/core/domain"
	"adselect/internal/core/dto"
	"adselect/internal/core/port"
)

// --- Mocks ---

type mockIndex struct {
	findFn       func(ctx context.Context, q *dto.Query) ([]dto.FoundBanner, error)
	indexEventFn func(ctx context.Context, ev *domain.Event) error

	indexedEvents []int64
}

func (m *mockIndex) FindBanners(ctx context.Context, q *dto.Query) ([]dto.FoundBanner, error) {
	if m.findFn != nil {
		return m.findFn(ctx, q)
	}
	return nil, nil
}

func (m *mockIndex) IndexEvent(ctx context.Context, ev *domain.Event) error {
	m.indexedEvents = append(m.indexedEvents, ev.Id())
	if m.indexEventFn != nil {
		return m.indexEventFn(ctx, ev)
	}
	return nil
}

type mockRepo struct {
	created []*domain.Event

	createErr   error
	attachFn    func(eventID, clickID int64, clickTime time.Time) (*domain.Event, error)
	addFn       func(eventID, paymentID int64, amount float64, paymentTime time.Time) (*domain.Event, error)
	getResult   *domain.Event
	getErr      error
	statsResult *port.StatsResp
	statsErr    error
}

func (m *mockRepo) CreateEvent(_ context.Context, ev *domain.Event) error {
	m.created = append(m.created, ev)
	return m.createErr
}

func (m *mockRepo) AttachClick(_ context.Context, eventID, clickID int64, clickTime time.Time) (*domain.Event, error) {
	if m.attachFn != nil {
		return m.attachFn(eventID, clickID, clickTime)
	}
	return nil, nil
}

func (m *mockRepo) AddPayment(_ context.Context, eventID, paymentID int64, amount float64, paymentTime time.Time) (*domain.Event, error) {
	if m.addFn != nil {
		return m.addFn(eventID, paymentID, amount, paymentTime)
	}
	return nil, nil
}

func (m *mockRepo) GetEvent(_ context.Context, _ int64) (*domain.Event, error) {
	return m.getResult, m.getErr
}

func (m *mockRepo) GetStats(_ context.Context, _ port.StatsReq) (*port.StatsResp, error) {
	return m.statsResult, m.statsErr
}

func validFindInput() map[string]any {
	return map[string]any{
		"publisher_id":   "11111111111111111111111111111111",
		"site_id":        "22222222222222222222222222222222",
		"zone_id":        "33333333333333333333333333333333",
		"user_id":        "44444444444444444444444444444444",
		"tracking_id":    "55555555555555555555555555555555",
		"banner_size":    "728x90",
		"keywords":       map[string]any{"type": "image"},
		"banner_filters": map[string]any{},
	}
}

func validImpression() port.ImpressionReq {
	return port.ImpressionReq{
		Id:           101,
		Time:         time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC),
		PublisherId:  "11111111111111111111111111111111",
		SiteId:       "22222222222222222222222222222222",
		ZoneId:       "33333333333333333333333333333333",
		CampaignId:   "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		BannerId:     "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		ImpressionId: "cccccccccccccccccccccccccccccccc",
		TrackingId:   "55555555555555555555555555555555",
		UserId:       "44444444444444444444444444444444",
		Keywords:     map[string]any{"type": "image"},
	}
}

// --- SelectUseCase ---

func TestFindBannersPassesValidatedQueryToIndex(t *testing.T) {
	index := &mockIndex{
		findFn: func(_ context.Context, q *dto.Query) ([]dto.FoundBanner, error) {
			if q.Size().String() != "728x90" {
				t.Errorf("unexpected size in query: %s", q.Size())
			}
			return []dto.FoundBanner{{BannerId: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", Size: "728x90"}}, nil
		},
	}
	svc := NewSelectUseCase(index)

	banners, err := svc.FindBanners(context.Background(), validFindInput())
	if err != nil {
		t.Fatalf("FindBanners error: %v", err)
	}
	if len(banners) != 1 {
		t.Fatalf("expected one banner, got %d", len(banners))
	}
}

func TestFindBannersRejectsInvalidInputBeforeIndex(t *testing.T) {
	called := false
	index := &mockIndex{
		findFn: func(_ context.Context, _ *dto.Query) ([]dto.FoundBanner, error) {
			called = true
			return nil, nil
		},
	}
	svc := NewSelectUseCase(index)

	input := validFindInput()
	delete(input, "tracking_id")
	_, err := svc.FindBanners(context.Background(), input)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var validationErr *dto.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *dto.ValidationError, got %T", err)
	}
	if validationErr.Error() != "Field `tracking_id` is required." {
		t.Errorf("unexpected message: %s", validationErr.Error())
	}
	if called {
		t.Error("index must not be consulted on invalid input")
	}
}

// --- EventUseCase ---

func TestRegisterImpressionStoresAndIndexes(t *testing.T) {
	repo := &mockRepo{}
	index := &mockIndex{}
	svc := NewEventUseCase(repo, index, testLogger())

	found, err := svc.RegisterImpression(context.Background(), validImpression())
	if err != nil {
		t.Fatalf("RegisterImpression error: %v", err)
	}
	if found.Id != 101 {
		t.Errorf("found event id = %d, want 101", found.Id)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one stored event, got %d", len(repo.created))
	}
	if got := repo.created[0].FlatKeywords(); len(got) != 1 || got[0] != "type=image" {
		t.Errorf("stored keywords = %v", got)
	}
	if len(index.indexedEvents) != 1 || index.indexedEvents[0] != 101 {
		t.Errorf("indexed events = %v", index.indexedEvents)
	}
}

func TestRegisterImpressionRejectsBadIdentifier(t *testing.T) {
	repo := &mockRepo{}
	svc := NewEventUseCase(repo, &mockIndex{}, testLogger())

	req := validImpression()
	req.BannerId = "nope"
	_, err := svc.RegisterImpression(context.Background(), req)
	if err == nil {
		t.Fatal("expected invariant error")
	}
	var invariantErr *domain.InvariantError
	if !errors.As(err, &invariantErr) {
		t.Fatalf("expected *domain.InvariantError, got %T", err)
	}
	if len(repo.created) != 0 {
		t.Error("invalid impression must not be stored")
	}
}

func TestRegisterImpressionToleratesIndexFailure(t *testing.T) {
	repo := &mockRepo{}
	index := &mockIndex{
		indexEventFn: func(_ context.Context, _ *domain.Event) error {
			return errors.New("index down")
		},
	}
	svc := NewEventUseCase(repo, index, testLogger())

	found, err := svc.RegisterImpression(context.Background(), validImpression())
	if err != nil {
		t.Fatalf("registration must survive index failure, got %v", err)
	}
	if found.Id != 101 {
		t.Errorf("found event id = %d", found.Id)
	}
}

func TestAttributeClickReturnsFoundEvent(t *testing.T) {
	repo := &mockRepo{
		attachFn: func(eventID, clickID int64, _ time.Time) (*domain.Event, error) {
			if eventID != 101 || clickID != 9 {
				t.Errorf("unexpected args: event=%d click=%d", eventID, clickID)
			}
			return restoredEvent(t, 101), nil
		},
	}
	svc := NewEventUseCase(repo, &mockIndex{}, testLogger())

	found, err := svc.AttributeClick(context.Background(), 101, 9, time.Now())
	if err != nil {
		t.Fatalf("AttributeClick error: %v", err)
	}
	if found.Id != 101 {
		t.Errorf("found event id = %d", found.Id)
	}
}

func TestAttributePaymentPropagatesRepoError(t *testing.T) {
	want := errors.New("storage broken")
	repo := &mockRepo{
		addFn: func(_, _ int64, _ float64, _ time.Time) (*domain.Event, error) {
			return nil, want
		},
	}
	svc := NewEventUseCase(repo, &mockIndex{}, testLogger())

	_, err := svc.AttributePayment(context.Background(), 101, 3, 10.0, time.Now())
	if !errors.Is(err, want) {
		t.Fatalf("expected propagated error, got %v", err)
	}
}
