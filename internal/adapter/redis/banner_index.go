package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"adselect/internal/core/domain"
	"adselect/internal/core/dto"
	"adselect/internal/core/port"
)

// BannerIndex implements port.BannerIndex over Redis sets. Each creative
// document keeps one set per flattened field path plus a small meta hash;
// a size index set maps a creative size to its banner ids:
//
//	idx:banner:size:<WxH>      set of banner ids
//	banners:<id>               hash {campaign_id, size}
//	banners:<id>:<fieldpath>   set of field values
//	events:<id>:keywords       set of flattened event keyword tokens
//	idx:events:day:<Y-m-d>     set of event ids per day bucket
type BannerIndex struct {
	client rueidis.Client
}

// NewBannerIndex creates an index adapter over an established client.
func NewBannerIndex(client rueidis.Client) *BannerIndex {
	return &BannerIndex{client: client}
}

// FindBanners returns creatives of the requested size whose flattened
// fields intersect every require entry and none of the exclude entries.
func (i *BannerIndex) FindBanners(ctx context.Context, q *dto.Query) ([]dto.FoundBanner, error) {
	cmd := i.client.B().Smembers().Key(sizeIndexKey(q.Size())).Build()
	candidates, err := i.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("size lookup: %w", err)
	}

	require := q.RequireFields()
	exclude := q.ExcludeFields()

	found := make([]dto.FoundBanner, 0, len(candidates))
	for _, bannerID := range candidates {
		ok, err := i.matches(ctx, bannerID, require, exclude)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		banner, err := i.loadBanner(ctx, bannerID, q.Size())
		if err != nil {
			return nil, err
		}
		found = append(found, banner)
	}
	return found, nil
}

func (i *BannerIndex) matches(ctx context.Context, bannerID string, require, exclude map[string][]string) (bool, error) {
	for field, values := range require {
		hit, err := i.anyMember(ctx, bannerFieldKey(bannerID, field), values)
		if err != nil {
			return false, err
		}
		if !hit {
			return false, nil
		}
	}
	for field, values := range exclude {
		hit, err := i.anyMember(ctx, bannerFieldKey(bannerID, field), values)
		if err != nil {
			return false, err
		}
		if hit {
			return false, nil
		}
	}
	return true, nil
}

// anyMember reports whether the set at key contains at least one of values.
func (i *BannerIndex) anyMember(ctx context.Context, key string, values []string) (bool, error) {
	if len(values) == 0 {
		return false, nil
	}
	cmd := i.client.B().Smismember().Key(key).Member(values...).Build()
	hits, err := i.client.Do(ctx, cmd).AsIntSlice()
	if err != nil {
		return false, fmt.Errorf("smismember %s: %w", key, err)
	}
	for _, hit := range hits {
		if hit != 0 {
			return true, nil
		}
	}
	return false, nil
}

func (i *BannerIndex) loadBanner(ctx context.Context, bannerID string, size domain.Size) (dto.FoundBanner, error) {
	cmd := i.client.B().Hgetall().Key(bannerKey(bannerID)).Build()
	meta, err := i.client.Do(ctx, cmd).AsStrMap()
	if err != nil {
		return dto.FoundBanner{}, fmt.Errorf("banner meta %s: %w", bannerID, err)
	}
	banner := dto.FoundBanner{
		BannerId:   bannerID,
		CampaignId: meta["campaign_id"],
		Size:       meta["size"],
	}
	if banner.Size == "" {
		banner.Size = size.String()
	}
	return banner, nil
}

// IndexEvent stores the event's flattened keyword tokens and registers the
// event in its day bucket.
func (i *BannerIndex) IndexEvent(ctx context.Context, ev *domain.Event) error {
	cmds := make([]rueidis.Completed, 0, 2)
	if tokens := ev.FlatKeywords(); len(tokens) > 0 {
		cmds = append(cmds, i.client.B().Sadd().Key(eventKeywordsKey(ev.Id())).Member(tokens...).Build())
	}
	cmds = append(cmds, i.client.B().Sadd().
		Key(eventDayKey(ev.DayDate())).
		Member(strconv.FormatInt(ev.Id(), 10)).
		Build())

	for _, resp := range i.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return fmt.Errorf("index event %d: %w", ev.Id(), err)
		}
	}
	return nil
}

// Compile-time check: BannerIndex implements the port.
var _ port.BannerIndex = (*BannerIndex)(nil)

func sizeIndexKey(size domain.Size) string {
	return "idx:banner:size:" + size.String()
}

func bannerKey(bannerID string) string {
	return "banners:" + bannerID
}

func bannerFieldKey(bannerID, field string) string {
	return bannerKey(bannerID) + ":" + field
}

func eventKeywordsKey(eventID int64) string {
	return "events:" + strconv.FormatInt(eventID, 10) + ":keywords"
}

func eventDayKey(day string) string {
	return "idx:events:day:" + day
}
