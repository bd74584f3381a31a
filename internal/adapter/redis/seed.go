package redis

import (
	"context"
	"fmt"

	"adselect/internal/core/domain"
)

// BannerDoc is one creative document to index: its meta plus flattened
// field sets keyed by index field path.
type BannerDoc struct {
	BannerId   domain.Id
	CampaignId domain.Id
	Size       domain.Size
	Fields     map[string][]string
}

// IndexBanner writes a creative document into the index: meta hash, field
// sets and the size index entry.
func (i *BannerIndex) IndexBanner(ctx context.Context, doc BannerDoc) error {
	bannerID := doc.BannerId.String()
	b := i.client.B()

	metaCmd := b.Hset().Key(bannerKey(bannerID)).
		FieldValue().
		FieldValue("campaign_id", doc.CampaignId.String()).
		FieldValue("size", doc.Size.String()).
		Build()
	if err := i.client.Do(ctx, metaCmd).Error(); err != nil {
		return fmt.Errorf("banner meta %s: %w", bannerID, err)
	}

	sizeCmd := b.Sadd().Key(sizeIndexKey(doc.Size)).Member(bannerID).Build()
	if err := i.client.Do(ctx, sizeCmd).Error(); err != nil {
		return fmt.Errorf("size index %s: %w", bannerID, err)
	}

	for field, values := range doc.Fields {
		if len(values) == 0 {
			continue
		}
		cmd := b.Sadd().Key(bannerFieldKey(bannerID, field)).Member(values...).Build()
		if err := i.client.Do(ctx, cmd).Error(); err != nil {
			return fmt.Errorf("field %s of %s: %w", field, bannerID, err)
		}
	}
	return nil
}

// SeedDemo inserts a handful of demo creatives so a local instance answers
// find queries out of the box.
func (i *BannerIndex) SeedDemo(ctx context.Context) error {
	sizes := []string{"728x90", "300x250", "160x600"}
	devices := [][]string{{"desktop"}, {"mobile"}, {"desktop", "mobile"}}

	for n := 1; n <= 9; n++ {
		size, _ := domain.NewSize(sizes[(n-1)%len(sizes)])
		doc := BannerDoc{
			BannerId:   domain.NewUniqueId(),
			CampaignId: domain.NewUniqueId(),
			Size:       size,
			Fields: map[string][]string{
				domain.FieldPath("filters", "require", "device", "type"): devices[(n-1)%len(devices)],
				domain.FieldPath("banner", "keywords", "type"):           {"image"},
			},
		}
		if err := i.IndexBanner(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}
