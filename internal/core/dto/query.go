package dto

import (
	"adselect/internal/core/domain"
)

// Query is the canonical, validated form of one ad-slot request. It is
// built once per inbound request, is immutable afterwards and is safe to
// share between goroutines.
type Query struct {
	publisherID domain.Id
	siteID      domain.Id
	zoneID      domain.Id
	userID      domain.Id
	trackingID  domain.Id
	size        domain.Size

	requireFilters domain.Filters
	excludeFilters domain.Filters
	keywords       domain.Keywords
	zoneOptions    map[string]any
}

// QueryFromMap validates a raw request mapping into a Query. Fields are
// checked for presence in a fixed order and the first violation is reported;
// only after every presence check passes are identifier and size formats
// parsed. All failures surface as *ValidationError.
func QueryFromMap(input map[string]any) (*Query, error) {
	required := []string{
		"publisher_id",
		"site_id",
		"zone_id",
		"user_id",
		"tracking_id",
		"banner_size",
		"keywords",
		"banner_filters",
	}
	for _, name := range required {
		value, ok := input[name]
		if !ok || value == nil {
			return nil, requiredField(name)
		}
		// user_id and tracking_id must additionally be non-empty.
		if name == "user_id" || name == "tracking_id" {
			if s, isString := value.(string); isString && s == "" {
				return nil, requiredField(name)
			}
		}
	}

	publisherID, err := stringField(input, "publisher_id")
	if err != nil {
		return nil, err
	}
	siteID, err := stringField(input, "site_id")
	if err != nil {
		return nil, err
	}
	zoneID, err := stringField(input, "zone_id")
	if err != nil {
		return nil, err
	}
	userID, err := stringField(input, "user_id")
	if err != nil {
		return nil, err
	}
	trackingID, err := stringField(input, "tracking_id")
	if err != nil {
		return nil, err
	}
	sizeValue, err := stringField(input, "banner_size")
	if err != nil {
		return nil, err
	}

	q := &Query{zoneOptions: map[string]any{}}
	if q.publisherID, err = domain.NewId(publisherID); err != nil {
		return nil, wrapInvariant(err)
	}
	if q.siteID, err = domain.NewId(siteID); err != nil {
		return nil, wrapInvariant(err)
	}
	if q.zoneID, err = domain.NewId(zoneID); err != nil {
		return nil, wrapInvariant(err)
	}
	if q.userID, err = domain.NewId(userID); err != nil {
		return nil, wrapInvariant(err)
	}
	if q.trackingID, err = domain.NewId(trackingID); err != nil {
		return nil, wrapInvariant(err)
	}
	if q.size, err = domain.NewSize(sizeValue); err != nil {
		return nil, wrapInvariant(err)
	}

	if q.keywords, err = domain.ParseKeywords(input["keywords"]); err != nil {
		return nil, wrapInvariant(err)
	}

	filters, ok := input["banner_filters"].(map[string]any)
	if !ok {
		return nil, &ValidationError{msg: "Field `banner_filters` must be a mapping."}
	}
	if q.requireFilters, err = domain.ParseFilters(filters["require"]); err != nil {
		return nil, wrapInvariant(err)
	}
	if q.excludeFilters, err = domain.ParseFilters(filters["exclude"]); err != nil {
		return nil, wrapInvariant(err)
	}

	if rawOptions, ok := input["zone_options"]; ok {
		options, isMap := rawOptions.(map[string]any)
		if !isMap {
			return nil, &ValidationError{msg: "Field `zone_options` must be a mapping."}
		}
		q.zoneOptions = options
	}
	return q, nil
}

func stringField(input map[string]any, name string) (string, error) {
	s, ok := input[name].(string)
	if !ok {
		return "", requiredField(name)
	}
	return s, nil
}

func (q *Query) PublisherId() domain.Id { return q.publisherID }
func (q *Query) SiteId() domain.Id      { return q.siteID }
func (q *Query) ZoneId() domain.Id      { return q.zoneID }
func (q *Query) UserId() domain.Id      { return q.userID }
func (q *Query) TrackingId() domain.Id  { return q.trackingID }
func (q *Query) Size() domain.Size      { return q.size }

func (q *Query) RequireFilters() domain.Filters { return q.requireFilters }
func (q *Query) ExcludeFilters() domain.Filters { return q.excludeFilters }
func (q *Query) Keywords() domain.Keywords      { return q.keywords }

// ZoneOption returns an auxiliary zone setting, falling back to def when the
// option was not supplied. Option keys are open-ended and never validated.
func (q *Query) ZoneOption(key string, def any) any {
	if v, ok := q.zoneOptions[key]; ok {
		return v
	}
	return def
}

// FlatKeywords returns the query's keyword context as "key=value" tokens.
func (q *Query) FlatKeywords() []string {
	return q.keywords.Flatten()
}

// RequireFields and ExcludeFields project the filter trees onto the flat
// index field paths used at the search boundary.
func (q *Query) RequireFields() map[string][]string {
	return q.requireFilters.Fields(domain.FieldPath("filters", "require"))
}

func (q *Query) ExcludeFields() map[string][]string {
	return q.excludeFilters.Fields(domain.FieldPath("filters", "exclude"))
}
