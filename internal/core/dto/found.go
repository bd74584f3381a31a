package dto

// FoundEvent is the minimal result payload for a successful event
// operation: the event id and nothing else.
type FoundEvent struct {
	Id int64 `json:"id"`
}

// FoundBanner is one candidate creative returned by the index for a query.
type FoundBanner struct {
	BannerId   string `json:"banner_id"`
	CampaignId string `json:"campaign_id"`
	Size       string `json:"size"`
}
