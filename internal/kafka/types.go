package kafka

// EngagementEvent is the payload the site analytics pipeline publishes
// when a visitor interacts outside the HTTP API (embedded practice tests,
// tracked document links, referral redemptions).
type EngagementEvent struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
}

const (
	EventParticipation = "participation"
	EventReferral      = "referral"
	EventDownload      = "download"
)
