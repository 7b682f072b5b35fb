package dto

// ShieldInput carries the platform's raw target reference into the shield
// path. Token is the opaque platform identifier the target id derives from.
type ShieldInput struct {
	Kind         string
	Token        []byte
	DisplayName  string
	CategoryName string
	FromCategory bool
}

type DirectiveOutput struct {
	TargetID    string `json:"target_id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	IntentionID string `json:"intention_id"`
}
