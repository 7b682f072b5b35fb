package dto

type TargetInput struct {
	Kind        string
	Token       []byte
	DisplayName string
}

type TargetOutput struct {
	ID          string
	Kind        string
	DisplayName string
	Enabled     bool
	IntentionID string
}
