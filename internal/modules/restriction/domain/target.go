package domain

import "mindgate/internal/platform/targetid"

const SchemaVersion = 1

type Kind string

const (
	KindApp      Kind = "app"
	KindCategory Kind = "category"
	KindDomain   Kind = "domain"
)

func (k Kind) Valid() bool {
	switch k {
	case KindApp, KindCategory, KindDomain:
		return true
	}
	return false
}

// Target is one restrictable thing. Token is the opaque platform token
// (JSON encodes it as base64); tokens may alias or rotate, so identity is
// kind + token, never the display name.
type Target struct {
	Kind        Kind   `json:"kind"`
	Token       []byte `json:"token"`
	DisplayName string `json:"display_name,omitempty"`
	Enabled     bool   `json:"enabled"`
	IntentionID string `json:"intention_id,omitempty"`
}

func (t Target) ID() string {
	return targetid.Derive(string(t.Kind), t.Token)
}

// EnforcedTarget is the projection handed to the enforcement capability.
type EnforcedTarget struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	DisplayName string `json:"display_name,omitempty"`
	IntentionID string `json:"intention_id,omitempty"`
}
