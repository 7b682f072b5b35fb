package domain

import "time"

// Request is a deferred signal handed to the platform notification surface.
// Link carries enough payload to resume an intention session from a
// different process launch.
type Request struct {
	ID        string    `json:"id"`
	TargetID  string    `json:"target_id,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Link      string    `json:"link,omitempty"`
	DeliverAt time.Time `json:"deliver_at"`
	CreatedAt time.Time `json:"created_at"`
}
