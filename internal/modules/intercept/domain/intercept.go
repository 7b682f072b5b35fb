package domain

// Button is the response the user picks on a presented shield. Anything the
// platform sends that is not one of the two known values resolves Defer.
type Button string

const (
	ButtonPrimary   Button = "primary"
	ButtonSecondary Button = "secondary"
)

// Resolution is the terminal outcome of one block interaction. Close keeps
// the shield up, Defer allows the open attempt through.
type Resolution string

const (
	ResolutionClose Resolution = "close"
	ResolutionDefer Resolution = "defer"
)

// TargetRef is the raw material the platform hands the shield process: the
// token identifying the target plus whatever display hints the surface
// already carries. The registry mirror, when present, overrides the hints.
type TargetRef struct {
	Kind         string
	Token        []byte
	DisplayName  string
	CategoryName string
	FromCategory bool
}

// Directive tells the platform what to render on the block screen.
type Directive struct {
	TargetID    string
	Title       string
	Subtitle    string
	IntentionID string
}
