package deeplink

import (
	"fmt"
	"net/url"
	"strconv"
)

// The deferred notification carries a mindgate://intention link; it is the
// only path from a closed shield back into an intention session, possibly in
// a later process launch.
const (
	Scheme = "mindgate"
	host   = "intention"
)

type IntentionLink struct {
	IntentionID  string
	TargetID     string
	FromCategory bool
}

func (l IntentionLink) String() string {
	q := url.Values{}
	q.Set("intention", l.IntentionID)
	if l.TargetID != "" {
		q.Set("target", l.TargetID)
	}
	if l.FromCategory {
		q.Set("from_category", "true")
	}
	u := url.URL{Scheme: Scheme, Host: host, RawQuery: q.Encode()}
	return u.String()
}

func Parse(raw string) (IntentionLink, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return IntentionLink{}, fmt.Errorf("parse link: %w", err)
	}
	if u.Scheme != Scheme || u.Host != host {
		return IntentionLink{}, fmt.Errorf("not an intention link: %s", raw)
	}
	q := u.Query()
	link := IntentionLink{
		IntentionID: q.Get("intention"),
		TargetID:    q.Get("target"),
	}
	if link.IntentionID == "" {
		return IntentionLink{}, fmt.Errorf("intention link missing intention id: %s", raw)
	}
	if v := q.Get("from_category"); v != "" {
		fromCategory, err := strconv.ParseBool(v)
		if err != nil {
			return IntentionLink{}, fmt.Errorf("parse from_category: %w", err)
		}
		link.FromCategory = fromCategory
	}
	return link, nil
}
