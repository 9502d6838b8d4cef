// Package pagination tracks the opaque next/prev cursors of the ledger's
// paginated collections, one pair per stream.
package pagination

import (
	"log/slog"
	"net/url"
)

// Stream names a paginated collection.
type Stream string

const (
	StreamPayments Stream = "payments"
	StreamAssets   Stream = "assets"
)

// Direction selects which cursor of a stream to use.
type Direction string

const (
	Next Direction = "next"
	Prev Direction = "prev"
)

// ParseDirection maps a user-supplied page parameter to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case Next, Prev:
		return Direction(s), true
	}
	return "", false
}

// Cursors is the last seen cursor pair of one stream.
type Cursors struct {
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

// State holds the cursors of every stream. The zero value has no cursors.
type State struct {
	Payments Cursors `json:"payments"`
	Assets   Cursors `json:"assets"`
}

// Record returns a copy of s with the stream's cursors replaced by the ones
// extracted from the page links.
func (s State) Record(stream Stream, nextHref, prevHref string) State {
	c := Cursors{
		Next: CursorFromHref(nextHref),
		Prev: CursorFromHref(prevHref),
	}
	switch stream {
	case StreamPayments:
		s.Payments = c
	case StreamAssets:
		s.Assets = c
	default:
		slog.Warn("recording cursors for unknown stream", "stream", stream)
	}
	return s
}

// Current returns the stored cursor for stream and dir, and whether one is set.
func (s State) Current(stream Stream, dir Direction) (string, bool) {
	var c Cursors
	switch stream {
	case StreamPayments:
		c = s.Payments
	case StreamAssets:
		c = s.Assets
	default:
		return "", false
	}

	var cursor string
	if dir == Prev {
		cursor = c.Prev
	} else {
		cursor = c.Next
	}
	return cursor, cursor != ""
}

// CursorFromHref extracts the cursor query parameter of a page link.
// A missing or unparseable href yields "".
func CursorFromHref(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		slog.Warn("failed to parse page link", "href", href, "error", err)
		return ""
	}
	return u.Query().Get("cursor")
}
