package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status enum. Stored values are compared case-insensitively.
type Status string

const (
	Reported   Status = "reported"
	InProgress Status = "in progress"
	Resolved   Status = "resolved"
	Unknown    Status = "unknown"
)

// Statuses lists the canonical values in the order the form offers them.
var Statuses = []Status{Reported, InProgress, Resolved}

// Label is the human readable form used on the status select.
func (s Status) Label() string {
	switch s {
	case Reported:
		return "Reported"
	case InProgress:
		return "In Progress"
	case Resolved:
		return "Resolved"
	default:
		return "Unknown"
	}
}

// NormalizeStatus maps a stored value onto its canonical form by lowercasing
// it. Anything else, surrounding whitespace included, becomes Unknown.
func NormalizeStatus(raw string) Status {
	switch s := Status(strings.ToLower(raw)); s {
	case Reported, InProgress, Resolved:
		return s
	default:
		return Unknown
	}
}

// ParseStatus accepts only the three canonical statuses (any case). Form
// input is trimmed first.
func ParseStatus(raw string) (Status, bool) {
	s := NormalizeStatus(strings.TrimSpace(raw))
	return s, s != Unknown
}

// Issue represents a civic issue reported through the SpotFix app
type Issue struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status,omitempty" json:"status"`
	Latitude    *float64           `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   *float64           `bson:"longitude,omitempty" json:"longitude,omitempty"`
	ImageURL    *string            `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// CurrentStatus is the canonical status of the issue, Unknown if unset.
func (i Issue) CurrentStatus() Status {
	return NormalizeStatus(i.Status)
}

// HasImage reports whether an image URL is attached.
func (i Issue) HasImage() bool {
	return i.ImageURL != nil && *i.ImageURL != ""
}

// StatusCounts holds the dashboard counters.
type StatusCounts struct {
	Total      int `json:"total"`
	Reported   int `json:"reported"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
}

// Unrecognized is the number of issues with a missing or unknown status.
func (c StatusCounts) Unrecognized() int {
	return c.Total - c.Reported - c.InProgress - c.Resolved
}

// CountByStatus tallies issues per status bucket. Every issue counts
// towards Total; only canonical statuses count towards a bucket.
func CountByStatus(issues []Issue) StatusCounts {
	counts := StatusCounts{Total: len(issues)}
	for _, issue := range issues {
		switch issue.CurrentStatus() {
		case Reported:
			counts.Reported++
		case InProgress:
			counts.InProgress++
		case Resolved:
			counts.Resolved++
		}
	}
	return counts
}
