package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for session dates.
const DateLayout = "2006-01-02"

// MaxSessionDuration is the longest accepted session, in minutes. It must
// match the max tag on the Duration fields below.
const MaxSessionDuration = 24 * 60

// TrainingSession represents a training_sessions row.
type TrainingSession struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Date        string    `json:"date"`
	Duration    int       `json:"duration"`
	Location    *string   `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTrainingSession holds the caller-supplied fields of a training session.
type NewTrainingSession struct {
	Title       string  `json:"title" validate:"required,notblank,max=200"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Duration    int     `json:"duration" validate:"required,gt=0,max=1440"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=200"`
}

// SessionPatch is a partial session update. Nil fields are left unchanged.
type SessionPatch struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,notblank,max=200"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Duration    *int    `json:"duration,omitempty" validate:"omitempty,gt=0,max=1440"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=200"`
}

// FormatDuration renders a duration in minutes as "1h 30m", "45m" or "2h".
func FormatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
