package domain

import "time"

// Change-feed entity names.
const (
	EntityPlayer     = "player"
	EntitySession    = "training_session"
	EntityAttendance = "attendance"
)

// Change-feed actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ChangeEvent announces a successful mutation so that every API replica can
// drop listings derived from the changed relation.
type ChangeEvent struct {
	Origin     string    `json:"origin"`
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ID         int64     `json:"id,omitempty"`
	SessionID  int64     `json:"session_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewChangeEvent stamps a change event with the current time.
func NewChangeEvent(entity, action string, id int64) ChangeEvent {
	return ChangeEvent{
		Entity:     entity,
		Action:     action,
		ID:         id,
		OccurredAt: time.Now().UTC(),
	}
}

// NewAttendanceEvent builds a change event for a (session, player) pair.
func NewAttendanceEvent(action string, sessionID, playerID int64) ChangeEvent {
	evt := NewChangeEvent(EntityAttendance, action, playerID)
	evt.SessionID = sessionID
	return evt
}
