package domain

// AttendanceStatus is the state of a player's participation in a session.
type AttendanceStatus string

const (
	AttendanceConfirmed AttendanceStatus = "confirmed"
	AttendanceTentative AttendanceStatus = "tentative"
	AttendanceDeclined  AttendanceStatus = "declined"
	AttendanceAttended  AttendanceStatus = "attended"
	AttendanceAbsent    AttendanceStatus = "absent"
)

// Rating bounds for performance ratings.
const (
	MinRating = 1
	MaxRating = 10
)

// Attendance represents a player_sessions row, keyed by (session_id, player_id).
type Attendance struct {
	SessionID int64            `json:"session_id"`
	PlayerID  int64            `json:"player_id"`
	Status    AttendanceStatus `json:"attendance_status"`
	Rating    *int             `json:"performance_rating"`
	Notes     *string          `json:"notes"`
}

// AttendanceRow is an attendance record joined with the player it refers to.
type AttendanceRow struct {
	Attendance
	RatingLabel string        `json:"rating_label,omitempty"`
	Player      PlayerSummary `json:"player"`
}

// AddPlayerInput attaches a player to a session. An empty status means confirmed.
type AddPlayerInput struct {
	PlayerID int64            `json:"player_id" validate:"required,gt=0"`
	Status   AttendanceStatus `json:"attendance_status,omitempty" validate:"omitempty,oneof=confirmed tentative declined attended absent"`
}

// AttendancePatch is a partial attendance update. Nil fields are left unchanged.
type AttendancePatch struct {
	Status *AttendanceStatus `json:"attendance_status,omitempty" validate:"omitempty,oneof=confirmed tentative declined attended absent"`
	Rating *int              `json:"performance_rating,omitempty" validate:"omitempty,min=1,max=10"`
	Notes  *string           `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// IsEmpty reports whether the patch changes nothing.
func (p AttendancePatch) IsEmpty() bool {
	return p.Status == nil && p.Rating == nil && p.Notes == nil
}

// RatingLabel buckets a performance rating for display.
func RatingLabel(rating int) string {
	switch {
	case rating < MinRating || rating > MaxRating:
		return ""
	case rating < 4:
		return "Poor"
	case rating < 7:
		return "Average"
	default:
		return "Excellent"
	}
}
