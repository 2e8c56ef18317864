package domain

import "time"

// Position is a player's field position.
type Position string

const (
	PositionGoalkeeper Position = "goalkeeper"
	PositionForward    Position = "forward"
	PositionMidfielder Position = "midfielder"
)

// Squad is the team a player is registered with.
type Squad string

const (
	SquadMen   Squad = "men"
	SquadYouth Squad = "youth"
)

// PlayerStatus marks whether a player is currently part of the roster.
type PlayerStatus string

const (
	PlayerActive   PlayerStatus = "active"
	PlayerInactive PlayerStatus = "inactive"
)

// Player represents a players row.
type Player struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Position  Position     `json:"position"`
	Squad     Squad        `json:"squad"`
	Status    PlayerStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewPlayer holds the caller-supplied fields of a player. The id and
// timestamps are assigned by the store.
type NewPlayer struct {
	Name     string       `json:"name" validate:"required,notblank,max=200"`
	Position Position     `json:"position" validate:"required,oneof=goalkeeper forward midfielder"`
	Squad    Squad        `json:"squad" validate:"required,oneof=men youth"`
	Status   PlayerStatus `json:"status" validate:"required,oneof=active inactive"`
}

// PlayerPatch is a partial player update. Nil fields are left unchanged.
type PlayerPatch struct {
	Name     *string       `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	Position *Position     `json:"position,omitempty" validate:"omitempty,oneof=goalkeeper forward midfielder"`
	Squad    *Squad        `json:"squad,omitempty" validate:"omitempty,oneof=men youth"`
	Status   *PlayerStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// PlayerSummary is the subset of a player embedded in attendance rows.
type PlayerSummary struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Squad    Squad    `json:"squad"`
}
