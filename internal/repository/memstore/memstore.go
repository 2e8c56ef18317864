// Package memstore is an in-process implementation of the repository
// interfaces. It mirrors the Postgres schema's ordering, cascade and
// foreign-key behavior and backs STORE=memory as well as unit tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/squadroom/platform/internal/domain"
	"github.com/squadroom/platform/internal/repository"
)

// Postgres SQLSTATE codes reproduced by the store.
const (
	codeForeignKeyViolation = "23503"
)

type attendanceKey struct {
	sessionID int64
	playerID  int64
}

// Store holds all three relations behind a single lock.
type Store struct {
	mu         sync.RWMutex
	now        func() time.Time
	nextPlayer int64
	nextSess   int64
	players    map[int64]domain.Player
	sessions   map[int64]domain.TrainingSession
	attendance map[attendanceKey]domain.Attendance
}

// New creates an empty store stamping rows with the wall clock.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty store stamping rows with the given clock.
func NewWithClock(now func() time.Time) *Store {
	return &Store{
		now:        now,
		players:    make(map[int64]domain.Player),
		sessions:   make(map[int64]domain.TrainingSession),
		attendance: make(map[attendanceKey]domain.Attendance),
	}
}

// Players returns a PlayerRepository view of the store.
func (s *Store) Players() repository.PlayerRepository { return playerStore{s} }

// Sessions returns a SessionRepository view of the store.
func (s *Store) Sessions() repository.SessionRepository { return sessionStore{s} }

// Attendance returns an AttendanceRepository view of the store.
func (s *Store) Attendance() repository.AttendanceRepository { return attendanceStore{s} }

func fkViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           codeForeignKeyViolation,
		Message:        "insert or update violates foreign key constraint",
		ConstraintName: constraint,
	}
}

// --- players ---

type playerStore struct{ s *Store }

func (p playerStore) List(_ context.Context, _ repository.DBTX) ([]domain.Player, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	out := make([]domain.Player, 0, len(p.s.players))
	for _, pl := range p.s.players {
		out = append(out, pl)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (p playerStore) FindByID(_ context.Context, _ repository.DBTX, id int64) (*domain.Player, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	pl, ok := p.s.players[id]
	if !ok {
		return nil, nil
	}
	return &pl, nil
}

func (p playerStore) Create(_ context.Context, _ repository.DBTX, in domain.NewPlayer) (*domain.Player, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	p.s.nextPlayer++
	now := p.s.now()
	pl := domain.Player{
		ID:        p.s.nextPlayer,
		Name:      in.Name,
		Position:  in.Position,
		Squad:     in.Squad,
		Status:    in.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.s.players[pl.ID] = pl
	return &pl, nil
}

func (p playerStore) Update(_ context.Context, _ repository.DBTX, id int64, patch domain.PlayerPatch) (*domain.Player, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	pl, ok := p.s.players[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		pl.Name = *patch.Name
	}
	if patch.Position != nil {
		pl.Position = *patch.Position
	}
	if patch.Squad != nil {
		pl.Squad = *patch.Squad
	}
	if patch.Status != nil {
		pl.Status = *patch.Status
	}
	pl.UpdatedAt = p.s.now()
	p.s.players[id] = pl
	return &pl, nil
}

func (p playerStore) Delete(_ context.Context, _ repository.DBTX, id int64) (int64, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if _, ok := p.s.players[id]; !ok {
		return 0, nil
	}
	delete(p.s.players, id)
	for k := range p.s.attendance {
		if k.playerID == id {
			delete(p.s.attendance, k)
		}
	}
	return 1, nil
}

// --- training sessions ---

type sessionStore struct{ s *Store }

func (ss sessionStore) List(_ context.Context, _ repository.DBTX) ([]domain.TrainingSession, error) {
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()

	out := make([]domain.TrainingSession, 0, len(ss.s.sessions))
	for _, sess := range ss.s.sessions {
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (ss sessionStore) FindByID(_ context.Context, _ repository.DBTX, id int64) (*domain.TrainingSession, error) {
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()

	sess, ok := ss.s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (ss sessionStore) Create(_ context.Context, _ repository.DBTX, in domain.NewTrainingSession) (*domain.TrainingSession, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()

	ss.s.nextSess++
	now := ss.s.now()
	sess := domain.TrainingSession{
		ID:          ss.s.nextSess,
		Title:       in.Title,
		Description: cloneString(in.Description),
		Date:        in.Date,
		Duration:    in.Duration,
		Location:    cloneString(in.Location),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ss.s.sessions[sess.ID] = sess
	return &sess, nil
}

func (ss sessionStore) Update(_ context.Context, _ repository.DBTX, id int64, patch domain.SessionPatch) (*domain.TrainingSession, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()

	sess, ok := ss.s.sessions[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		sess.Title = *patch.Title
	}
	if patch.Description != nil {
		sess.Description = cloneString(patch.Description)
	}
	if patch.Date != nil {
		sess.Date = *patch.Date
	}
	if patch.Duration != nil {
		sess.Duration = *patch.Duration
	}
	if patch.Location != nil {
		sess.Location = cloneString(patch.Location)
	}
	sess.UpdatedAt = ss.s.now()
	ss.s.sessions[id] = sess
	return &sess, nil
}

func (ss sessionStore) Delete(_ context.Context, _ repository.DBTX, id int64) (int64, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()

	if _, ok := ss.s.sessions[id]; !ok {
		return 0, nil
	}
	delete(ss.s.sessions, id)
	for k := range ss.s.attendance {
		if k.sessionID == id {
			delete(ss.s.attendance, k)
		}
	}
	return 1, nil
}

// --- attendance ---

type attendanceStore struct{ s *Store }

func (as attendanceStore) ListBySession(_ context.Context, _ repository.DBTX, sessionID int64, nameQuery string) ([]domain.AttendanceRow, error) {
	as.s.mu.RLock()
	defer as.s.mu.RUnlock()

	needle := strings.ToLower(nameQuery)
	out := []domain.AttendanceRow{}
	for k, a := range as.s.attendance {
		if k.sessionID != sessionID {
			continue
		}
		pl, ok := as.s.players[k.playerID]
		if !ok {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(pl.Name), needle) {
			continue
		}
		out = append(out, domain.AttendanceRow{
			Attendance: cloneAttendance(a),
			Player: domain.PlayerSummary{
				ID:       pl.ID,
				Name:     pl.Name,
				Position: pl.Position,
				Squad:    pl.Squad,
			},
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Player.Name != out[j].Player.Name {
			return out[i].Player.Name < out[j].Player.Name
		}
		return out[i].Player.ID < out[j].Player.ID
	})
	return out, nil
}

func (as attendanceStore) Upsert(_ context.Context, _ repository.DBTX, sessionID, playerID int64, status domain.AttendanceStatus) (*domain.Attendance, error) {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()

	if _, ok := as.s.sessions[sessionID]; !ok {
		return nil, fkViolation("player_sessions_session_id_fkey")
	}
	if _, ok := as.s.players[playerID]; !ok {
		return nil, fkViolation("player_sessions_player_id_fkey")
	}

	key := attendanceKey{sessionID: sessionID, playerID: playerID}
	a, ok := as.s.attendance[key]
	if !ok {
		a = domain.Attendance{SessionID: sessionID, PlayerID: playerID}
	}
	a.Status = status
	as.s.attendance[key] = a
	out := cloneAttendance(a)
	return &out, nil
}

func (as attendanceStore) Update(_ context.Context, _ repository.DBTX, sessionID, playerID int64, patch domain.AttendancePatch) (*domain.Attendance, error) {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()

	key := attendanceKey{sessionID: sessionID, playerID: playerID}
	a, ok := as.s.attendance[key]
	if !ok {
		return nil, nil
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.Rating != nil {
		v := *patch.Rating
		a.Rating = &v
	}
	if patch.Notes != nil {
		a.Notes = cloneString(patch.Notes)
	}
	as.s.attendance[key] = a
	out := cloneAttendance(a)
	return &out, nil
}

func (as attendanceStore) Delete(_ context.Context, _ repository.DBTX, sessionID, playerID int64) (int64, error) {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()

	key := attendanceKey{sessionID: sessionID, playerID: playerID}
	if _, ok := as.s.attendance[key]; !ok {
		return 0, nil
	}
	delete(as.s.attendance, key)
	return 1, nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneAttendance(a domain.Attendance) domain.Attendance {
	out := a
	if a.Rating != nil {
		v := *a.Rating
		out.Rating = &v
	}
	out.Notes = cloneString(a.Notes)
	return out
}
