package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/squadroom/platform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func addPlayer(t *testing.T, s *Store, name string) *domain.Player {
	t.Helper()
	p, err := s.Players().Create(context.Background(), nil, domain.NewPlayer{
		Name: name, Position: domain.PositionForward, Squad: domain.SquadMen, Status: domain.PlayerActive,
	})
	require.NoError(t, err)
	return p
}

func addSession(t *testing.T, s *Store, title, date string) *domain.TrainingSession {
	t.Helper()
	sess, err := s.Sessions().Create(context.Background(), nil, domain.NewTrainingSession{
		Title: title, Date: date, Duration: 60,
	})
	require.NoError(t, err)
	return sess
}

func TestPlayers_ListOrderedByNameThenID(t *testing.T) {
	s := New()
	addPlayer(t, s, "Zoe")
	addPlayer(t, s, "alex")
	addPlayer(t, s, "Alex")
	addPlayer(t, s, "Alex")

	got, err := s.Players().List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, got, 4)

	var names []string
	for _, p := range got {
		names = append(names, p.Name)
	}
	// byte order: upper case sorts before lower case
	assert.Equal(t, []string{"Alex", "Alex", "Zoe", "alex"}, names)
	assert.Less(t, got[0].ID, got[1].ID)
}

func TestPlayers_UpdateStampsUpdatedAt(t *testing.T) {
	clock := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s := NewWithClock(func() time.Time { return clock })
	p := addPlayer(t, s, "Alex Kim")

	clock = clock.Add(time.Minute)
	updated, err := s.Players().Update(context.Background(), nil, p.ID, domain.PlayerPatch{Status: ptr(domain.PlayerInactive)})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, domain.PlayerInactive, updated.Status)
	assert.Equal(t, p.Name, updated.Name)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.Equal(t, clock, updated.UpdatedAt)

	missing, err := s.Players().Update(context.Background(), nil, 999, domain.PlayerPatch{})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPlayers_FindAndDelete(t *testing.T) {
	s := New()
	p := addPlayer(t, s, "Alex Kim")

	found, err := s.Players().FindByID(context.Background(), nil, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, found)

	n, err := s.Players().Delete(context.Background(), nil, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	found, err = s.Players().FindByID(context.Background(), nil, p.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	n, err = s.Players().Delete(context.Background(), nil, p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSessions_ListOrderedByDate(t *testing.T) {
	s := New()
	addSession(t, s, "c", "2025-03-01")
	addSession(t, s, "a", "2025-01-06")
	addSession(t, s, "b", "2025-01-20")

	got, err := s.Sessions().List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Title)
	assert.Equal(t, "b", got[1].Title)
	assert.Equal(t, "c", got[2].Title)
}

func TestSessions_UpdateClearsOptionalText(t *testing.T) {
	s := New()
	sess, err := s.Sessions().Create(context.Background(), nil, domain.NewTrainingSession{
		Title: "Drill", Date: "2025-01-06", Duration: 60, Location: ptr("Field 2"),
	})
	require.NoError(t, err)

	updated, err := s.Sessions().Update(context.Background(), nil, sess.ID, domain.SessionPatch{Location: ptr("")})
	require.NoError(t, err)
	require.NotNil(t, updated.Location)
	assert.Equal(t, "", *updated.Location)
	assert.Equal(t, "Drill", updated.Title)
}

func TestAttendance_UpsertKeepsRatingAndNotes(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := addPlayer(t, s, "Alex Kim")
	sess := addSession(t, s, "Monday Drill", "2025-01-06")

	_, err := s.Attendance().Upsert(ctx, nil, sess.ID, p.ID, domain.AttendanceConfirmed)
	require.NoError(t, err)
	_, err = s.Attendance().Update(ctx, nil, sess.ID, p.ID, domain.AttendancePatch{Rating: ptr(8), Notes: ptr("sharp")})
	require.NoError(t, err)

	a, err := s.Attendance().Upsert(ctx, nil, sess.ID, p.ID, domain.AttendanceAttended)
	require.NoError(t, err)
	assert.Equal(t, domain.AttendanceAttended, a.Status)
	require.NotNil(t, a.Rating)
	assert.Equal(t, 8, *a.Rating)
	assert.Equal(t, "sharp", *a.Notes)

	rows, err := s.Attendance().ListBySession(ctx, nil, sess.ID, "")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAttendance_UpsertUnknownReferences(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := addPlayer(t, s, "Alex Kim")
	sess := addSession(t, s, "Drill", "2025-01-06")

	_, err := s.Attendance().Upsert(ctx, nil, 999, p.ID, domain.AttendanceConfirmed)
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23503", pgErr.Code)

	_, err = s.Attendance().Upsert(ctx, nil, sess.ID, 999, domain.AttendanceConfirmed)
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "player_sessions_player_id_fkey", pgErr.ConstraintName)
}

func TestAttendance_ListFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	s := New()
	sess := addSession(t, s, "Drill", "2025-01-06")
	other := addSession(t, s, "Other", "2025-01-07")
	for _, name := range []string{"Sam Lee", "Alex Kim", "Kim Park"} {
		p := addPlayer(t, s, name)
		_, err := s.Attendance().Upsert(ctx, nil, sess.ID, p.ID, domain.AttendanceConfirmed)
		require.NoError(t, err)
	}
	stranger := addPlayer(t, s, "Kimi Other")
	_, err := s.Attendance().Upsert(ctx, nil, other.ID, stranger.ID, domain.AttendanceConfirmed)
	require.NoError(t, err)

	rows, err := s.Attendance().ListBySession(ctx, nil, sess.ID, "")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Alex Kim", rows[0].Player.Name)
	assert.Equal(t, "Sam Lee", rows[2].Player.Name)

	rows, err = s.Attendance().ListBySession(ctx, nil, sess.ID, "KIM")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alex Kim", rows[0].Player.Name)
	assert.Equal(t, "Kim Park", rows[1].Player.Name)

	rows, err = s.Attendance().ListBySession(ctx, nil, 999, "")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestAttendance_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := addPlayer(t, s, "Alex Kim")
	sess := addSession(t, s, "Drill", "2025-01-06")

	missing, err := s.Attendance().Update(ctx, nil, sess.ID, p.ID, domain.AttendancePatch{Rating: ptr(5)})
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = s.Attendance().Upsert(ctx, nil, sess.ID, p.ID, domain.AttendanceConfirmed)
	require.NoError(t, err)

	a, err := s.Attendance().Update(ctx, nil, sess.ID, p.ID, domain.AttendancePatch{Status: ptr(domain.AttendanceAbsent)})
	require.NoError(t, err)
	assert.Equal(t, domain.AttendanceAbsent, a.Status)
	assert.Nil(t, a.Rating)
	assert.Nil(t, a.Notes)

	n, err := s.Attendance().Delete(ctx, nil, sess.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = s.Attendance().Delete(ctx, nil, sess.ID, p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCascadeDeletes(t *testing.T) {
	ctx := context.Background()
	s := New()
	p1 := addPlayer(t, s, "Alex Kim")
	p2 := addPlayer(t, s, "Sam Lee")
	s1 := addSession(t, s, "One", "2025-01-06")
	s2 := addSession(t, s, "Two", "2025-01-07")
	for _, sess := range []*domain.TrainingSession{s1, s2} {
		for _, p := range []*domain.Player{p1, p2} {
			_, err := s.Attendance().Upsert(ctx, nil, sess.ID, p.ID, domain.AttendanceConfirmed)
			require.NoError(t, err)
		}
	}

	_, err := s.Players().Delete(ctx, nil, p1.ID)
	require.NoError(t, err)
	rows, err := s.Attendance().ListBySession(ctx, nil, s2.ID, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, p2.ID, rows[0].PlayerID)

	_, err = s.Sessions().Delete(ctx, nil, s1.ID)
	require.NoError(t, err)
	rows, err = s.Attendance().ListBySession(ctx, nil, s1.ID, "")
	require.NoError(t, err)
	assert.Empty(t, rows)
	rows, err = s.Attendance().ListBySession(ctx, nil, s2.ID, "")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestReturnedRowsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := addPlayer(t, s, "Alex Kim")
	sess := addSession(t, s, "Drill", "2025-01-06")
	_, err := s.Attendance().Upsert(ctx, nil, sess.ID, p.ID, domain.AttendanceConfirmed)
	require.NoError(t, err)
	a, err := s.Attendance().Update(ctx, nil, sess.ID, p.ID, domain.AttendancePatch{Rating: ptr(4)})
	require.NoError(t, err)

	*a.Rating = 9
	rows, err := s.Attendance().ListBySession(ctx, nil, sess.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 4, *rows[0].Rating)
}
