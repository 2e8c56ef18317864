package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CachesUntilInvalidated(t *testing.T) {
	c := NewListings()
	calls := 0
	fill := func() ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	got, err := Load(c, KeyPlayers, fill)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.True(t, c.Cached(KeyPlayers))

	_, err = Load(c, KeyPlayers, fill)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	c.Invalidate(KeyPlayers)
	assert.False(t, c.Cached(KeyPlayers))

	_, err = Load(c, KeyPlayers, fill)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestLoad_ErrorNotCached(t *testing.T) {
	c := NewListings()
	boom := errors.New("store down")

	_, err := Load(c, KeySessions, func() ([]int, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Cached(KeySessions))

	got, err := Load(c, KeySessions, func() ([]int, error) { return []int{1}, nil })
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got)
}

func TestLoad_ReturnsCopies(t *testing.T) {
	c := NewListings()
	first, err := Load(c, KeyPlayers, func() ([]string, error) { return []string{"a"}, nil })
	require.NoError(t, err)
	first[0] = "mutated"

	second, err := Load(c, KeyPlayers, func() ([]string, error) { return nil, errors.New("unused") })
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, second)
}

func TestLoad_InvalidationDuringFillDiscardsResult(t *testing.T) {
	c := NewListings()
	_, err := Load(c, KeyPlayers, func() ([]string, error) {
		c.Invalidate(KeyPlayers)
		return []string{"stale"}, nil
	})
	require.NoError(t, err)
	assert.False(t, c.Cached(KeyPlayers))
}

func TestInvalidate_OnlyNamedKeys(t *testing.T) {
	c := NewListings()
	_, _ = Load(c, KeyPlayers, func() ([]string, error) { return []string{"p"}, nil })
	_, _ = Load(c, KeySessions, func() ([]string, error) { return []string{"s"}, nil })

	c.Invalidate(KeySessions)
	assert.True(t, c.Cached(KeyPlayers))
	assert.False(t, c.Cached(KeySessions))
}
