package alert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_with_keeps_insertion_order(t *testing.T) {
	var s Snapshot
	s = s.with(Alert{Key: "a", Message: "1"})
	s = s.with(Alert{Key: "b", Message: "2"})
	s = s.with(Alert{Key: "c", Message: "3"})

	assert.Equal(t, []string{"a", "b", "c"}, s.Keys())

	// Replacing keeps position.
	s = s.with(Alert{Key: "a", Message: "1b"})
	assert.Equal(t, []string{"a", "b", "c"}, s.Keys())
	got, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1b", got.Message)
}

func TestSnapshot_without_then_readd_moves_to_end(t *testing.T) {
	var s Snapshot
	s = s.with(Alert{Key: "a"})
	s = s.with(Alert{Key: "b"})

	s = s.without("a")
	assert.Equal(t, []string{"b"}, s.Keys())
	assert.False(t, s.Has("a"))

	s = s.with(Alert{Key: "a"})
	assert.Equal(t, []string{"b", "a"}, s.Keys())
}

func TestSnapshot_is_immutable(t *testing.T) {
	var s Snapshot
	s = s.with(Alert{Key: "a"})
	held := s

	s = s.with(Alert{Key: "b"})
	s = s.without("a")

	assert.Equal(t, 1, held.Len())
	assert.True(t, held.Has("a"))
	assert.False(t, held.Has("b"))

	keys := held.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"a"}, held.Keys())
}

func TestSnapshot_Alerts_and_All(t *testing.T) {
	var s Snapshot
	s = s.with(Alert{Key: "x", Message: "first"})
	s = s.with(Alert{Key: "y", Message: "second"})

	alerts := s.Alerts()
	assert.Len(t, alerts, 2)
	assert.Equal(t, "first", alerts[0].Message)
	assert.Equal(t, "second", alerts[1].Message)

	var keys []string
	for k, a := range s.All() {
		keys = append(keys, k)
		assert.Equal(t, k, a.Key)
	}
	assert.Equal(t, []string{"x", "y"}, keys)

	for range s.All() {
		break
	}
}

func TestSnapshot_zero_value(t *testing.T) {
	var s Snapshot
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Alerts())
	_, ok := s.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, s.without("missing").Len())
}
