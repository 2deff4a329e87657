package selection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitUniverseSelectsAllByDefault(t *testing.T) {
	t.Parallel()
	s := New()

	s.InitUniverse([]int64{3, 2, 1})
	require.Equal(t, []int64{3, 2, 1}, s.Selected())

	n, total := s.Counts()
	require.Equal(t, 3, n)
	require.Equal(t, 3, total)
}

func TestDeliberateEmptySurvivesRefresh(t *testing.T) {
	t.Parallel()
	s := New()

	s.InitUniverse([]int64{1, 2})
	s.DeselectAll()
	require.Empty(t, s.Selected())

	// catalog refresh returning the same ids must not re-select
	s.InitUniverse([]int64{1, 2})
	require.Empty(t, s.Selected())
}

func TestResetRestoresDefaultSelect(t *testing.T) {
	t.Parallel()
	s := New()

	s.InitUniverse([]int64{1, 2})
	s.DeselectAll()

	// company switch: the flag clears and the next load selects all again
	s.Reset()
	s.InitUniverse([]int64{7, 8})
	require.Equal(t, []int64{7, 8}, s.Selected())
}

func TestToggleRoundTrip(t *testing.T) {
	t.Parallel()
	s := New()
	s.InitUniverse([]int64{1, 2, 3})

	before := s.Selected()
	s.Toggle(2)
	require.Equal(t, []int64{1, 3}, s.Selected())
	s.Toggle(2)
	require.Equal(t, before, s.Selected())
}

func TestToggleUnknownIDIsNoop(t *testing.T) {
	t.Parallel()
	s := New()
	s.InitUniverse([]int64{1})

	var notified int
	s.Subscribe(func([]int64) { notified++ })
	s.Toggle(99)
	require.Equal(t, 0, notified)
	require.Equal(t, []int64{1}, s.Selected())
}

func TestInitUniversePrunesVanishedIDs(t *testing.T) {
	t.Parallel()
	s := New()
	s.InitUniverse([]int64{1, 2, 3})
	s.Toggle(1) // touched, selection now {2,3}

	s.InitUniverse([]int64{2, 4})
	require.Equal(t, []int64{2}, s.Selected())
}

func TestEveryMutationNotifiesOnce(t *testing.T) {
	t.Parallel()
	s := New()

	var got [][]int64
	s.Subscribe(func(ids []int64) { got = append(got, ids) })

	s.InitUniverse([]int64{1, 2})
	s.Toggle(1)
	s.SelectAll()
	s.DeselectAll()

	require.Len(t, got, 4)
	require.Equal(t, []int64{1, 2}, got[0])
	require.Equal(t, []int64{2}, got[1])
	require.Equal(t, []int64{1, 2}, got[2])
	require.Empty(t, got[3])
}
