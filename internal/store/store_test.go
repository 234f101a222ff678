package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/LdDl/bubbles-go/bubbles"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRun(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "bubbles.db"))
	require.NoError(t, err)
	defer s.Close()

	markers := []*bubbles.Marker{bubbles.NewMarker(1), bubbles.NewMarker(2)}
	history := bubbles.NewHistory([]int{1, 2})
	history.Add(1, 1, bubbles.NewCircle(12, 7, 30))
	history.Add(1, 2, nil)
	history.Add(2, 1, nil)
	history.Add(2, 2, bubbles.NewCircle(40, 50, 30))

	ctx := context.Background()
	runID, err := s.SaveRun(ctx, "synthetic.mp4", markers, history)
	require.NoError(t, err)

	got, err := s.Positions(ctx, runID)
	require.NoError(t, err)
	want := []Position{
		{Frame: 1, Marker: 1, X: 12, Y: 7, Resolved: true},
		{Frame: 1, Marker: 2},
		{Frame: 2, Marker: 1},
		{Frame: 2, Marker: 2, X: 40, Y: 50, Resolved: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}

	// runs do not mix, the same markers may be saved again
	otherID, err := s.SaveRun(ctx, "synthetic.mp4", markers[:1], bubbles.NewHistory([]int{1}))
	require.NoError(t, err)
	assert.NotEqual(t, runID, otherID)
	other, err := s.Positions(ctx, otherID)
	require.NoError(t, err)
	assert.Empty(t, other)

	assert.Equal(t, 2, countMarkers(t, s, runID.String()))
	assert.Equal(t, 1, countMarkers(t, s, otherID.String()))
}

func countMarkers(t *testing.T, s *Store, runID string) int {
	t.Helper()
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM markers WHERE run_id = ?`, runID).Scan(&n)
	require.NoError(t, err)
	return n
}
