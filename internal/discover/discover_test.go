package discover

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchday/matchday-data/internal/docview"
)

// fakePage scripts a sequence of fixture-query outcomes.
type fakePage struct {
	counts   []int // fixture count returned per query; -1 means timeout
	queries  int
	recovers int
}

func (f *fakePage) Fixtures(_ context.Context) ([]string, error) {
	i := f.queries
	if i >= len(f.counts) {
		i = len(f.counts) - 1
	}
	f.queries++
	n := f.counts[i]
	if n < 0 {
		return nil, fmt.Errorf("wait for fixtures: %w", docview.ErrTimeout)
	}
	refs := make([]string, n)
	for j := range refs {
		refs[j] = fmt.Sprintf("/match/%05d", j)
	}
	return refs, nil
}

func (f *fakePage) Recover(_ context.Context) error {
	f.recovers++
	return nil
}

func TestDiscoverSucceedsFirstAttempt(t *testing.T) {
	page := &fakePage{counts: []int{38}}
	d := New(3, 0, nil)

	refs, err := d.Discover(context.Background(), page, 38)
	require.NoError(t, err)
	assert.Len(t, refs, 38)
	assert.Equal(t, 1, page.queries, "exact count returns in one attempt")
	assert.Zero(t, page.recovers, "no retry triggered")
}

func TestDiscoverZeroFixturesFailsFast(t *testing.T) {
	page := &fakePage{counts: []int{0}}
	d := New(3, 0, nil)

	_, err := d.Discover(context.Background(), page, 38)
	require.ErrorIs(t, err, ErrClubNotInSeason)
	assert.Zero(t, page.recovers, "no recovery on a zero count")
}

func TestDiscoverRecoversFromShortCounts(t *testing.T) {
	page := &fakePage{counts: []int{20, 31, 38}}
	d := New(5, 0, nil)

	refs, err := d.Discover(context.Background(), page, 38)
	require.NoError(t, err)
	assert.Len(t, refs, 38)
	assert.Equal(t, 2, page.recovers)
}

func TestDiscoverExhaustsRetryBound(t *testing.T) {
	page := &fakePage{counts: []int{20, 25, 31}}
	d := New(2, 0, nil)

	_, err := d.Discover(context.Background(), page, 38)
	var incomplete *FixtureListIncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, 38, incomplete.Expected)
	assert.Equal(t, 31, incomplete.LastObserved, "error carries the last observed count")
	assert.Equal(t, 2, page.recovers, "recovery bounded by max retries")
}

func TestDiscoverRetriesTimeouts(t *testing.T) {
	page := &fakePage{counts: []int{-1, 38}}
	d := New(3, 0, nil)

	refs, err := d.Discover(context.Background(), page, 38)
	require.NoError(t, err)
	assert.Len(t, refs, 38)
	assert.Equal(t, 1, page.recovers)
}

func TestDiscoverHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	page := &fakePage{counts: []int{20}}
	d := New(3, 0, nil)

	_, err := d.Discover(ctx, page, 38)
	require.ErrorIs(t, err, context.Canceled)
}
