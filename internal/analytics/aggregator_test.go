package analytics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nvarad/finsight/internal/api"
)

func summaryOf(periods ...string) *api.AnalyticsSummary {
	s := &api.AnalyticsSummary{PeriodsCount: len(periods)}
	for _, p := range periods {
		s.Analytics = append(s.Analytics, api.PeriodAnalytics{Period: p})
	}
	return s
}

func TestLatestRequestWinsOutOfOrder(t *testing.T) {
	t.Parallel()
	g := New()
	g.SetCompany(1)

	g.OnSelectionChanged([]int64{1, 2})
	g.OnSelectionChanged([]int64{1, 2, 3})
	reqs := g.TakePending()
	require.Len(t, reqs, 2)

	// the second response lands first; the first must then be discarded
	require.True(t, g.Resolve(reqs[1], summaryOf("2022", "2023"), nil))
	require.False(t, g.Resolve(reqs[0], summaryOf("2022"), nil))

	require.Equal(t, 2, g.Summary().PeriodsCount)
	require.False(t, g.Loading())
}

func TestFailureKeepsLastGoodSummary(t *testing.T) {
	t.Parallel()
	g := New()
	g.SetCompany(1)

	g.OnSelectionChanged([]int64{1})
	req := g.TakePending()[0]
	require.True(t, g.Resolve(req, summaryOf("2023"), nil))

	g.OnSelectionChanged([]int64{1, 2})
	req = g.TakePending()[0]
	require.True(t, g.Resolve(req, nil, errors.New("upstream 502")))

	require.Error(t, g.Err())
	require.NotNil(t, g.Summary(), "stale-but-valid summary stays on screen")
	require.Equal(t, 1, g.Summary().PeriodsCount)
}

func TestSuccessClearsPriorError(t *testing.T) {
	t.Parallel()
	g := New()
	g.SetCompany(1)

	g.OnSelectionChanged([]int64{1})
	req := g.TakePending()[0]
	require.True(t, g.Resolve(req, nil, errors.New("boom")))
	require.Error(t, g.Err())

	g.OnSelectionChanged([]int64{1, 2})
	req = g.TakePending()[0]
	require.True(t, g.Resolve(req, summaryOf("2023"), nil))
	require.NoError(t, g.Err())
}

func TestCompanySwitchInvalidatesInFlight(t *testing.T) {
	t.Parallel()
	g := New()
	g.SetCompany(1)

	g.OnSelectionChanged([]int64{1, 2})
	req := g.TakePending()[0]

	g.SetCompany(2)
	require.False(t, g.Resolve(req, summaryOf("2023"), nil))
	require.Nil(t, g.Summary())
	require.Empty(t, g.TakePending())
}

func TestEmptySelectionStillIssuesRequest(t *testing.T) {
	t.Parallel()
	g := New()
	g.SetCompany(1)

	g.OnSelectionChanged(nil)
	reqs := g.TakePending()
	require.Len(t, reqs, 1)
	require.Empty(t, reqs[0].IDs)
}
