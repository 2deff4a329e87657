package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nvarad/finsight/internal/api"
)

func ref(id int64, year int, quarter string) api.BalanceSheetRef {
	return api.BalanceSheetRef{ID: id, Year: year, Quarter: quarter}
}

func TestResolveSortsNewestFirst(t *testing.T) {
	t.Parallel()
	c := New()

	req := c.Begin(1)
	ok := c.Resolve(req, []api.BalanceSheetRef{
		ref(1, 2021, ""),
		ref(2, 2023, "1"),
		ref(3, 2023, "3"),
		ref(4, 2022, ""),
	}, nil)
	require.True(t, ok)
	require.Equal(t, []int64{3, 2, 4, 1}, c.IDs())
	require.False(t, c.Loading())
	require.NoError(t, c.Err())
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	t.Parallel()
	c := New()

	old := c.Begin(1)
	cur := c.Begin(1)

	require.False(t, c.Resolve(old, []api.BalanceSheetRef{ref(9, 2020, "")}, nil))
	require.True(t, c.Resolve(cur, []api.BalanceSheetRef{ref(1, 2023, "")}, nil))
	require.Equal(t, []int64{1}, c.IDs())
}

func TestCompanySwitchInvalidatesInFlight(t *testing.T) {
	t.Parallel()
	c := New()

	oldCompany := c.Begin(1)
	_ = c.Begin(2)

	// response for company 1 lands after the switch to company 2
	require.False(t, c.Resolve(oldCompany, []api.BalanceSheetRef{ref(9, 2020, "")}, nil))
	require.Empty(t, c.IDs())
}

func TestLoadFailureEmptiesCatalog(t *testing.T) {
	t.Parallel()
	c := New()

	req := c.Begin(1)
	require.True(t, c.Resolve(req, []api.BalanceSheetRef{ref(1, 2023, "")}, nil))
	require.Len(t, c.Refs(), 1)

	req = c.Begin(1)
	require.True(t, c.Resolve(req, nil, errors.New("boom")))
	require.Empty(t, c.Refs())
	require.Error(t, c.Err())
}
