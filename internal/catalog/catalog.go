// Package catalog holds the ordered list of balance-sheet periods available
// for the active company. Loads are generation-tagged so a slow response for
// a previous company can never overwrite the current one.
package catalog

import (
	"sort"
	"sync"

	"github.com/nvarad/finsight/internal/api"
)

// LoadRequest tags one catalog load. The composer dispatches the actual
// fetch and feeds the outcome back through Resolve.
type LoadRequest struct {
	CompanyID int64
	Gen       uint64
}

// Catalog is the single source of truth for the period universe.
type Catalog struct {
	mu      sync.Mutex
	company int64
	gen     uint64
	refs    []api.BalanceSheetRef
	loading bool
	err     error
}

func New() *Catalog {
	return &Catalog{}
}

// Begin starts a load for the given company and returns its tag. Any
// previously issued load becomes stale immediately.
func (c *Catalog) Begin(companyID int64) LoadRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if companyID != c.company {
		c.company = companyID
		c.refs = nil
		c.err = nil
	}
	c.gen++
	c.loading = true
	return LoadRequest{CompanyID: companyID, Gen: c.gen}
}

// Resolve applies a load outcome. It reports false, changing nothing, when
// the request is stale (superseded or for a different company). On failure
// the catalog empties; the selection UI degrades to its empty state.
func (c *Catalog) Resolve(req LoadRequest, refs []api.BalanceSheetRef, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if req.Gen != c.gen || req.CompanyID != c.company {
		return false
	}
	c.loading = false
	if err != nil {
		c.refs = nil
		c.err = err
		return true
	}
	c.err = nil
	c.refs = sortRefs(refs)
	return true
}

// Refs returns the current periods, newest first.
func (c *Catalog) Refs() []api.BalanceSheetRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.BalanceSheetRef, len(c.refs))
	copy(out, c.refs)
	return out
}

// IDs returns the period ids in catalog order.
func (c *Catalog) IDs() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]int64, len(c.refs))
	for i, r := range c.refs {
		ids[i] = r.ID
	}
	return ids
}

// Loading reports whether the latest load is still outstanding.
func (c *Catalog) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last load failure, nil after a successful load.
func (c *Catalog) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// sortRefs orders descending by year, then by quarter compared as a string
// (empty quarter sorts last within a year, matching the service's labels).
func sortRefs(refs []api.BalanceSheetRef) []api.BalanceSheetRef {
	out := make([]api.BalanceSheetRef, len(refs))
	copy(out, refs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Quarter > out[j].Quarter
	})
	return out
}
