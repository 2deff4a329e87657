// Package analytics maintains the single authoritative AnalyticsSummary for
// the current (company, selection) pair. Requests carry a monotonically
// increasing sequence number; only the response to the most recently issued
// request may update the stored summary, so a slow earlier response can never
// overwrite a faster later one. Superseded responses are discarded, not
// aborted.
package analytics

import (
	"context"
	"sync"

	"github.com/nvarad/finsight/internal/api"
)

// Fetcher is the backend query the aggregator depends on. api.Client
// satisfies it; tests substitute fakes.
type Fetcher interface {
	AnalyticsSummary(ctx context.Context, companyID int64, ids []int64) (*api.AnalyticsSummary, error)
}

// Request tags one analytics fetch.
type Request struct {
	CompanyID int64
	IDs       []int64
	Seq       uint64
}

// Aggregator is the SelectionStore's subscriber. Each selection change opens
// a queued request which the composer drains and dispatches; the outcome
// comes back through Resolve.
type Aggregator struct {
	mu      sync.Mutex
	company int64
	seq     uint64
	summary *api.AnalyticsSummary
	err     error
	loading bool
	pending []Request
}

func New() *Aggregator {
	return &Aggregator{}
}

// SetCompany switches the active company. The previous summary and any
// in-flight requests are invalidated; nothing is fetched until the new
// company's catalog load triggers a selection change.
func (g *Aggregator) SetCompany(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id == g.company {
		return
	}
	g.company = id
	g.summary = nil
	g.err = nil
	g.loading = false
	g.pending = nil
	g.seq++ // fences out responses already in flight
}

// OnSelectionChanged is the selection.Listener: each notification opens
// exactly one new request.
func (g *Aggregator) OnSelectionChanged(ids []int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	g.loading = true
	g.pending = append(g.pending, Request{
		CompanyID: g.company,
		IDs:       append([]int64(nil), ids...),
		Seq:       g.seq,
	})
}

// TakePending drains the queued requests for dispatch.
func (g *Aggregator) TakePending() []Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.pending
	g.pending = nil
	return out
}

// Resolve applies a fetch outcome. It reports false, changing nothing, when
// the request has been superseded or belongs to another company. A success
// replaces the summary atomically and clears the error; a failure keeps the
// last good summary but surfaces the error.
func (g *Aggregator) Resolve(req Request, summary *api.AnalyticsSummary, err error) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if req.Seq != g.seq || req.CompanyID != g.company {
		return false
	}
	g.loading = false
	if err != nil {
		g.err = err
		return true
	}
	g.summary = summary
	g.err = nil
	return true
}

// Summary returns the current authoritative summary, nil when none has been
// produced for this company yet.
func (g *Aggregator) Summary() *api.AnalyticsSummary {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.summary
}

// Err returns the last fetch failure, nil after a success.
func (g *Aggregator) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

// Loading reports whether the latest request is still outstanding.
func (g *Aggregator) Loading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loading
}
