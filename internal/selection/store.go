// Package selection tracks which catalog periods are in scope for analytics.
// Mutations notify subscribers synchronously, exactly once each, in the order
// they were issued.
package selection

import "sync"

// Listener receives the new selected ids (in universe order) after a change.
type Listener func(ids []int64)

// Store is the single writer of the selection set. It distinguishes "never
// selected" from "deliberately emptied": the select-all default applied on a
// catalog load only fires while the store is untouched, so a user's explicit
// deselect-all survives later refreshes that return the same ids.
type Store struct {
	mu       sync.Mutex
	universe []int64
	known    map[int64]struct{}
	selected map[int64]struct{}
	touched  bool
	subs     []Listener
}

func New() *Store {
	return &Store{
		known:    map[int64]struct{}{},
		selected: map[int64]struct{}{},
	}
}

// Subscribe registers a listener for selection changes. Listeners run
// synchronously on the mutating call, outside the store lock.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Reset clears all state for a company switch. No notification is emitted;
// the next InitUniverse issues the first fetch for the new company.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.universe = nil
	s.known = map[int64]struct{}{}
	s.selected = map[int64]struct{}{}
	s.touched = false
}

// InitUniverse installs the catalog universe after a load. Selected ids that
// no longer exist are pruned; if the store is untouched and empty, the full
// universe is selected by default. Subscribers are always notified so every
// catalog load yields exactly one analytics request.
func (s *Store) InitUniverse(ids []int64) {
	s.mu.Lock()
	s.universe = append([]int64(nil), ids...)
	s.known = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		s.known[id] = struct{}{}
	}
	for id := range s.selected {
		if _, ok := s.known[id]; !ok {
			delete(s.selected, id)
		}
	}
	if !s.touched && len(s.selected) == 0 {
		for _, id := range ids {
			s.selected[id] = struct{}{}
		}
	}
	s.mu.Unlock()
	s.notify()
}

// Toggle flips membership of id. Unknown ids are a silent no-op.
func (s *Store) Toggle(id int64) {
	s.mu.Lock()
	if _, ok := s.known[id]; !ok {
		s.mu.Unlock()
		return
	}
	s.touched = true
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
	s.mu.Unlock()
	s.notify()
}

// SelectAll replaces the selection with the full universe.
func (s *Store) SelectAll() {
	s.mu.Lock()
	s.touched = true
	s.selected = make(map[int64]struct{}, len(s.universe))
	for _, id := range s.universe {
		s.selected[id] = struct{}{}
	}
	s.mu.Unlock()
	s.notify()
}

// DeselectAll empties the selection.
func (s *Store) DeselectAll() {
	s.mu.Lock()
	s.touched = true
	s.selected = map[int64]struct{}{}
	s.mu.Unlock()
	s.notify()
}

// Selected returns the selected ids in universe order.
func (s *Store) Selected() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLocked()
}

// IsSelected reports membership of id.
func (s *Store) IsSelected(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[id]
	return ok
}

// Counts returns (selected, universe) sizes for the selector header.
func (s *Store) Counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected), len(s.universe)
}

func (s *Store) selectedLocked() []int64 {
	out := make([]int64, 0, len(s.selected))
	for _, id := range s.universe {
		if _, ok := s.selected[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func (s *Store) notify() {
	s.mu.Lock()
	ids := s.selectedLocked()
	subs := append([]Listener(nil), s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(ids)
	}
}
