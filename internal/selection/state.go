package selection

// State is the current ordered selection: insertion order meaningful, no
// duplicates. Zero ids is the empty state; there is no terminal state.
// Style resets for an outgoing selection always complete before any apply
// for the incoming one, so an id carried across two selections is never
// left half-styled.
type State struct {
	ids     []string
	applier StyleApplier
}

func NewState(applier StyleApplier) *State {
	return &State{applier: applier}
}

// Selected returns the selected ids, first selected first.
func (s *State) Selected() []string {
	return append([]string(nil), s.ids...)
}

// Has reports whether id is currently selected.
func (s *State) Has(id string) bool {
	for _, sel := range s.ids {
		if sel == id {
			return true
		}
	}
	return false
}

// Len returns the number of selected ids.
func (s *State) Len() int { return len(s.ids) }

// Select replaces the selection with the single id. When the id is
// already the sole selection it toggles off to empty instead.
func (s *State) Select(id string) {
	if len(s.ids) == 1 && s.ids[0] == id {
		s.applier.Reset(id)
		s.ids = nil
		return
	}
	s.resetAll()
	s.ids = []string{id}
	s.applier.Apply(Highlight, id)
}

// SelectMany unconditionally replaces the selection. Duplicate ids
// collapse to their first occurrence. There is no toggle-off path here:
// repeating an identical set resets and re-applies the same ids.
func (s *State) SelectMany(ids []string) {
	s.resetAll()
	seen := make(map[string]struct{}, len(ids))
	next := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		next = append(next, id)
	}
	s.ids = next
	for _, id := range next {
		s.applier.Apply(Highlight, id)
	}
}

// Clear empties the selection. Idempotent: clearing an empty selection
// issues no reset calls.
func (s *State) Clear() {
	s.resetAll()
	s.ids = nil
}

func (s *State) resetAll() {
	for _, id := range s.ids {
		s.applier.Reset(id)
	}
}
