package change

// HashState is the comparison baseline: entity id → hash pair. It is loaded
// once per run and replaced wholesale at the end of the run.
type HashState map[string]HashPair

// Change reports which projections of one entity differ from the baseline.
// New is set when the entity had no baseline entry at all; both projection
// flags are set in that case.
type Change struct {
	EntityID string
	Business bool
	Full     bool
	New      bool
}

// Changed reports whether either projection differs.
func (c Change) Changed() bool {
	return c.Business || c.Full
}

// Diff compares fresh hashes against the old baseline, visiting entities in
// the caller-supplied order so output is stable regardless of map iteration.
// Entities present only in the old map are ignored; removal detection is a
// separate concern. Order entries missing from fresh are skipped.
func Diff(old, fresh HashState, order []string) []Change {
	var changes []Change
	for _, id := range order {
		pair, ok := fresh[id]
		if !ok {
			continue
		}
		prev, existed := old[id]
		if !existed {
			changes = append(changes, Change{EntityID: id, Business: true, Full: true, New: true})
			continue
		}
		c := Change{
			EntityID: id,
			Business: pair.BusinessHash != prev.BusinessHash,
			Full:     pair.FullHash != prev.FullHash,
		}
		if c.Changed() {
			changes = append(changes, c)
		}
	}
	return changes
}
