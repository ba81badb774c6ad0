package domain

// ChangeTracker records which entity columns were modified so repositories
// can emit narrow update mutations.
type ChangeTracker struct {
	dirty map[string]bool
}

func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{dirty: make(map[string]bool)}
}

func (ct *ChangeTracker) MarkDirty(field string) {
	ct.dirty[field] = true
}

func (ct *ChangeTracker) Dirty(field string) bool {
	return ct.dirty[field]
}

func (ct *ChangeTracker) Clear() {
	ct.dirty = make(map[string]bool)
}

// HasChanges reports whether any tracked field was touched.
func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.dirty) > 0
}
