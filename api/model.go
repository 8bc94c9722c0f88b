package api

// Model is an insertion-ordered, key-unique collection of entries. The
// order entries were pushed in is the order downstream generation sees,
// which keeps output reproducible. Keys are qualified-name spellings;
// pushing a duplicate key replaces the earlier entry in place (upstream
// is known to emit duplicate type aliases).
type Model struct {
	entries []Entry
	index   map[string]int
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{index: make(map[string]int)}
}

// Push appends an entry, replacing in place any existing entry with the
// same qualified name.
func (m *Model) Push(e Entry) {
	key := e.EntryName().QName.String()
	if i, ok := m.index[key]; ok {
		m.entries[i] = e
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, e)
}

// Append moves every entry of other into m, in order. other is drained.
func (m *Model) Append(other *Model) {
	for _, e := range other.entries {
		m.Push(e)
	}
	other.entries = nil
	other.index = make(map[string]int)
}

// Get returns the entry with the given qualified-name spelling.
func (m *Model) Get(qname string) (Entry, bool) {
	i, ok := m.index[qname]
	if !ok {
		return nil, false
	}
	return m.entries[i], true
}

// Retain keeps only entries for which pred returns true, preserving
// order.
func (m *Model) Retain(pred func(Entry) bool) {
	kept := m.entries[:0]
	for _, e := range m.entries {
		if pred(e) {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	m.index = make(map[string]int, len(kept))
	for i, e := range kept {
		m.index[e.EntryName().QName.String()] = i
	}
}

// Entries returns the entries in insertion order. The returned slice is
// shared; callers must not mutate it.
func (m *Model) Entries() []Entry { return m.entries }

// Len returns the number of entries.
func (m *Model) Len() int { return len(m.entries) }

// PlainNames returns the set of C++ spellings present in the model.
func (m *Model) PlainNames() map[string]bool {
	out := make(map[string]bool, len(m.entries))
	for _, e := range m.entries {
		out[e.EntryName().PlainName()] = true
	}
	return out
}
