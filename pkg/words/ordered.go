package words

// Entry is a single word and the number of times it was added.
type Entry struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}

// OrderedMap maps words to counts and remembers the order in which
// distinct words were first inserted.
type OrderedMap struct {
	index   map[string]int
	entries []Entry
}

func newOrderedMap() *OrderedMap {
	return &OrderedMap{
		index: make(map[string]int),
	}
}

// increment adds one to the count of word, appending it if absent.
func (m *OrderedMap) increment(word string) {
	if i, ok := m.index[word]; ok {
		m.entries[i].Count++
		return
	}
	m.index[word] = len(m.entries)
	m.entries = append(m.entries, Entry{Word: word, Count: 1})
}

// Len returns the number of distinct words.
func (m *OrderedMap) Len() int {
	return len(m.entries)
}

// Get returns the count stored for the exact key.
func (m *OrderedMap) Get(word string) (int64, bool) {
	i, ok := m.index[word]
	if !ok {
		return 0, false
	}
	return m.entries[i].Count, true
}

// Has reports whether the exact key is present.
func (m *OrderedMap) Has(word string) bool {
	_, ok := m.index[word]
	return ok
}

// Keys returns the stored words in insertion order.
func (m *OrderedMap) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Word
	}
	return keys
}

// Entries returns a copy of the entries in insertion order.
func (m *OrderedMap) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Range calls fn for every entry in insertion order until fn returns false.
func (m *OrderedMap) Range(fn func(word string, count int64) bool) {
	for _, e := range m.entries {
		if !fn(e.Word, e.Count) {
			return
		}
	}
}

// Clone returns an independent copy of m.
func (m *OrderedMap) Clone() *OrderedMap {
	c := &OrderedMap{
		index:   make(map[string]int, len(m.index)),
		entries: m.Entries(),
	}
	for k, v := range m.index {
		c.index[k] = v
	}
	return c
}
