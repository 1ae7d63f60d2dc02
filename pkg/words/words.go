// Package words keeps an in-memory tally of alphabetic words.
//
// A Counter accepts single words or sentences separated by Delimiter.
// Only tokens made entirely of letters are kept; everything else is
// dropped without an error. Counts can be read for an exact key or
// summed across every casing of a word.
//
// A Counter is not safe for concurrent use.
package words

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Delimiter separates words within a sentence.
const Delimiter = ";"

// Counter counts occurrences of words in insertion order.
type Counter struct {
	counts *OrderedMap
	fold   func(string) string
}

// Option configures a Counter.
type Option func(*Counter)

// WithLocale folds case using the rules of the given language for
// case-insensitive lookups. Without it the root (language.Und) rules
// apply.
func WithLocale(tag language.Tag) Option {
	return func(c *Counter) {
		c.fold = cases.Lower(tag).String
	}
}

// NewCounter creates an empty Counter.
func NewCounter(opts ...Option) *Counter {
	c := &Counter{
		counts: newOrderedMap(),
		fold:   cases.Lower(language.Und).String,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddWord trims word and counts it if what remains is a word.
func (c *Counter) AddWord(word string) {
	word = trim(word)
	if !IsWord(word) {
		return
	}
	c.counts.increment(word)
}

// AddSentence splits sentence on Delimiter and adds every piece.
func (c *Counter) AddSentence(sentence string) {
	for _, word := range strings.Split(sentence, Delimiter) {
		c.AddWord(word)
	}
}

// WordCount returns how many times word was added. With caseSensitive
// the key must match exactly; otherwise counts of all keys equal to word
// after case folding are summed.
func (c *Counter) WordCount(word string, caseSensitive bool) int64 {
	if caseSensitive {
		n, _ := c.counts.Get(word)
		return n
	}

	target := c.fold(word)
	var total int64
	c.counts.Range(func(key string, count int64) bool {
		if c.fold(key) == target {
			total += count
		}
		return true
	})
	return total
}

// WordsMap returns a snapshot of the tally. Later additions to the
// Counter are not reflected in it.
func (c *Counter) WordsMap() *OrderedMap {
	return c.counts.Clone()
}

// Len returns the number of distinct words.
func (c *Counter) Len() int {
	return c.counts.Len()
}

// Total returns the number of words added, duplicates included.
func (c *Counter) Total() int64 {
	var total int64
	c.counts.Range(func(_ string, count int64) bool {
		total += count
		return true
	})
	return total
}

// Top returns the n most frequent entries, highest count first and
// alphabetically for ties. n <= 0 returns every entry.
func (c *Counter) Top(n int) []Entry {
	entries := c.counts.Entries()
	SortEntries(entries)
	if n > 0 && len(entries) > n {
		return entries[:n]
	}
	return entries
}

// SortEntries sorts entries by count (descending) and alphabetically for ties.
func SortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count == entries[j].Count {
			return entries[i].Word < entries[j].Word
		}
		return entries[i].Count > entries[j].Count
	})
}

// IsWord reports whether s is non-empty and contains only letters.
func IsWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// trim strips space and ASCII control characters from both ends.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r <= ' '
	})
}
