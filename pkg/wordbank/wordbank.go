package wordbank

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NivBraz/wordtally/pkg/words"
)

// WordBank is a case-insensitive set of words.
type WordBank struct {
	words map[string]struct{}
	// cases.Caser keeps state between calls, so every use holds mu
	fold cases.Caser
	mu   sync.Mutex
}

// New returns a bank that folds case with the rules of tag.
// language.Und applies the locale-neutral Unicode mapping.
func New(tag language.Tag, list ...string) *WordBank {
	wb := &WordBank{
		words: make(map[string]struct{}, len(list)),
		fold:  cases.Lower(tag),
	}
	for _, w := range list {
		wb.Add(w)
	}
	return wb
}

func (wb *WordBank) Add(word string) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	wb.words[wb.key(word)] = struct{}{}
}

func (wb *WordBank) Contains(word string) bool {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	_, exists := wb.words[wb.key(word)]
	return exists
}

func (wb *WordBank) Len() int {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	return len(wb.words)
}

func (wb *WordBank) key(word string) string {
	return wb.fold.String(strings.TrimSpace(word))
}

// Strip removes the pieces of a delimited sentence that are in the bank.
func (wb *WordBank) Strip(sentence string) string {
	if wb.Len() == 0 {
		return sentence
	}
	pieces := strings.Split(sentence, words.Delimiter)
	kept := pieces[:0]
	for _, p := range pieces {
		if !wb.Contains(p) {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, words.Delimiter)
}
