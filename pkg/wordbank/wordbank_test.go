package wordbank

import (
	"testing"

	"golang.org/x/text/language"
)

func TestContains(t *testing.T) {
	wb := New(language.Und, "The", "and")

	tests := []struct {
		word string
		want bool
	}{
		{"the", true},
		{"THE", true},
		{" and ", true},
		{"cat", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := wb.Contains(tt.word); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}

	if wb.Len() != 2 {
		t.Errorf("Len() = %d, want 2", wb.Len())
	}
}

func TestContains_Locale(t *testing.T) {
	tests := []struct {
		name string
		tag  language.Tag
		bank string
		word string
		want bool
	}{
		{"turkish dotless i", language.Turkish, "KILIM", "kılım", true},
		{"turkish dotted I", language.Turkish, "İSTANBUL", "istanbul", true},
		{"neutral dotless i", language.Und, "KILIM", "kılım", false},
		{"neutral greek sigma", language.Und, "ΟΔΟΣ", "οδος", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := New(tt.tag, tt.bank)
			if got := wb.Contains(tt.word); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name     string
		bank     []string
		sentence string
		want     string
	}{
		{"empty bank", nil, "the;cat", "the;cat"},
		{"removes stop words", []string{"the", "a"}, "The;cat;sat;on;a;mat", "cat;sat;on;mat"},
		{"trims before matching", []string{"the"}, " the ;dog", "dog"},
		{"keeps invalid pieces", []string{"the"}, "the;;123", ";123"},
		{"everything removed", []string{"the"}, "the;THE", ""},
	}

	t.Run("turkish locale", func(t *testing.T) {
		wb := New(language.Turkish, "ILIK")
		if got := wb.Strip("ılık;su"); got != "su" {
			t.Errorf("Strip() = %q, want %q", got, "su")
		}
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := New(language.Und, tt.bank...)
			if got := wb.Strip(tt.sentence); got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.sentence, got, tt.want)
			}
		})
	}
}
