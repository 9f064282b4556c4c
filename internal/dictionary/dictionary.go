// Package dictionary loads emoji dictionaries and compiles them into the
// lookup maps used for translation.
package dictionary

import (
	"github.com/f3rmion/emojify/internal/emojify"
)

// Dictionary is an insertion-ordered set of entries keyed by emoji.
// Iteration order is the order entries were first added, which decides
// ownership of shared phrases at compile time.
type Dictionary struct {
	entries []emojify.Entry
	index   map[string]int
}

// New creates an empty dictionary.
func New() *Dictionary {
	return &Dictionary{
		index: make(map[string]int),
	}
}

// FromEntries builds a dictionary from entries in order.
func FromEntries(entries ...emojify.Entry) *Dictionary {
	d := New()
	for _, e := range entries {
		d.Set(e)
	}
	return d
}

// Set adds an entry. An entry whose emoji is already present replaces the
// old value but keeps its original position.
func (d *Dictionary) Set(e emojify.Entry) {
	if i, ok := d.index[e.Emoji]; ok {
		d.entries[i] = e
		return
	}
	d.index[e.Emoji] = len(d.entries)
	d.entries = append(d.entries, e)
}

// Lookup returns the entry for an emoji.
func (d *Dictionary) Lookup(emoji string) (emojify.Entry, bool) {
	i, ok := d.index[emoji]
	if !ok {
		return emojify.Entry{}, false
	}
	return d.entries[i], true
}

// Entries returns the entries in insertion order. The slice is a copy.
func (d *Dictionary) Entries() []emojify.Entry {
	out := make([]emojify.Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of entries in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Emojis returns the emoji keys in insertion order.
func (d *Dictionary) Emojis() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Emoji
	}
	return keys
}
