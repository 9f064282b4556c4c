package dictionary

import (
	"strings"
)

// Maps holds the two lookup structures derived from a dictionary.
// A Maps value is never modified after Compile returns it; rebuild and
// swap instead.
type Maps struct {
	emojiToText map[string]string
	textToEmoji map[string]string
	textKeys    []string // textToEmoji keys in insertion order
}

// Compile derives the emoji-to-text and text-to-emoji maps from d.
//
// Entries are visited in insertion order. For each entry the canonical
// definition (text before the first " - ") is stored under the emoji.
// Then every context key, lowercased with underscores turned into spaces,
// followed by the lowercased definition, is mapped to the emoji unless an
// earlier entry already claimed that phrase. Empty phrases are skipped.
func Compile(d *Dictionary) *Maps {
	m := &Maps{
		emojiToText: make(map[string]string, d.Len()),
		textToEmoji: make(map[string]string, d.Len()*2),
	}

	for _, e := range d.entries {
		definition := e.CanonicalDefinition()
		m.emojiToText[e.Emoji] = definition

		for _, c := range e.Context {
			m.claim(NormalizeContextKey(c.Key), e.Emoji)
		}
		m.claim(strings.ToLower(definition), e.Emoji)
	}

	return m
}

func (m *Maps) claim(key, emoji string) {
	if key == "" {
		return
	}
	if _, taken := m.textToEmoji[key]; taken {
		return
	}
	m.textToEmoji[key] = emoji
	m.textKeys = append(m.textKeys, key)
}

// NormalizeContextKey lowercases a context key and turns every underscore
// into a space.
func NormalizeContextKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", " ")
}

// Text returns the canonical definition for an emoji.
func (m *Maps) Text(emoji string) (string, bool) {
	s, ok := m.emojiToText[emoji]
	return s, ok
}

// Emoji returns the emoji owning a lowercase phrase.
func (m *Maps) Emoji(phrase string) (string, bool) {
	s, ok := m.textToEmoji[phrase]
	return s, ok
}

// TextKeys returns the text-to-emoji phrases in insertion order.
func (m *Maps) TextKeys() []string {
	out := make([]string, len(m.textKeys))
	copy(out, m.textKeys)
	return out
}

// EmojiToText returns a copy of the emoji-to-text map.
func (m *Maps) EmojiToText() map[string]string {
	out := make(map[string]string, len(m.emojiToText))
	for k, v := range m.emojiToText {
		out[k] = v
	}
	return out
}

// TextToEmoji returns a copy of the text-to-emoji map.
func (m *Maps) TextToEmoji() map[string]string {
	out := make(map[string]string, len(m.textToEmoji))
	for k, v := range m.textToEmoji {
		out[k] = v
	}
	return out
}

// Stats summarises map sizes.
type Stats struct {
	EmojiToText int `json:"emoji_to_text"`
	TextToEmoji int `json:"text_to_emoji"`
}

// Stats returns the number of entries in each map.
func (m *Maps) Stats() Stats {
	return Stats{
		EmojiToText: len(m.emojiToText),
		TextToEmoji: len(m.textToEmoji),
	}
}
