// Package translate converts text between emoji and words using compiled
// dictionary maps.
package translate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/emoji"
	"github.com/f3rmion/emojify/internal/emojify"
)

// rule is one whole-word replacement.
type rule struct {
	key     string
	emoji   string
	pattern *regexp.Regexp
}

// Translator translates strings with one set of compiled maps.
// It is immutable and safe for concurrent use.
type Translator struct {
	maps   *dictionary.Maps
	policy emojify.Policy
	rules  []rule // longest key first

	// combined matches every key in one alternation, one group per rule.
	combined *regexp.Regexp
}

// Option configures a Translator.
type Option func(*Translator)

// WithPolicy selects the text-to-emoji substitution policy.
func WithPolicy(p emojify.Policy) Option {
	return func(t *Translator) {
		t.policy = p
	}
}

// New prepares a Translator for maps. Keys are ordered by descending length
// in runes, ties keeping the maps' insertion order, and one case-insensitive
// whole-word pattern is compiled per key.
func New(maps *dictionary.Maps, opts ...Option) (*Translator, error) {
	t := &Translator{maps: maps}
	for _, opt := range opts {
		opt(t)
	}
	if t.policy != emojify.Sequential && t.policy != emojify.SinglePass {
		return nil, fmt.Errorf("%w: %v", emojify.ErrUnknownPolicy, t.policy)
	}

	keys := SortedKeys(maps)
	t.rules = make([]rule, 0, len(keys))
	alternatives := make([]string, 0, len(keys))
	for _, key := range keys {
		quoted := regexp.QuoteMeta(key)
		pattern, err := regexp.Compile(`(?i)\b` + quoted + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern for %q: %w", key, err)
		}
		e, _ := maps.Emoji(key)
		t.rules = append(t.rules, rule{key: key, emoji: e, pattern: pattern})
		alternatives = append(alternatives, "("+quoted+")")
	}

	if t.policy == emojify.SinglePass && len(alternatives) > 0 {
		combined, err := regexp.Compile(`(?i)\b(?:` + strings.Join(alternatives, "|") + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("compiling combined pattern: %w", err)
		}
		t.combined = combined
	}

	return t, nil
}

// MustNew is like New but panics on error.
func MustNew(maps *dictionary.Maps, opts ...Option) *Translator {
	t, err := New(maps, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// SortedKeys returns the text-to-emoji keys longest first. Keys of equal
// length keep their insertion order.
func SortedKeys(maps *dictionary.Maps) []string {
	keys := maps.TextKeys()
	sort.SliceStable(keys, func(i, j int) bool {
		return utf8.RuneCountInString(keys[i]) > utf8.RuneCountInString(keys[j])
	})
	return keys
}

// Maps returns the maps the translator was built from.
func (t *Translator) Maps() *dictionary.Maps {
	return t.maps
}

// Policy returns the text-to-emoji substitution policy.
func (t *Translator) Policy() emojify.Policy {
	return t.policy
}

// Translate dispatches on direction.
func (t *Translator) Translate(dir emojify.Direction, input string) (string, error) {
	switch dir {
	case emojify.TextToEmoji:
		return t.TextToEmoji(input), nil
	case emojify.EmojiToText:
		return t.EmojiToText(input), nil
	}
	return "", fmt.Errorf("%w: %v", emojify.ErrUnknownDirection, dir)
}

// EmojiToText replaces every known emoji with its canonical definition.
// Unknown emoji, and emoji whose definition is empty, are kept as is.
func (t *Translator) EmojiToText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, s := range emoji.Segment(input) {
		if s.Kind == emojify.SegmentEmoji {
			if text, ok := t.maps.Text(s.Content); ok && text != "" {
				b.WriteString(text)
				continue
			}
		}
		b.WriteString(s.Content)
	}
	return b.String()
}

// TextToEmoji replaces whole-word, case-insensitive occurrences of
// dictionary phrases with their emoji, longest phrases first.
func (t *Translator) TextToEmoji(input string) string {
	if input == "" {
		return ""
	}
	if t.policy == emojify.SinglePass {
		return t.singlePass(input)
	}
	return t.sequential(input)
}

// sequential applies one global replacement per key, each on the result of
// the previous one.
func (t *Translator) sequential(input string) string {
	result := input
	for _, r := range t.rules {
		result = r.pattern.ReplaceAllLiteralString(result, r.emoji)
	}
	return result
}

// singlePass scans once; at each position the first matching alternative,
// which is the longest key, is replaced.
func (t *Translator) singlePass(input string) string {
	if t.combined == nil {
		return input
	}

	matches := t.combined.FindAllStringSubmatchIndex(input, -1)
	if len(matches) == 0 {
		return input
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(input[last:m[0]])
		b.WriteString(t.ruleFor(m).emoji)
		last = m[1]
	}
	b.WriteString(input[last:])
	return b.String()
}

// ruleFor returns the rule whose capture group took part in match m.
func (t *Translator) ruleFor(m []int) rule {
	for i := range t.rules {
		if m[2+2*i] >= 0 {
			return t.rules[i]
		}
	}
	// Unreachable: the alternation always sets exactly one group.
	return rule{}
}
