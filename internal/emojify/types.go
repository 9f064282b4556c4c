// Package emojify provides core types shared by the emoji translator.
package emojify

import (
	"errors"
	"fmt"
	"strings"
)

// DefinitionDelimiter separates a definition's core phrase from its elaboration.
const DefinitionDelimiter = " - "

// Sentinel errors.
var (
	ErrMissingDefinition = errors.New("entry missing definition")
	ErrUnknownDirection  = errors.New("unknown translation direction")
	ErrUnknownPolicy     = errors.New("unknown substitution policy")
	ErrInvalidInput      = errors.New("invalid input")
)

// ContextEntry is an alternate phrase that also resolves to an emoji.
// Value is kept as decoded and never interpreted.
type ContextEntry struct {
	Key   string `yaml:"key" json:"key"`     // May use "_" in place of spaces (e.g. "no_cap")
	Value any    `yaml:"value" json:"value"` // Free-form annotation from the source dictionary
}

// Entry is one dictionary record.
type Entry struct {
	Emoji      string         `yaml:"emoji" json:"emoji"`
	Definition string         `yaml:"def" json:"def"`                             // Full definition, possibly with " - " elaboration
	Context    []ContextEntry `yaml:"context,omitempty" json:"context,omitempty"` // In source order
}

// CanonicalDefinition returns the part of the definition before the first delimiter.
func (e Entry) CanonicalDefinition() string {
	def, _, _ := strings.Cut(e.Definition, DefinitionDelimiter)
	return def
}

// ContextKeys returns the raw context keys in source order.
func (e Entry) ContextKeys() []string {
	keys := make([]string, len(e.Context))
	for i, c := range e.Context {
		keys[i] = c.Key
	}
	return keys
}

// EntryError reports a malformed dictionary entry.
type EntryError struct {
	Emoji string
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("dictionary entry %q: %v", e.Emoji, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// Direction selects which way a translation goes.
type Direction int

const (
	TextToEmoji Direction = iota // Words and phrases become emoji
	EmojiToText                  // Emoji become their definitions
)

// String returns the canonical name of the direction.
func (d Direction) String() string {
	switch d {
	case TextToEmoji:
		return "text-to-emoji"
	case EmojiToText:
		return "emoji-to-text"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == TextToEmoji {
		return EmojiToText
	}
	return TextToEmoji
}

// ParseDirection parses a direction name. It accepts the target form
// ("emoji", "text"), the long form ("text-to-emoji") and the web form
// names ("textInput", "emojiInput").
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "emoji", "text-to-emoji", "text2emoji", "textinput":
		return TextToEmoji, nil
	case "text", "emoji-to-text", "emoji2text", "emojiinput":
		return EmojiToText, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Policy controls how text-to-emoji substitution passes are applied.
type Policy int

const (
	// Sequential rescans the whole working string once per key, longest
	// key first. Emoji inserted by earlier keys are visible to later ones.
	Sequential Policy = iota
	// SinglePass matches all keys in one left-to-right scan; at each
	// position the longest key wins and replaced text is never rescanned.
	SinglePass
)

// String returns the canonical name of the policy.
func (p Policy) String() string {
	switch p {
	case Sequential:
		return "sequential"
	case SinglePass:
		return "single-pass"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential", "seq":
		return Sequential, nil
	case "single-pass", "singlepass", "single":
		return SinglePass, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// SegmentKind tags a segment of scanned input.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentEmoji
)

// String returns "text" or "emoji".
func (k SegmentKind) String() string {
	if k == SegmentEmoji {
		return "emoji"
	}
	return "text"
}

// Segment is a typed span of input text.
type Segment struct {
	Kind    SegmentKind `json:"kind"`
	Content string      `json:"content"`
}

// MarshalText lets SegmentKind render as its name in JSON and YAML.
func (k SegmentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts "text" or "emoji".
func (k *SegmentKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "text":
		*k = SegmentText
	case "emoji":
		*k = SegmentEmoji
	default:
		return fmt.Errorf("%w: unknown segment kind %q", ErrInvalidInput, b)
	}
	return nil
}
