// Package emoji classifies code points by their Unicode emoji properties
// and splits text into emoji and non-emoji segments.
package emoji

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/f3rmion/emojify/internal/emojify"
)

// VS16 is the emoji presentation variation selector.
const VS16 = '\uFE0F'

// IsPresentation reports whether r defaults to emoji presentation.
func IsPresentation(r rune) bool {
	return unicode.Is(Presentation, r)
}

// IsEmoji reports whether r has the Emoji property. Most such code points
// (digits, '#', '©') render as text unless followed by VS16.
func IsEmoji(r rune) bool {
	return unicode.Is(Emoji, r)
}

// Match returns the byte length of the emoji starting at s[0], or 0 if s
// does not start with one. A code point with Emoji_Presentation is always
// matched alone, even when a VS16 follows it. Any other Emoji code point
// is matched together with a directly following VS16.
func Match(s string) int {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return 0
	}
	if IsPresentation(r) {
		return size
	}
	if IsEmoji(r) {
		next, vsSize := utf8.DecodeRuneInString(s[size:])
		if next == VS16 {
			return size + vsSize
		}
	}
	return 0
}

// Segment splits text into an ordered list of text and emoji segments.
// Every matched emoji gets its own segment; consecutive emoji are not
// merged. Text runs between emoji are emitted whole and never empty.
// Concatenating the contents yields text again.
func Segment(text string) []emojify.Segment {
	var segments []emojify.Segment
	last := 0
	for i := 0; i < len(text); {
		n := Match(text[i:])
		if n == 0 {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
			continue
		}
		if i > last {
			segments = append(segments, emojify.Segment{Kind: emojify.SegmentText, Content: text[last:i]})
		}
		segments = append(segments, emojify.Segment{Kind: emojify.SegmentEmoji, Content: text[i : i+n]})
		i += n
		last = i
	}
	if last < len(text) {
		segments = append(segments, emojify.Segment{Kind: emojify.SegmentText, Content: text[last:]})
	}
	return segments
}

// Contains reports whether text holds at least one emoji.
func Contains(text string) bool {
	for i := 0; i < len(text); {
		if Match(text[i:]) > 0 {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return false
}

// Join concatenates segment contents.
func Join(segments []emojify.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Content)
	}
	return b.String()
}
