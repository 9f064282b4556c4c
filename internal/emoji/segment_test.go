package emoji

import (
	"testing"

	"github.com/f3rmion/emojify/internal/emojify"
)

func TestIsPresentation(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'🔥', true},
		{'😀', true},
		{'⚡', true},
		{'❤', false}, // needs VS16
		{'☺', false},
		{'a', false},
		{'1', false},
		{'🏻', true}, // skin tone modifier
		{'🇺', true}, // regional indicator
		{0x1FA89, true},
		{0x1FA8F, true},
		{0x1FABE, true},
		{0x1FAC6, true},
		{0x1FADC, true},
		{0x1FADF, true},
		{0x1FAE9, true},
		{0x1FA8A, false}, // unassigned
	}

	for _, tt := range tests {
		if got := IsPresentation(tt.r); got != tt.want {
			t.Errorf("IsPresentation(%U) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestIsEmoji(t *testing.T) {
	for _, r := range []rune{'#', '*', '0', '9', '©', '®', '❤', '☺', '🔥', 0x1FAC6} {
		if !IsEmoji(r) {
			t.Errorf("IsEmoji(%U) = false, want true", r)
		}
	}
	for _, r := range []rune{'a', ' ', '!', '\uFE0F', '\u200D', '好'} {
		if IsEmoji(r) {
			t.Errorf("IsEmoji(%U) = true, want false", r)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"plain", "abc", 0},
		{"presentation", "🔥x", 4},
		{"presentation ignores vs16", "😀\uFE0F", 4},
		{"text emoji with vs16", "❤\uFE0F!", 6},
		{"text emoji without vs16", "❤!", 0},
		{"digit with vs16", "1\uFE0F⃣", 4},
		{"invalid utf8", "\xff🔥", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.in); got != tt.want {
				t.Errorf("Match(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func seg(kind emojify.SegmentKind, content string) emojify.Segment {
	return emojify.Segment{Kind: kind, Content: content}
}

func TestSegment(t *testing.T) {
	text := emojify.SegmentText
	emo := emojify.SegmentEmoji

	tests := []struct {
		name string
		in   string
		want []emojify.Segment
	}{
		{"empty", "", nil},
		{"text only", "Just plain text here", []emojify.Segment{seg(text, "Just plain text here")}},
		{"emoji only", "🔥", []emojify.Segment{seg(emo, "🔥")}},
		{"consecutive emoji stay separate", "🔥😂💀", []emojify.Segment{
			seg(emo, "🔥"), seg(emo, "😂"), seg(emo, "💀"),
		}},
		{"surrounded", "I am 🔥 today", []emojify.Segment{
			seg(text, "I am "), seg(emo, "🔥"), seg(text, " today"),
		}},
		{"variation selector", "love ❤\uFE0F you", []emojify.Segment{
			seg(text, "love "), seg(emo, "❤\uFE0F"), seg(text, " you"),
		}},
		{"bare text-default emoji is text", "❤ and ☺", []emojify.Segment{seg(text, "❤ and ☺")}},
		{"trailing vs16 after presentation emoji is text", "😀\uFE0F", []emojify.Segment{
			seg(emo, "😀"), seg(text, "\uFE0F"),
		}},
		{"skin tone is its own segment", "👍🏽", []emojify.Segment{
			seg(emo, "👍"), seg(emo, "🏽"),
		}},
		{"zwj sequence splits", "👩\u200D💻", []emojify.Segment{
			seg(emo, "👩"), seg(text, "\u200D"), seg(emo, "💻"),
		}},
		{"emoji 16.0", "a \U0001FAE9 face", []emojify.Segment{
			seg(text, "a "), seg(emo, "\U0001FAE9"), seg(text, " face"),
		}},
		{"flag splits into indicators", "🇺🇸", []emojify.Segment{
			seg(emo, "🇺"), seg(emo, "🇸"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Segment(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Segment(%q)[%d] = %+v, want %+v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSegmentReconstructsInput(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"🔥",
		"Start 🔥 middle 😂 end",
		"mixed\n🔥\t❤\uFE0F\u200D👀 ",
		"1\uFE0F⃣ #\uFE0F ©",
		"\xff\xfe broken 🔥 bytes",
	}

	for _, in := range inputs {
		segments := Segment(in)
		if got := Join(segments); got != in {
			t.Errorf("Join(Segment(%q)) = %q", in, got)
		}
		for i, s := range segments {
			if s.Content == "" {
				t.Errorf("Segment(%q)[%d] is empty", in, i)
			}
			if i > 0 && s.Kind == emojify.SegmentText && segments[i-1].Kind == emojify.SegmentText {
				t.Errorf("Segment(%q) has adjacent text segments at %d", in, i)
			}
		}
	}
}

func TestContains(t *testing.T) {
	if Contains("plain words") {
		t.Error("Contains(plain words) = true")
	}
	if !Contains("fire 🔥") {
		t.Error("Contains(fire 🔥) = false")
	}
}
