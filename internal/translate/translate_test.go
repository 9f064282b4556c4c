package translate

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/emojify"
)

func entry(emoji, def string, context ...string) emojify.Entry {
	e := emojify.Entry{Emoji: emoji, Definition: def}
	for _, k := range context {
		e.Context = append(e.Context, emojify.ContextEntry{Key: k})
	}
	return e
}

func newTranslator(t *testing.T, policy emojify.Policy, entries ...emojify.Entry) *Translator {
	t.Helper()
	tr, err := New(dictionary.Compile(dictionary.FromEntries(entries...)), WithPolicy(policy))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tr
}

var policies = []emojify.Policy{emojify.Sequential, emojify.SinglePass}

func TestFireScenario(t *testing.T) {
	for _, p := range policies {
		tr := newTranslator(t, p, entry("🔥", "fire - intense emotion"))

		if got := tr.EmojiToText("I am 🔥 today"); got != "I am fire today" {
			t.Errorf("%v: EmojiToText() = %q, want %q", p, got, "I am fire today")
		}
		if got := tr.TextToEmoji("I am fire today"); got != "I am 🔥 today" {
			t.Errorf("%v: TextToEmoji() = %q, want %q", p, got, "I am 🔥 today")
		}
	}
}

func TestEmojiToText(t *testing.T) {
	tr := newTranslator(t, emojify.Sequential,
		entry("🔥", "fire - hot"),
		entry("😂", "laughing"),
		entry("❤️", "love - affection"),
		entry("🫥", " - empty definition"),
	)

	tests := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"single", "🔥", "fire"},
		{"sequence", "🔥😂🔥", "firelaughingfire"},
		{"surrounded", "Hello 🔥 world", "Hello fire world"},
		{"text only", "Just plain text here", "Just plain text here"},
		{"mixed", "Start 🔥 middle 😂 end", "Start fire middle laughing end"},
		{"unknown kept", "🦄 and 🔥", "🦄 and fire"},
		{"variation selector", "I ❤️ you", "I love you"},
		{"bare heart is not an emoji segment", "I ❤ you", "I ❤ you"},
		{"empty definition keeps emoji", "🫥", "🫥"},
		{"newlines kept", "🔥\n\t😂", "fire\n\tlaughing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.EmojiToText(tt.in); got != tt.want {
				t.Errorf("EmojiToText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTextToEmoji(t *testing.T) {
	entries := []emojify.Entry{
		entry("🔥", "fire - hot", "lit"),
		entry("🚒", "fire truck"),
		entry("💯", "hundred", "on_fire", "no_cap"),
		entry("😂", "laughing", "lol"),
		entry("🔤", "a.b"),
		entry("➕", "plus", "c++"),
	}

	tests := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"single word", "fire", "🔥"},
		{"case insensitive", "FIRE", "🔥"},
		{"mixed case", "FiRe", "🔥"},
		{"longest match wins", "on fire", "💯"},
		{"longest match inside sentence", "you are on fire and lit", "you are 💯 and 🔥"},
		{"underscore key matches spaces", "No Cap", "💯"},
		{"whitespace preserved", "  fire  ", "  🔥  "},
		{"newlines and tabs preserved", "lol\nfire\tlit", "😂\n🔥\t🔥"},
		{"punctuation adjacent", "Yeah! fire!", "Yeah! 🔥!"},
		{"comma adjacent", "fire,lol.", "🔥,😂."},
		{"embedded word untouched", "firefly campfire", "firefly campfire"},
		{"underscore is a word char", "fire_lol", "fire_lol"},
		{"digits are word chars", "fire2", "fire2"},
		{"unknown words kept", "lol unknown word", "😂 unknown word"},
		{"repeated", "fire fire FIRE", "🔥 🔥 🔥"},
		{"metacharacters are literal", "a.b axb", "🔤 axb"},
		{"trailing symbol key needs word boundary", "c++ rocks", "c++ rocks"},
	}

	for _, p := range policies {
		tr := newTranslator(t, p, entries...)
		for _, tt := range tests {
			t.Run(p.String()+"/"+tt.name, func(t *testing.T) {
				if got := tr.TextToEmoji(tt.in); got != tt.want {
					t.Errorf("TextToEmoji(%q) = %q, want %q", tt.in, got, tt.want)
				}
			})
		}
	}
}

func TestSequentialCascade(t *testing.T) {
	// "cat" is both the replacement for "big kitty" and a key of its own.
	entries := []emojify.Entry{
		entry("cat", "big kitty"),
		entry("🐱", "cat"),
	}

	seq := newTranslator(t, emojify.Sequential, entries...)
	if got := seq.TextToEmoji("a big kitty"); got != "a 🐱" {
		t.Errorf("sequential TextToEmoji() = %q, want %q", got, "a 🐱")
	}

	single := newTranslator(t, emojify.SinglePass, entries...)
	if got := single.TextToEmoji("a big kitty"); got != "a cat" {
		t.Errorf("single-pass TextToEmoji() = %q, want %q", got, "a cat")
	}
}

func TestRoundTripBuiltin(t *testing.T) {
	d := dictionary.Builtin()
	maps := dictionary.Compile(d)

	for _, p := range policies {
		tr := MustNew(maps, WithPolicy(p))
		for _, e := range d.Entries() {
			def := e.CanonicalDefinition()
			if def == "" {
				continue
			}
			if got := tr.EmojiToText(e.Emoji); got != def {
				t.Errorf("%v: EmojiToText(%q) = %q, want %q", p, e.Emoji, got, def)
			}
			owner, _ := maps.Emoji(strings.ToLower(def))
			if owner != e.Emoji {
				continue
			}
			if got := tr.TextToEmoji(def); got != e.Emoji {
				t.Errorf("%v: TextToEmoji(%q) = %q, want %q", p, def, got, e.Emoji)
			}
			if got := tr.TextToEmoji(strings.ToUpper(def)); got != e.Emoji {
				t.Errorf("%v: TextToEmoji(%q) = %q, want %q", p, strings.ToUpper(def), got, e.Emoji)
			}
		}
	}
}

func TestEmptyDictionary(t *testing.T) {
	for _, p := range policies {
		tr := newTranslator(t, p)
		if got := tr.TextToEmoji("hello fire"); got != "hello fire" {
			t.Errorf("%v: TextToEmoji() = %q", p, got)
		}
		if got := tr.EmojiToText("hello 🔥"); got != "hello 🔥" {
			t.Errorf("%v: EmojiToText() = %q", p, got)
		}
	}
}

func TestTranslateDispatch(t *testing.T) {
	tr := newTranslator(t, emojify.Sequential, entry("🔥", "fire"))

	got, err := tr.Translate(emojify.TextToEmoji, "fire")
	if err != nil || got != "🔥" {
		t.Errorf("Translate(TextToEmoji) = %q, %v", got, err)
	}
	got, err = tr.Translate(emojify.EmojiToText, "🔥")
	if err != nil || got != "fire" {
		t.Errorf("Translate(EmojiToText) = %q, %v", got, err)
	}
	if _, err := tr.Translate(emojify.Direction(9), "x"); !errors.Is(err, emojify.ErrUnknownDirection) {
		t.Errorf("Translate(9) error = %v, want ErrUnknownDirection", err)
	}
}

func TestNewRejectsUnknownPolicy(t *testing.T) {
	_, err := New(dictionary.Compile(dictionary.New()), WithPolicy(emojify.Policy(7)))
	if !errors.Is(err, emojify.ErrUnknownPolicy) {
		t.Errorf("New() error = %v, want ErrUnknownPolicy", err)
	}
}

func TestSortedKeys(t *testing.T) {
	maps := dictionary.Compile(dictionary.FromEntries(
		entry("1", "bb"),
		entry("2", "aa"),
		entry("3", "ccc"),
		entry("4", "d"),
		entry("5", "éé"),
	))

	want := []string{"ccc", "bb", "aa", "éé", "d"}
	if got := SortedKeys(maps); !reflect.DeepEqual(got, want) {
		t.Errorf("SortedKeys() = %v, want %v", got, want)
	}
}

func TestSessionSwap(t *testing.T) {
	first := newTranslator(t, emojify.Sequential, entry("🔥", "fire"))
	second := newTranslator(t, emojify.Sequential, entry("🌊", "fire"))

	s := NewSession(first)
	if got, _ := s.Translate(emojify.TextToEmoji, "fire"); got != "🔥" {
		t.Errorf("Translate() = %q, want 🔥", got)
	}

	if prev := s.Swap(second); prev != first {
		t.Error("Swap() did not return the previous translator")
	}
	if got, _ := s.Translate(emojify.TextToEmoji, "fire"); got != "🌊" {
		t.Errorf("Translate() after swap = %q, want 🌊", got)
	}
}

func TestSessionReloadKeepsPolicy(t *testing.T) {
	s := NewSession(newTranslator(t, emojify.SinglePass, entry("🔥", "fire")))

	tr, err := s.Reload(dictionary.FromEntries(entry("🌊", "wave")))
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if tr.Policy() != emojify.SinglePass {
		t.Errorf("Policy() = %v, want single-pass", tr.Policy())
	}
	if s.Translator() != tr {
		t.Error("Reload() did not install the new translator")
	}
	if got, _ := s.Translate(emojify.TextToEmoji, "fire wave"); got != "fire 🌊" {
		t.Errorf("Translate() = %q, want %q", got, "fire 🌊")
	}
}

func TestSessionConcurrentSwap(t *testing.T) {
	a := newTranslator(t, emojify.Sequential, entry("🔥", "fire"))
	b := newTranslator(t, emojify.Sequential, entry("🌊", "fire"))
	s := NewSession(a)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				got, err := s.Translate(emojify.TextToEmoji, "fire")
				if err != nil || (got != "🔥" && got != "🌊") {
					t.Errorf("Translate() = %q, %v", got, err)
					return
				}
			}
		}()
	}
	for i := 0; i < 100; i++ {
		if i%2 == 0 {
			s.Swap(b)
		} else {
			s.Swap(a)
		}
	}
	wg.Wait()
}

func TestSessionSetPolicy(t *testing.T) {
	s := NewSession(newTranslator(t, emojify.Sequential, entry("🔥", "fire")))
	maps := s.Translator().Maps()

	tr, err := s.SetPolicy(emojify.SinglePass)
	if err != nil {
		t.Fatalf("SetPolicy() error = %v", err)
	}
	if tr.Policy() != emojify.SinglePass || s.Translator() != tr {
		t.Errorf("SetPolicy() did not install a single-pass translator")
	}
	if tr.Maps() != maps {
		t.Error("SetPolicy() rebuilt the maps")
	}

	if again, _ := s.SetPolicy(emojify.SinglePass); again != tr {
		t.Error("SetPolicy() with the current policy replaced the translator")
	}
}

func TestSessionUpdateRetriesAfterReload(t *testing.T) {
	s := NewSession(newTranslator(t, emojify.Sequential, entry("🔥", "fire")))

	var reloaded *Translator
	attempts := 0
	tr, err := s.update(func(cur *Translator) (*Translator, error) {
		attempts++
		if attempts == 1 {
			// A reload lands after cur was read.
			var err error
			if reloaded, err = s.Reload(dictionary.FromEntries(entry("🌊", "fire"))); err != nil {
				t.Fatal(err)
			}
		}
		return New(cur.Maps(), WithPolicy(emojify.SinglePass))
	})
	if err != nil {
		t.Fatalf("update() error = %v", err)
	}

	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if tr.Maps() != reloaded.Maps() {
		t.Error("update() dropped the reloaded maps")
	}
	if got, _ := s.Translate(emojify.TextToEmoji, "fire"); got != "🌊" {
		t.Errorf("Translate() = %q, want 🌊", got)
	}
	if s.Translator().Policy() != emojify.SinglePass {
		t.Errorf("Policy() = %v, want single-pass", s.Translator().Policy())
	}
}

func TestSessionPolicyTogglesKeepReloads(t *testing.T) {
	s := NewSession(newTranslator(t, emojify.Sequential, entry("🔥", "fire")))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			p := emojify.SinglePass
			if i%2 == 1 {
				p = emojify.Sequential
			}
			if _, err := s.SetPolicy(p); err != nil {
				t.Errorf("SetPolicy() error = %v", err)
				return
			}
		}
	}()

	var last *Translator
	for i := 0; i < 50; i++ {
		tr, err := s.Reload(dictionary.FromEntries(entry("🌊", "fire"), entry("🔥", "hot")))
		if err != nil {
			t.Fatal(err)
		}
		last = tr
	}
	wg.Wait()

	if s.Translator().Maps() != last.Maps() {
		t.Error("a policy toggle reverted the last reload")
	}
}
