// Package check runs translation sanity checks against a loaded dictionary.
package check

import (
	"fmt"
	"strings"

	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/translate"
)

// Group names, in the order they run.
const (
	GroupEmojiToText = "Emoji to text"
	GroupTextToEmoji = "Text to emoji"
	GroupEdgeCases   = "Edge cases"
	GroupProperties  = "Dictionary properties"
)

// Result is the outcome of one check.
type Result struct {
	Group    string
	Name     string
	Input    string
	Expected string
	Got      string
}

// Passed reports whether the check produced the expected output.
func (r Result) Passed() bool {
	return r.Got == r.Expected
}

// Report collects check results.
type Report struct {
	Results []Result
}

// Passed returns the number of passing checks.
func (r Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed() {
			n++
		}
	}
	return n
}

// Failed returns the number of failing checks.
func (r Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// SuccessRate returns the pass percentage, 0 when nothing ran.
func (r Report) SuccessRate() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	return float64(r.Passed()) / float64(len(r.Results)) * 100
}

// OK reports whether every check passed.
func (r Report) OK() bool {
	return r.Failed() == 0
}

type runner struct {
	tr     *translate.Translator
	report Report
}

func (r *runner) run(group, name, input, expected string, fn func(string) string) {
	r.report.Results = append(r.report.Results, Result{
		Group:    group,
		Name:     name,
		Input:    input,
		Expected: expected,
		Got:      fn(input),
	})
}

// Run checks tr against the dictionary it was compiled from. Checks that
// need more entries than the dictionary has are skipped.
func Run(d *dictionary.Dictionary, tr *translate.Translator) Report {
	r := &runner{tr: tr}
	maps := tr.Maps()
	e2t := tr.EmojiToText
	t2e := tr.TextToEmoji

	emojis := firstN(d.Emojis(), 10)
	text := func(e string) string {
		s, _ := maps.Text(e)
		return s
	}

	if len(emojis) >= 1 {
		r.run(GroupEmojiToText, "Single emoji translation", emojis[0], text(emojis[0]), e2t)
		r.run(GroupEmojiToText, "Emoji with surrounding text",
			"Hello "+emojis[0]+" world", "Hello "+text(emojis[0])+" world", e2t)
	}
	if len(emojis) >= 3 {
		r.run(GroupEmojiToText, "Multiple emojis in sequence",
			emojis[0]+emojis[1]+emojis[2], text(emojis[0])+text(emojis[1])+text(emojis[2]), e2t)
	}
	if len(emojis) >= 2 {
		r.run(GroupEmojiToText, "Mixed content with multiple emojis",
			"Start "+emojis[0]+" middle "+emojis[1]+" end",
			"Start "+text(emojis[0])+" middle "+text(emojis[1])+" end", e2t)
	}
	r.run(GroupEmojiToText, "Empty input", "", "", e2t)
	r.run(GroupEmojiToText, "Text only - no emojis", "Just plain text here", "Just plain text here", e2t)

	keys := firstN(maps.TextKeys(), 10)
	emojiFor := func(k string) string {
		s, _ := maps.Emoji(k)
		return s
	}

	if len(keys) >= 1 {
		r.run(GroupTextToEmoji, fmt.Sprintf("Context key: %q", keys[0]), keys[0], emojiFor(keys[0]), t2e)
	}
	if len(keys) >= 2 {
		r.run(GroupTextToEmoji, fmt.Sprintf("Context key: %q", keys[1]), keys[1], emojiFor(keys[1]), t2e)
		r.run(GroupTextToEmoji, "Multiple context words in sentence",
			keys[0]+" and "+keys[1], emojiFor(keys[0])+" and "+emojiFor(keys[1]), t2e)
	}
	if len(keys) >= 1 {
		r.run(GroupTextToEmoji, "Case insensitive matching", strings.ToUpper(keys[0]), emojiFor(keys[0]), t2e)
		r.run(GroupTextToEmoji, "Unknown words preservation",
			keys[0]+" unknown word", emojiFor(keys[0])+" unknown word", t2e)
	}
	r.run(GroupTextToEmoji, "Empty input", "", "", t2e)
	if len(keys) >= 1 {
		r.run(GroupTextToEmoji, "Text with punctuation",
			"Yeah! "+keys[0]+"!", "Yeah! "+emojiFor(keys[0])+"!", t2e)

		r.run(GroupEdgeCases, "Whitespace preservation",
			"   "+keys[0]+"   ", "   "+emojiFor(keys[0])+"   ", t2e)
	}
	if len(keys) >= 3 {
		r.run(GroupEdgeCases, "Newlines preservation",
			keys[0]+"\n"+keys[1]+"\t"+keys[2],
			emojiFor(keys[0])+"\n"+emojiFor(keys[1])+"\t"+emojiFor(keys[2]), t2e)
	}
	for _, word := range []string{"lol", "fire", "sarcasm"} {
		if e, ok := maps.Emoji(word); ok {
			r.run(GroupEdgeCases, fmt.Sprintf("Common word - %s", word), word, e, t2e)
		}
	}

	r.roundTrip(d)

	return r.report
}

// roundTrip checks every entry whose definition it owns translates both ways.
func (r *runner) roundTrip(d *dictionary.Dictionary) {
	maps := r.tr.Maps()
	for _, e := range d.Entries() {
		def := e.CanonicalDefinition()
		if def == "" {
			continue
		}
		r.run(GroupProperties, fmt.Sprintf("Round trip %s to text", e.Emoji), e.Emoji, def, r.tr.EmojiToText)

		if owner, _ := maps.Emoji(strings.ToLower(def)); owner == e.Emoji {
			r.run(GroupProperties, fmt.Sprintf("Round trip %q to emoji", def), def, e.Emoji, r.tr.TextToEmoji)
		}
	}
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Groups returns results grouped by Group, preserving run order.
func (r Report) Groups() ([]string, map[string][]Result) {
	var order []string
	groups := make(map[string][]Result)
	for _, res := range r.Results {
		if _, ok := groups[res.Group]; !ok {
			order = append(order, res.Group)
		}
		groups[res.Group] = append(groups[res.Group], res)
	}
	return order, groups
}

// Summary is a one-line description of the report.
func (r Report) Summary() string {
	return fmt.Sprintf("%d/%d passed (%.2f%%)", r.Passed(), len(r.Results), r.SuccessRate())
}
