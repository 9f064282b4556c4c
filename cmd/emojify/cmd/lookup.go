package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/emoji"
	"github.com/f3rmion/emojify/internal/emojify"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <emoji|phrase>",
	Short: "Look up an emoji or phrase in the dictionary",
	Long: `Look up an emoji and display its:
  - Short definition (used for emoji → text)
  - Full definition
  - Context phrases (also translated to this emoji)

Or look up a phrase and display which emoji it translates to.

Example:
  emojify lookup 🔥
  emojify lookup "no cap"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	d, _, tr, err := loadTranslator()
	if err != nil {
		return err
	}
	maps := tr.Maps()
	out := cmd.OutOrStdout()

	input := strings.Join(args, " ")
	fmt.Fprintf(out, "Looking up: %s\n\n", input)

	if !emoji.Contains(input) {
		phrase := strings.ToLower(strings.TrimSpace(input))
		e, ok := maps.Emoji(phrase)
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: no emoji for %q\n", phrase)
			return nil
		}
		fmt.Fprintf(out, "  Phrase:      %s\n", phrase)
		fmt.Fprintf(out, "  Emoji:       %s\n", e)
		printEntry(out, d, e)
		return nil
	}

	printed := 0
	for _, s := range emoji.Segment(input) {
		if s.Kind != emojify.SegmentEmoji {
			continue
		}
		if printed > 0 {
			fmt.Fprintln(out)
		}
		printed++
		fmt.Fprintf(out, "  Emoji:       %s  (%U)\n", s.Content, []rune(s.Content))
		if _, ok := d.Lookup(s.Content); !ok {
			fmt.Fprintln(out, "  (not in dictionary)")
			continue
		}
		printEntry(out, d, s.Content)
	}
	return nil
}

func printEntry(out io.Writer, d *dictionary.Dictionary, e string) {
	entry, ok := d.Lookup(e)
	if !ok {
		return
	}
	fmt.Fprintf(out, "  Definition:  %s\n", entry.CanonicalDefinition())
	if entry.Definition != entry.CanonicalDefinition() {
		fmt.Fprintf(out, "  Full:        %s\n", entry.Definition)
	}
	if len(entry.Context) > 0 {
		keys := make([]string, len(entry.Context))
		for i, c := range entry.Context {
			keys[i] = dictionary.NormalizeContextKey(c.Key)
		}
		fmt.Fprintf(out, "  Phrases:     %s\n", strings.Join(keys, ", "))
	}
}
