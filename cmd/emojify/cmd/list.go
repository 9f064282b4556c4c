package cmd

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/translate"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List dictionary entries",
	Long: `List every dictionary entry in file order with its short definition
and context phrases.

Use --phrases to list the text-to-emoji phrases instead, longest first,
in the order they are applied.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("phrases", false, "list text-to-emoji phrases in match order")
}

func runList(cmd *cobra.Command, args []string) error {
	d, path, tr, err := loadTranslator()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if phrases, _ := cmd.Flags().GetBool("phrases"); phrases {
		maps := tr.Maps()
		keys := translate.SortedKeys(maps)
		width := 0
		for _, k := range keys {
			width = max(width, runewidth.StringWidth(k))
		}
		for _, k := range keys {
			e, _ := maps.Emoji(k)
			fmt.Fprintf(out, "%s  %s\n", runewidth.FillRight(k, width), e)
		}
		return nil
	}

	source := path
	if source == "" {
		source = "built-in"
	}
	fmt.Fprintf(out, "%d entries (%s)\n\n", d.Len(), source)

	defWidth := 0
	for _, e := range d.Entries() {
		defWidth = max(defWidth, runewidth.StringWidth(e.CanonicalDefinition()))
	}
	for _, e := range d.Entries() {
		line := runewidth.FillRight(e.Emoji, 4) + " " + runewidth.FillRight(e.CanonicalDefinition(), defWidth)
		if len(e.Context) > 0 {
			keys := make([]string, len(e.Context))
			for i, c := range e.Context {
				keys[i] = dictionary.NormalizeContextKey(c.Key)
			}
			line += "  " + strings.Join(keys, ", ")
		}
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
	return nil
}
