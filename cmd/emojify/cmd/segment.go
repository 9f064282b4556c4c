package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/emojify/internal/emoji"
	"github.com/f3rmion/emojify/internal/emojify"
)

var segmentCmd = &cobra.Command{
	Use:   "segment [text...]",
	Short: "Split text into emoji and text segments",
	Long: `Split the input into alternating text and emoji segments, the way
emoji-to-text translation sees it. Reads standard input when no text is
given.

Example:
  emojify segment "hi 🔥🔥 there ❤️"`,
	RunE: runSegment,
}

func init() {
	rootCmd.AddCommand(segmentCmd)
	segmentCmd.Flags().Bool("json", false, "print segments as JSON")
}

func runSegment(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	segments := emoji.Segment(input)
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(segments)
	}

	for i, s := range segments {
		content := fmt.Sprintf("%q", s.Content)
		if s.Kind == emojify.SegmentEmoji {
			content = fmt.Sprintf("%s  %U", s.Content, []rune(s.Content))
		}
		fmt.Fprintf(out, "%3d  %-5s  %s\n", i, s.Kind, content)
	}
	return nil
}
