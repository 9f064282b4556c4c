package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/emojify/internal/dictionary"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a dictionary between JSON, YAML and SQLite",
	Long: `Convert a dictionary file to another format. Formats are chosen by
file extension: .json, .yaml/.yml, .db/.sqlite. Entry order and context
order are preserved.

Example:
  emojify convert emoji_data.json emoji.yaml
  emojify convert emoji.yaml emoji.db`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]

	d, err := dictionary.LoadFile(in)
	if err != nil {
		return err
	}
	if err := dictionary.SaveFile(out, d); err != nil {
		return err
	}

	logger.Info("converted dictionary", "from", in, "to", out, "entries", d.Len())
	fmt.Fprintf(cmd.OutOrStdout(), "Converted %d entries: %s → %s\n", d.Len(), in, out)
	return nil
}
