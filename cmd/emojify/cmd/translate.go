package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/emojify/internal/emojify"
)

var translateCmd = &cobra.Command{
	Use:     "translate [text...]",
	Aliases: []string{"t"},
	Short:   "Translate text to emoji or emoji to text",
	Long: `Translate the arguments, or standard input when there are none.

Direction:
  --to emoji   words and phrases become emoji (default)
  --to text    emoji become their definitions

Input that is empty or only whitespace prints nothing.

Example:
  emojify translate "I am on fire"
  emojify translate --to text "I am 🔥 today"
  echo "lol that is facts" | emojify translate`,
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)
	translateCmd.Flags().String("to", "", "target: emoji or text (default from translate.direction)")
	viper.BindPFlag("translate.direction", translateCmd.Flags().Lookup("to"))
}

func runTranslate(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(input) == "" {
		return nil
	}

	dir, err := defaultDirection()
	if err != nil {
		return err
	}

	_, _, tr, err := loadTranslator()
	if err != nil {
		return err
	}

	out, err := tr.Translate(dir, input)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

// readInput joins args with spaces, or reads all of stdin when there are none.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("%w: reading stdin: %v", emojify.ErrInvalidInput, err)
	}
	return string(data), nil
}
