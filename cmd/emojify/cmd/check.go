package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/f3rmion/emojify/internal/check"
)

var (
	checkHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#4ecdc4"))

	checkPassStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#a8e6cf"))

	checkFailStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	checkDetailStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run translation checks against the dictionary",
	Long: `Run sanity checks against the loaded dictionary:
  - emoji to text for single emoji, sequences and mixed content
  - text to emoji for context phrases, case and punctuation
  - whitespace and newline preservation
  - round trip of every definition

Exits with a non-zero status when any check fails.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolP("quiet", "q", false, "only print failures and the summary")
}

func runCheck(cmd *cobra.Command, args []string) error {
	d, _, tr, err := loadTranslator()
	if err != nil {
		return err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	out := cmd.OutOrStdout()

	report := check.Run(d, tr)
	order, groups := report.Groups()
	for _, group := range order {
		if !quiet {
			fmt.Fprintln(out, checkHeaderStyle.Render(group))
		}
		for _, res := range groups[group] {
			if res.Passed() {
				if !quiet {
					fmt.Fprintf(out, "  %s %s\n", checkPassStyle.Render("PASS"), res.Name)
				}
				continue
			}
			fmt.Fprintf(out, "  %s %s\n", checkFailStyle.Render("FAIL"), res.Name)
			fmt.Fprintln(out, checkDetailStyle.Render(fmt.Sprintf("       input:    %q", res.Input)))
			fmt.Fprintln(out, checkDetailStyle.Render(fmt.Sprintf("       expected: %q", res.Expected)))
			fmt.Fprintln(out, checkDetailStyle.Render(fmt.Sprintf("       got:      %q", res.Got)))
		}
		if !quiet {
			fmt.Fprintln(out)
		}
	}

	summary := report.Summary()
	if !report.OK() {
		fmt.Fprintln(out, checkFailStyle.Render(summary))
		return fmt.Errorf("%d of %d checks failed", report.Failed(), len(report.Results))
	}
	fmt.Fprintln(out, checkPassStyle.Render(summary))
	return nil
}
