package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f3rmion/emojify/internal/config"
	"github.com/f3rmion/emojify/internal/dictionary"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize emojify configuration",
	Long: `Initialize emojify configuration files in your config directory.

This creates:
  - config.yaml       (dictionary search paths, direction, policy, logging, server)
  - emoji_data.json   (a copy of the built-in dictionary to edit)

Entries you add to emoji_data.json are picked up the next time emojify runs.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	out := cmd.OutOrStdout()

	cfgPath := filepath.Join(configDir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("config already exists: %s\nUse --force to overwrite", cfgPath)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	fmt.Fprintf(out, "Initializing emojify configuration in %s\n\n", configDir)

	if err := config.Save(cfgPath, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(out, "  Created %s\n", config.FileName)

	dictPath := filepath.Join(configDir, "emoji_data.json")
	if _, err := os.Stat(dictPath); err == nil && !force {
		fmt.Fprintf(out, "  Kept existing %s\n", filepath.Base(dictPath))
	} else {
		if err := dictionary.SaveFile(dictPath, dictionary.Builtin()); err != nil {
			return err
		}
		fmt.Fprintf(out, "  Created %s\n", filepath.Base(dictPath))
	}
	logger.Info("initialized config", "dir", configDir)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration initialized!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit emoji_data.json to add your own emoji and phrases")
	fmt.Fprintln(out, "  2. Run 'emojify check' to validate the dictionary")
	fmt.Fprintln(out, "  3. Run 'emojify translate \"I am on fire\"' to try it out")

	return nil
}
