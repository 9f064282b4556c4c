// Package cmd contains all CLI commands for the emojify tool.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/emojify/internal/config"
	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/emojify"
	"github.com/f3rmion/emojify/internal/logging"
	"github.com/f3rmion/emojify/internal/translate"
)

var cfgFile string

var (
	logger    = logging.Discard()
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "emojify",
	Short: "Translate between emoji and text",
	Long: `emojify translates text to emoji and emoji back to text using a
dictionary of emoji, definitions and slang phrases.

Text to emoji replaces whole words and phrases, case-insensitively, longest
phrase first:
  "you are on fire" → "you are 🔥"

Emoji to text replaces each known emoji with its short definition:
  "I am 🔥 today" → "I am fire today"

Running 'emojify' without arguments launches the interactive TUI.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: closeLogging,
	RunE:               runUnifiedTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/emojify)")
	flags.String("dict", "", "dictionary file (.json, .yaml or .db); overrides dictionary.paths")
	flags.String("policy", "", "text-to-emoji substitution policy: sequential or single-pass")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.Bool("verbose", false, "verbose output (same as --log-level info)")

	viper.BindPFlag("dictionary.path", flags.Lookup("dict"))
	viper.BindPFlag("translate.policy", flags.Lookup("policy"))
	viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	cfg, err := config.LoadDir(getConfigDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		cfg = config.Default()
	}
	setDefaults(cfg)

	viper.SetEnvPrefix("EMOJIFY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// setDefaults makes the config file the lowest-precedence layer under
// environment variables and flags.
func setDefaults(cfg *config.Config) {
	viper.SetDefault("dictionary.paths", cfg.Dictionary.Paths)
	viper.SetDefault("translate.direction", cfg.Translate.Direction)
	viper.SetDefault("translate.policy", cfg.Translate.Policy)
	viper.SetDefault("logging.level", cfg.Logging.Level)
	viper.SetDefault("logging.file", cfg.Logging.File)
	viper.SetDefault("logging.max_size", cfg.Logging.MaxSize)
	viper.SetDefault("logging.max_files", cfg.Logging.MaxFiles)
	viper.SetDefault("server.addr", cfg.Server.Addr)
	viper.SetDefault("server.watch", cfg.Server.Watch)
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	cfg := logging.FromViper(viper.GetViper())
	if viper.GetBool("verbose") && logging.ParseLevel(cfg.Level) > slog.LevelInfo {
		cfg.Level = "info"
	}

	l, closer, err := logging.New(cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	logger = l
	logCloser = closer
	slog.SetDefault(l)
	return nil
}

func closeLogging(cmd *cobra.Command, args []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// dictionaryPaths lists candidate dictionary files in the order they are tried.
func dictionaryPaths() []string {
	paths := append([]string{}, viper.GetStringSlice("dictionary.paths")...)
	paths = append(paths, filepath.Join(getConfigDir(), "emoji_data.json"))

	// Also check relative to executable
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "data", "emoji_data.json"))
	}
	return paths
}

// loadDictionary loads the dictionary named by --dict, or the first one
// found on the search path, or the built-in one. It returns the path used,
// empty for the built-in dictionary.
func loadDictionary() (*dictionary.Dictionary, string, error) {
	if path := viper.GetString("dictionary.path"); path != "" {
		d, err := dictionary.LoadFile(path)
		if err != nil {
			return nil, "", err
		}
		logger.Info("loaded dictionary", "path", path, "entries", d.Len())
		return d, path, nil
	}

	d, path, err := dictionary.Find(logger, dictionaryPaths())
	if errors.Is(err, dictionary.ErrNotFound) {
		logger.Info("no dictionary file found, using built-in dictionary")
		return dictionary.Builtin(), "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return d, path, nil
}

// buildTranslator compiles d with the configured policy and logs map sizes.
func buildTranslator(d *dictionary.Dictionary) (*translate.Translator, error) {
	policy, err := emojify.ParsePolicy(viper.GetString("translate.policy"))
	if err != nil {
		return nil, err
	}

	maps := dictionary.Compile(d)
	stats := maps.Stats()
	logger.Info("built translation maps",
		"emoji_to_text", stats.EmojiToText,
		"text_to_emoji", stats.TextToEmoji,
		"policy", policy.String(),
	)
	return translate.New(maps, translate.WithPolicy(policy))
}

// loadTranslator loads the dictionary and compiles it.
func loadTranslator() (*dictionary.Dictionary, string, *translate.Translator, error) {
	d, path, err := loadDictionary()
	if err != nil {
		return nil, "", nil, fmt.Errorf("loading dictionary: %w", err)
	}
	tr, err := buildTranslator(d)
	if err != nil {
		return nil, "", nil, err
	}
	return d, path, tr, nil
}

// defaultDirection returns translate.direction, text to emoji if unset.
func defaultDirection() (emojify.Direction, error) {
	name := viper.GetString("translate.direction")
	if name == "" {
		return emojify.TextToEmoji, nil
	}
	return emojify.ParseDirection(name)
}

// runUnifiedTUI launches the unified TUI application.
func runUnifiedTUI(cmd *cobra.Command, args []string) error {
	return runTUI(cmd, false)
}
