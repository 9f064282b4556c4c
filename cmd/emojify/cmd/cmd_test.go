package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/emojify"
)

// execute runs the root command with args and returns what it printed.
// Flags keep their values between runs, so every test passes the flags it
// depends on explicitly.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeDictionary(t *testing.T) (configDir, dictPath string) {
	t.Helper()
	configDir = t.TempDir()
	dictPath = filepath.Join(configDir, "dict.json")
	d := dictionary.FromEntries(
		emojify.Entry{Emoji: "🔥", Definition: "fire - intense", Context: []emojify.ContextEntry{{Key: "on_fire"}}},
		emojify.Entry{Emoji: "😂", Definition: "laughing", Context: []emojify.ContextEntry{{Key: "lol"}}},
	)
	if err := dictionary.SaveFile(dictPath, d); err != nil {
		t.Fatal(err)
	}
	return configDir, dictPath
}

func TestTranslateCommand(t *testing.T) {
	configDir, dictPath := writeDictionary(t)

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"to emoji", "", []string{"I am ON FIRE lol"}, "I am 🔥 😂\n"},
		{"stdin", "lol\n", nil, "😂\n"},
		{"whitespace", "  \n\t", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", configDir, "--dict", dictPath, "translate", "--to", "emoji"}, tt.args...)
			got, err := execute(t, tt.stdin, args...)
			if err != nil {
				t.Fatalf("execute() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}

	got, err := execute(t, "", "--config", configDir, "--dict", dictPath, "translate", "--to", "text", "so 🔥 🔥")
	if err != nil {
		t.Fatal(err)
	}
	if got != "so fire fire\n" {
		t.Errorf("--to text output = %q, want %q", got, "so fire fire\n")
	}

	if _, err := execute(t, "", "--config", configDir, "--dict", dictPath, "translate", "--to", "klingon", "x"); err == nil {
		t.Error("unknown direction: expected error")
	}
}

func TestSegmentCommandJSON(t *testing.T) {
	configDir, dictPath := writeDictionary(t)

	got, err := execute(t, "", "--config", configDir, "--dict", dictPath, "segment", "--json", "hi 🔥")
	if err != nil {
		t.Fatal(err)
	}

	var segments []struct {
		Kind    string `json:"kind"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(got), &segments); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, got)
	}
	if len(segments) != 2 || segments[0].Content != "hi " || segments[1].Kind != "emoji" {
		t.Errorf("segments = %+v", segments)
	}
}

func TestCheckCommandBuiltin(t *testing.T) {
	configDir := t.TempDir()
	dictPath := filepath.Join(configDir, "builtin.json")
	if err := dictionary.SaveFile(dictPath, dictionary.Builtin()); err != nil {
		t.Fatal(err)
	}

	got, err := execute(t, "", "--config", configDir, "--dict", dictPath, "check", "--quiet")
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, got)
	}
	if !strings.Contains(got, "(100.00%)") {
		t.Errorf("output = %q, want a full pass summary", got)
	}
}

func TestConvertCommand(t *testing.T) {
	configDir, dictPath := writeDictionary(t)
	yamlPath := filepath.Join(configDir, "dict.yaml")

	if _, err := execute(t, "", "--config", configDir, "--dict", dictPath, "convert", dictPath, yamlPath); err != nil {
		t.Fatal(err)
	}

	d, err := dictionary.LoadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 2 || d.Emojis()[0] != "🔥" {
		t.Errorf("converted dictionary = %v", d.Emojis())
	}
}

func TestInitCommand(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "emojify")
	_, dictPath := writeDictionary(t)

	if _, err := execute(t, "", "--config", configDir, "--dict", dictPath, "init"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"config.yaml", "emoji_data.json"} {
		if _, err := os.Stat(filepath.Join(configDir, name)); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}

	if _, err := execute(t, "", "--config", configDir, "--dict", dictPath, "init"); err == nil {
		t.Error("second init without --force: expected error")
	}
}
