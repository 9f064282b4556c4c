package dictionary

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

//go:embed builtin.json
var builtinJSON []byte

// ErrUnsupportedFormat is returned for unknown dictionary file types.
var ErrUnsupportedFormat = errors.New("unsupported dictionary format")

// ErrNotFound is returned when none of the candidate paths exist.
var ErrNotFound = errors.New("could not find dictionary")

// Format is a dictionary file format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "sqlite", "db", "sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
}

// Decode reads a dictionary in a streamable format.
func Decode(r io.Reader, format Format) (*Dictionary, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	}
	return nil, fmt.Errorf("%w: cannot stream %s", ErrUnsupportedFormat, format)
}

// LoadFile loads a dictionary from a file, picking the format by extension.
func LoadFile(path string) (*Dictionary, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	if format == FormatSQLite {
		return LoadSQLite(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary file: %w", err)
	}
	defer file.Close()

	d, err := Decode(file, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return d, nil
}

// SaveFile writes a dictionary to path in the format given by its extension.
func SaveFile(path string, d *Dictionary) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if format == FormatSQLite {
		return SaveSQLite(path, d)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dictionary file: %w", err)
	}
	defer file.Close()

	if format == FormatYAML {
		err = EncodeYAML(file, d)
	} else {
		err = EncodeJSON(file, d)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}

// Find loads the first dictionary found among paths, trying them in order.
// It returns the path that was used. A path that exists but fails to load
// is an error; missing paths are skipped.
func Find(logger *slog.Logger, paths []string) (*Dictionary, string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			logger.Debug("dictionary not found", "path", path, "error", err)
			continue
		}

		d, err := LoadFile(path)
		if err != nil {
			return nil, path, err
		}
		logger.Info("loaded dictionary", "path", path, "entries", d.Len())
		return d, path, nil
	}

	return nil, "", fmt.Errorf("%w at any of: %s", ErrNotFound, strings.Join(paths, ", "))
}

// Builtin returns the dictionary compiled into the binary.
func Builtin() *Dictionary {
	d, err := DecodeJSON(bytes.NewReader(builtinJSON))
	if err != nil {
		panic(fmt.Sprintf("builtin dictionary: %v", err))
	}
	return d
}
