package dictionary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/emojify/internal/emojify"
)

// DecodeJSON reads a dictionary from a JSON object of the form
//
//	{"🔥": {"def": "fire - intense emotion", "context": {"lit": "..."}}}
//
// Object member order is preserved for both entries and context keys.
// encoding/json maps would lose it, so the document is walked token by token.
func DecodeJSON(r io.Reader) (*Dictionary, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("parsing dictionary: %w", err)
	}

	d := New()
	for dec.More() {
		emoji, err := stringToken(dec)
		if err != nil {
			return nil, fmt.Errorf("parsing dictionary key: %w", err)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing entry %q: %w", emoji, err)
		}

		entry, err := decodeJSONEntry(emoji, raw)
		if err != nil {
			return nil, err
		}
		d.Set(entry)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("parsing dictionary: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("parsing dictionary: unexpected data after top-level object")
	}

	return d, nil
}

func decodeJSONEntry(emoji string, raw json.RawMessage) (emojify.Entry, error) {
	entry := emojify.Entry{Emoji: emoji}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return entry, &emojify.EntryError{Emoji: emoji, Err: emojify.ErrMissingDefinition}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := expectDelim(dec, '{'); err != nil {
		return entry, &emojify.EntryError{Emoji: emoji, Err: err}
	}

	hasDef := false
	for dec.More() {
		field, err := stringToken(dec)
		if err != nil {
			return entry, &emojify.EntryError{Emoji: emoji, Err: err}
		}

		switch field {
		case "def":
			var def *string
			if err := dec.Decode(&def); err != nil {
				return entry, &emojify.EntryError{Emoji: emoji, Err: fmt.Errorf("def must be a string: %w", err)}
			}
			hasDef = def != nil
			if def != nil {
				entry.Definition = *def
			}
		case "context":
			ctx, err := decodeJSONContext(dec)
			if err != nil {
				return entry, &emojify.EntryError{Emoji: emoji, Err: err}
			}
			entry.Context = ctx
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return entry, &emojify.EntryError{Emoji: emoji, Err: err}
			}
		}
	}

	if !hasDef {
		return entry, &emojify.EntryError{Emoji: emoji, Err: emojify.ErrMissingDefinition}
	}
	return entry, nil
}

func decodeJSONContext(dec *json.Decoder) ([]emojify.ContextEntry, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading context: %w", err)
	}
	if tok == nil {
		return nil, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("context must be an object, got %v", tok)
	}

	var ctx []emojify.ContextEntry
	seen := make(map[string]int)
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, fmt.Errorf("reading context key: %w", err)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("reading context %q: %w", key, err)
		}
		if i, dup := seen[key]; dup {
			ctx[i].Value = value
			continue
		}
		seen[key] = len(ctx)
		ctx = append(ctx, emojify.ContextEntry{Key: key, Value: value})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return ctx, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %v", tok)
	}
	return s, nil
}

// EncodeJSON writes d as an indented JSON object, preserving order.
func EncodeJSON(w io.Writer, d *Dictionary) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, e := range d.entries {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		if err := writeJSONString(&buf, e.Emoji); err != nil {
			return err
		}
		buf.WriteString(": {\n    \"def\": ")
		if err := writeJSONString(&buf, e.Definition); err != nil {
			return err
		}
		if len(e.Context) > 0 {
			buf.WriteString(",\n    \"context\": {")
			for j, c := range e.Context {
				if j > 0 {
					buf.WriteString(",")
				}
				buf.WriteString("\n      ")
				if err := writeJSONString(&buf, c.Key); err != nil {
					return err
				}
				buf.WriteString(": ")
				value, err := json.Marshal(c.Value)
				if err != nil {
					return fmt.Errorf("marshaling context %q of %q: %w", c.Key, e.Emoji, err)
				}
				buf.Write(value)
			}
			buf.WriteString("\n    }")
		}
		buf.WriteString("\n  }")
	}
	if len(d.entries) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
