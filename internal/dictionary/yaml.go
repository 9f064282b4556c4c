package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/emojify/internal/emojify"
	"gopkg.in/yaml.v3"
)

// DecodeYAML reads a dictionary from a YAML mapping with the same shape as
// the JSON form:
//
//	🔥:
//	  def: fire - intense emotion
//	  context:
//	    lit: very good
//
// Mapping order is preserved by walking the node tree.
func DecodeYAML(r io.Reader) (*Dictionary, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return New(), nil
		}
		return nil, fmt.Errorf("parsing dictionary: %w", err)
	}

	root := resolve(&doc)
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return New(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing dictionary: line %d: expected a mapping", root.Line)
	}

	d := New()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := resolve(root.Content[i]), resolve(root.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("parsing dictionary: line %d: entry key must be a scalar", key.Line)
		}

		entry, err := decodeYAMLEntry(key.Value, value)
		if err != nil {
			return nil, err
		}
		d.Set(entry)
	}

	return d, nil
}

func decodeYAMLEntry(emoji string, node *yaml.Node) (emojify.Entry, error) {
	entry := emojify.Entry{Emoji: emoji}
	if node.Kind != yaml.MappingNode {
		return entry, &emojify.EntryError{Emoji: emoji, Err: emojify.ErrMissingDefinition}
	}

	hasDef := false
	for i := 0; i+1 < len(node.Content); i += 2 {
		field, value := resolve(node.Content[i]), resolve(node.Content[i+1])

		switch field.Value {
		case "def":
			if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null" {
				hasDef = false
				continue
			}
			// Plain scalars like 123 or true resolve to !!int and !!bool.
			if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!str" {
				return entry, &emojify.EntryError{Emoji: emoji, Err: fmt.Errorf("line %d: def must be a string", value.Line)}
			}
			hasDef = true
			entry.Definition = value.Value
		case "context":
			ctx, err := decodeYAMLContext(value)
			if err != nil {
				return entry, &emojify.EntryError{Emoji: emoji, Err: err}
			}
			entry.Context = ctx
		}
	}

	if !hasDef {
		return entry, &emojify.EntryError{Emoji: emoji, Err: emojify.ErrMissingDefinition}
	}
	return entry, nil
}

func decodeYAMLContext(node *yaml.Node) ([]emojify.ContextEntry, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: context must be a mapping", node.Line)
	}

	var ctx []emojify.ContextEntry
	seen := make(map[string]int)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := resolve(node.Content[i]), node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: context key must be a scalar", key.Line)
		}

		var v any
		if err := value.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: reading context %q: %w", value.Line, key.Value, err)
		}
		if j, dup := seen[key.Value]; dup {
			ctx[j].Value = v
			continue
		}
		seen[key.Value] = len(ctx)
		ctx = append(ctx, emojify.ContextEntry{Key: key.Value, Value: v})
	}
	return ctx, nil
}

// resolve unwraps document and alias nodes.
func resolve(n *yaml.Node) *yaml.Node {
	for {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) > 0:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n
		}
	}
}

// EncodeYAML writes d as a YAML mapping, preserving order.
func EncodeYAML(w io.Writer, d *Dictionary) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range d.entries {
		entry := &yaml.Node{Kind: yaml.MappingNode}
		entry.Content = append(entry.Content, strNode("def"), strNode(e.Definition))

		if len(e.Context) > 0 {
			ctx := &yaml.Node{Kind: yaml.MappingNode}
			for _, c := range e.Context {
				var value yaml.Node
				if err := value.Encode(yamlValue(c.Value)); err != nil {
					return fmt.Errorf("encoding context %q of %q: %w", c.Key, e.Emoji, err)
				}
				ctx.Content = append(ctx.Content, strNode(c.Key), &value)
			}
			entry.Content = append(entry.Content, strNode("context"), ctx)
		}

		root.Content = append(root.Content, strNode(e.Emoji), entry)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return fmt.Errorf("encoding dictionary: %w", err)
	}
	return enc.Close()
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// yamlValue turns JSON-decoded numbers back into numbers so they are not
// quoted as strings.
func yamlValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = yamlValue(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = yamlValue(val)
		}
		return out
	}
	return v
}
