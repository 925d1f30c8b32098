package settings

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/roach88/slider/internal/prefs"
)

// Item is a read-only view of one registered setting.
type Item struct {
	ID      ID         `json:"-" yaml:"-"`
	Name    string     `json:"name" yaml:"name"`
	Key     string     `json:"key" yaml:"key"`
	Kind    prefs.Kind `json:"kind" yaml:"kind"`
	Current any        `json:"current" yaml:"current"`
	Default any        `json:"default" yaml:"default"`
}

// Items lists registered settings in registration order.
func (r *Registry) Items() []Item {
	items := make([]Item, 0, len(r.order))
	for _, id := range r.order {
		e := r.entries[id]
		items = append(items, Item{
			ID:      id,
			Name:    id.String(),
			Key:     e.Key(),
			Kind:    e.Kind(),
			Current: e.CurrentAny(),
			Default: e.DefaultAny(),
		})
	}
	return items
}

// Export writes the current value of every registered setting as a YAML
// mapping of preference key to value, in registration order.
func (r *Registry) Export(w io.Writer) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, item := range r.Items() {
		var val yaml.Node
		if err := val.Encode(item.Current); err != nil {
			return fmt.Errorf("export %s: %w", item.Key, err)
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: item.Key},
			&val,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export settings: %w", err)
	}
	return enc.Close()
}

// Import reads a YAML mapping of preference key (or setting name) to value
// and sets each listed setting. Keys not listed are left alone. Every entry
// is validated before any value is written.
func (r *Registry) Import(ctx context.Context, rd io.Reader) error {
	var doc yaml.Node
	if err := yaml.NewDecoder(rd).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("import settings: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return &Error{Code: ErrCodeInvalidValue, Message: fmt.Sprintf("import: expected a mapping at line %d", root.Line)}
	}

	type update struct {
		id    ID
		value any
	}
	var updates []update
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]

		id, ok := ParseID(keyNode.Value)
		if !ok {
			return &Error{Code: ErrCodeUnknownKey, Message: fmt.Sprintf("import: unknown setting %q at line %d", keyNode.Value, keyNode.Line)}
		}
		e, err := r.Entry(ctx, id)
		if err != nil {
			return err
		}
		v, err := decodeKind(valNode, e.Kind())
		if err != nil {
			return &Error{Code: ErrCodeInvalidValue, ID: id, Message: fmt.Sprintf("import: %s at line %d", keyNode.Value, valNode.Line), Err: err}
		}
		updates = append(updates, update{id: id, value: v})
	}

	for _, u := range updates {
		if err := r.entries[u.id].SetAny(ctx, u.value); err != nil {
			return fmt.Errorf("import: %w", err)
		}
	}
	return nil
}

// ParseValue converts text to the Go value a setting of the given kind holds.
func ParseValue(kind prefs.Kind, text string) (any, error) {
	v, err := prefs.Decode(kind, text)
	if err != nil {
		return nil, err
	}
	return v.Any(), nil
}

func decodeKind(n *yaml.Node, kind prefs.Kind) (any, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("%w: expected a scalar", prefs.ErrKindMismatch)
	}
	switch kind {
	case prefs.KindBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("%w: %v", prefs.ErrKindMismatch, err)
		}
		return b, nil
	case prefs.KindInt:
		var i int
		if err := n.Decode(&i); err != nil {
			return nil, fmt.Errorf("%w: %v", prefs.ErrKindMismatch, err)
		}
		return i, nil
	case prefs.KindFloat:
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: %v", prefs.ErrKindMismatch, err)
		}
		return f, nil
	default:
		if n.Tag != "!!str" {
			return nil, fmt.Errorf("%w: expected a string, got %s", prefs.ErrKindMismatch, n.Tag)
		}
		return n.Value, nil
	}
}
