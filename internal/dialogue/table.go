package dialogue

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed chirps.yaml
var chirpsYAML []byte

//go:embed schema.cue
var schemaCUE string

// Table is an ordered set of lines with unique ids.
type Table struct {
	lines []Line
	index map[string]int
}

// Default returns a fresh copy of the built-in chirp table with every line unused.
func Default() *Table {
	t, err := Load(chirpsYAML)
	if err != nil {
		panic(fmt.Sprintf("dialogue: built-in chirps are invalid: %v", err))
	}
	return t
}

// DefaultSource returns the YAML the built-in table is loaded from.
func DefaultSource() []byte {
	return bytes.Clone(chirpsYAML)
}

// Load parses a YAML sequence of lines.
//
// Unknown fields are rejected. Ids and text are normalized to NFC, every
// line is checked against the chirp schema, and ids must be unique. All
// problems found are returned together as ValidationErrors.
func Load(data []byte) (*Table, error) {
	lines, positions, err := parse(data)
	if err != nil {
		return nil, err
	}

	var errs ValidationErrors
	if len(lines) == 0 {
		errs = append(errs, ValidationError{Field: "lines", Message: "table has no lines", Code: ErrEmptyTable})
	}

	for i := range lines {
		lines[i].ID = norm.NFC.String(lines[i].ID)
		lines[i].Text = norm.NFC.String(lines[i].Text)
	}
	errs = append(errs, validateSchema(lines, positions)...)

	index := make(map[string]int, len(lines))
	for i, l := range lines {
		if first, dup := index[l.ID]; dup {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("[%d].id", i),
				Message: fmt.Sprintf("duplicate id %q (first used by line %d)", l.ID, positions[first]),
				Code:    ErrDuplicateID,
				Line:    positions[i],
			})
			continue
		}
		index[l.ID] = i
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &Table{lines: lines, index: index}, nil
}

func parse(data []byte) ([]Line, []int, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, ValidationErrors{{Field: "chirps", Message: err.Error(), Code: ErrParse}}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var lines []Line
	if err := dec.Decode(&lines); err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, ValidationErrors{{Field: "chirps", Message: err.Error(), Code: ErrParse}}
	}

	positions := make([]int, len(lines))
	if len(doc.Content) == 1 && doc.Content[0].Kind == yaml.SequenceNode {
		for i, n := range doc.Content[0].Content {
			if i < len(positions) {
				positions[i] = n.Line
			}
		}
	}
	return lines, positions, nil
}

// schemaLine is the persisted part of a Line, as checked by schema.cue.
type schemaLine struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Priority   int    `json:"priority"`
	Repeatable bool   `json:"repeatable"`
}

func validateSchema(lines []Line, positions []int) []ValidationError {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []ValidationError{{Field: "schema", Message: err.Error(), Code: ErrSchema}}
	}
	def := schema.LookupPath(cue.ParsePath("#Line"))

	var errs []ValidationError
	for i, l := range lines {
		v := def.Unify(ctx.Encode(schemaLine{
			ID:         l.ID,
			Text:       l.Text,
			Priority:   l.Priority,
			Repeatable: l.Repeatable,
		}))
		err := v.Validate(cue.Concrete(true))
		if err == nil {
			continue
		}
		for _, e := range cueerrors.Errors(err) {
			field := fmt.Sprintf("[%d]", i)
			if p := e.Path(); len(p) > 0 {
				field += "." + strings.Join(p, ".")
			}
			format, args := e.Msg()
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf(format, args...),
				Code:    ErrSchema,
				Line:    positions[i],
			})
		}
	}
	return errs
}

// Len returns the number of lines.
func (t *Table) Len() int {
	return len(t.lines)
}

// Lookup returns the line with id.
func (t *Table) Lookup(id string) (Line, bool) {
	i, ok := t.index[norm.NFC.String(id)]
	if !ok {
		return Line{}, false
	}
	return t.lines[i], true
}

// MarkUsed sets the Used flag of the line with id.
func (t *Table) MarkUsed(id string) error {
	i, ok := t.index[norm.NFC.String(id)]
	if !ok {
		return ValidationError{Field: "id", Message: fmt.Sprintf("no line with id %q", id), Code: ErrUnknownID}
	}
	t.lines[i].Used = true
	return nil
}

// Lines returns a copy of every line in table order.
func (t *Table) Lines() []Line {
	out := make([]Line, len(t.lines))
	copy(out, t.lines)
	return out
}

// SmallTalk returns the RandomSmallTalk lines in table order.
func (t *Table) SmallTalk() []Line {
	var out []Line
	for _, l := range t.lines {
		if strings.HasPrefix(l.ID, SmallTalkPrefix) {
			out = append(out, l)
		}
	}
	return out
}

// Available returns the lines that may still be said, highest effective
// priority first. Lines of equal priority keep table order.
func (t *Table) Available() []Line {
	var out []Line
	for _, l := range t.lines {
		if l.Available() {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EffectivePriority() > out[j].EffectivePriority()
	})
	return out
}
