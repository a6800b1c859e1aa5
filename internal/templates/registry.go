// Package templates loads the shop's pricing templates from a JSON file and
// serves them read-only to the quote service and HTTP handlers.
package templates

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Simplici0/printshop/internal/dtf"
	"github.com/Simplici0/printshop/internal/pricing"
)

var (
	ErrTemplateNotFound  = errors.New("template not found")
	ErrDuplicateTemplate = errors.New("duplicate template id")
)

// Kind tells screen-print and DTF templates apart in listings.
type Kind string

const (
	KindScreenPrint Kind = "screen-print"
	KindDTF         Kind = "dtf"
)

// Summary is the listing view of a template.
type Summary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      Kind   `json:"kind"`
	IsDefault bool   `json:"isDefault"`
}

type file struct {
	ScreenPrint []pricing.Template `json:"screenPrint"`
	DTF         []dtf.Template     `json:"dtf"`
}

// Registry holds validated templates. It is immutable after Load, so it is
// safe for concurrent readers.
type Registry struct {
	screenPrint map[string]pricing.Template
	dtf         map[string]dtf.Template
	summaries   []Summary
}

// Load reads and validates a templates file.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open templates file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes templates from r. Every template is validated; all problems
// are reported together.
func Parse(r io.Reader) (*Registry, error) {
	var in file
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}

	reg := &Registry{
		screenPrint: make(map[string]pricing.Template, len(in.ScreenPrint)),
		dtf:         make(map[string]dtf.Template, len(in.DTF)),
	}

	var errs []error
	for _, t := range in.ScreenPrint {
		if err := t.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, ok := reg.screenPrint[t.ID]; ok {
			errs = append(errs, fmt.Errorf("screen-print %q: %w", t.ID, ErrDuplicateTemplate))
			continue
		}
		reg.screenPrint[t.ID] = t
		reg.summaries = append(reg.summaries, Summary{ID: t.ID, Name: t.Name, Kind: KindScreenPrint, IsDefault: t.IsDefault})
	}
	for _, t := range in.DTF {
		if err := t.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, ok := reg.dtf[t.ID]; ok {
			errs = append(errs, fmt.Errorf("dtf %q: %w", t.ID, ErrDuplicateTemplate))
			continue
		}
		reg.dtf[t.ID] = t
		reg.summaries = append(reg.summaries, Summary{ID: t.ID, Name: t.Name, Kind: KindDTF, IsDefault: t.IsDefault})
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	sort.SliceStable(reg.summaries, func(i, j int) bool {
		if reg.summaries[i].Kind != reg.summaries[j].Kind {
			return reg.summaries[i].Kind > reg.summaries[j].Kind
		}
		return reg.summaries[i].ID < reg.summaries[j].ID
	})
	return reg, nil
}

// ScreenPrint returns a screen-print template by id.
func (r *Registry) ScreenPrint(id string) (pricing.Template, error) {
	t, ok := r.screenPrint[id]
	if !ok {
		return pricing.Template{}, fmt.Errorf("screen-print %q: %w", id, ErrTemplateNotFound)
	}
	return t, nil
}

// DTF returns a DTF template by id.
func (r *Registry) DTF(id string) (dtf.Template, error) {
	t, ok := r.dtf[id]
	if !ok {
		return dtf.Template{}, fmt.Errorf("dtf %q: %w", id, ErrTemplateNotFound)
	}
	return t, nil
}

// List returns screen-print templates then DTF templates, each by id.
func (r *Registry) List() []Summary {
	out := make([]Summary, len(r.summaries))
	copy(out, r.summaries)
	return out
}

// Counts returns the number of screen-print and DTF templates.
func (r *Registry) Counts() (screenPrint, dtfCount int) {
	return len(r.screenPrint), len(r.dtf)
}
