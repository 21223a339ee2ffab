// Package providertest holds an in-memory provider.Client for tests.
package providertest

import (
	"context"
	"fmt"

	"github.com/oakwood-commons/h5x/internal/provider"
)

// Fake answers the five provider queries from in-memory tables. A path is
// a group when it has a Children entry (possibly an empty slice) and a
// leaf when it has a Leaves entry. Every call is appended to Calls, and
// FailWith, when set, makes every call fail with it.
type Fake struct {
	Children map[string][]provider.Field
	Attrs    map[string][]provider.Attribute
	Leaves   map[string]provider.Leaf
	FailWith error
	Calls    []string
}

var _ provider.Client = (*Fake)(nil)

func (f *Fake) record(query, path string) error {
	f.Calls = append(f.Calls, fmt.Sprintf("%s %s", query, path))
	return f.FailWith
}

func (f *Fake) ListChildren(_ context.Context, path string) ([]provider.Field, error) {
	if err := f.record("--get-fields", path); err != nil {
		return nil, err
	}
	children, ok := f.Children[path]
	if !ok {
		return nil, &provider.ExecutionError{Output: fmt.Sprintf("'%s' is not a group", path)}
	}
	return children, nil
}

func (f *Fake) ListAttributes(_ context.Context, path string) ([]provider.Attribute, error) {
	if err := f.record("--get-attrs", path); err != nil {
		return nil, err
	}
	return f.Attrs[path], nil
}

func (f *Fake) IsField(_ context.Context, path string) (bool, error) {
	if err := f.record("--is-field", path); err != nil {
		return false, err
	}
	if _, ok := f.Children[path]; ok {
		return true, nil
	}
	_, ok := f.Leaves[path]
	return ok, nil
}

func (f *Fake) IsGroup(_ context.Context, path string) (bool, error) {
	if err := f.record("--is-group", path); err != nil {
		return false, err
	}
	_, ok := f.Children[path]
	return ok, nil
}

func (f *Fake) ReadLeaf(_ context.Context, path string, full bool) (provider.Leaf, error) {
	query := "--preview-field"
	if full {
		query = "--read-dataset"
	}
	if err := f.record(query, path); err != nil {
		return provider.Leaf{}, err
	}
	leaf, ok := f.Leaves[path]
	if !ok {
		return provider.Leaf{}, &provider.ExecutionError{Output: fmt.Sprintf("'%s' is not a dataset", path)}
	}
	if !full {
		// Crude preview truncation, mirroring the provider's behavior of
		// returning an abbreviated rendering.
		const previewLimit = 64
		if len(leaf.Data) > previewLimit {
			leaf.Data = leaf.Data[:previewLimit] + "..."
		}
	}
	return leaf, nil
}

// Sample builds the container used across the test suites: a root with
// group g1 holding dataset dset1.1.1 (int, shape (10,)), a sibling group
// g2, and a root attribute.
func Sample() *Fake {
	return &Fake{
		Children: map[string][]provider.Field{
			"/": {
				{Name: "g1", Kind: provider.FieldGroup},
				{Name: "g2", Kind: provider.FieldGroup},
			},
			"/g1": {
				{Name: "dset1.1.1", Kind: provider.FieldDataset, Dtype: "int", Shape: provider.Shape{10}, Range: "0..9"},
			},
			"/g2": {},
		},
		Attrs: map[string][]provider.Attribute{
			"/": {{Name: "creator", Value: "acquisition rig\nrev 2"}},
		},
		Leaves: map[string]provider.Leaf{
			"/g1/dset1.1.1": {Dtype: "int", Shape: "(10,)", Data: "[0 1 2 3 4 5 6 7 8 9]"},
		},
	}
}
