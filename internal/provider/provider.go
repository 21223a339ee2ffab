// Package provider talks to the external data-access process that decodes
// HDF5 containers. The process is a black box answering five query kinds;
// this package issues one query per call and decodes the JSON reply. No
// state is kept between calls and no reply is ever cached.
package provider

import "context"

// FieldKind tags what a child of a group is.
type FieldKind string

const (
	FieldGroup   FieldKind = "group"
	FieldDataset FieldKind = "dataset"
	FieldOther   FieldKind = "other"
)

// Field is the provider's answer about one child of a group. Dtype, Shape
// and Range are only meaningful for datasets.
type Field struct {
	Name  string
	Kind  FieldKind
	Dtype string
	Shape Shape
	Range string
}

// Attribute is a named string annotation attached to a field. Values may
// contain embedded newlines.
type Attribute struct {
	Name  string
	Value string
}

// Leaf holds the contents of a dataset (or other leaf), either truncated
// to a preview or complete.
type Leaf struct {
	Dtype string
	Shape string
	Data  string
}

// Client is the query boundary to the provider process. All paths must be
// canonical (see internal/hpath). Implementations report transport
// failures as *ExecutionError and undecodable replies as *ProtocolError;
// both abort the caller's transition and are never retried here.
//
// ListChildren and ListAttributes return entries in the provider's reply
// order; callers must not re-sort (display determinism is the provider's
// contract).
type Client interface {
	ListChildren(ctx context.Context, path string) ([]Field, error)
	ListAttributes(ctx context.Context, path string) ([]Attribute, error)
	IsField(ctx context.Context, path string) (bool, error)
	IsGroup(ctx context.Context, path string) (bool, error)
	ReadLeaf(ctx context.Context, path string, full bool) (Leaf, error)
}
