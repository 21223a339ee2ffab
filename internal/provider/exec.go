package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/oakwood-commons/h5x/pkg/logger"
)

// DefaultCommand is the provider invoked when none is configured.
var DefaultCommand = []string{"h5parse.py"}

// ExecClient runs the provider as a child process, one invocation per
// query:
//
//	<command...> <container> --get-fields <path>
//
// The reply is a single JSON document on stdout. A non-zero exit is an
// *ExecutionError carrying the process's combined output; a reply that
// does not decode as the expected structure is a *ProtocolError.
type ExecClient struct {
	// Container is the path of the container file, passed to every
	// invocation.
	Container string
	// Command is the argv prefix of the provider. Defaults to
	// DefaultCommand when empty.
	Command []string
}

// NewExecClient returns a client for one container. command may be nil.
func NewExecClient(container string, command []string) *ExecClient {
	return &ExecClient{Container: container, Command: command}
}

func (c *ExecClient) run(ctx context.Context, query, arg string) ([]byte, error) {
	argv := c.Command
	if len(argv) == 0 {
		argv = DefaultCommand
	}
	args := make([]string, 0, len(argv)+2)
	args = append(args, argv[1:]...)
	args = append(args, c.Container, query, arg)

	logger.FromContext(ctx).V(1).Info("provider query",
		"command", argv[0], "query", query, "arg", arg)

	cmd := exec.CommandContext(ctx, argv[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		raw := bytes.TrimSpace(append(stdout.Bytes(), stderr.Bytes()...))
		return nil, &ExecutionError{Output: string(raw), Err: err}
	}
	return stdout.Bytes(), nil
}

// fieldReply is the per-child object inside a --get-fields reply.
type fieldReply struct {
	Type  string `json:"type"`
	Dtype string `json:"dtype"`
	Shape string `json:"shape"`
	Range string `json:"range"`
}

func (c *ExecClient) ListChildren(ctx context.Context, path string) ([]Field, error) {
	out, err := c.run(ctx, "--get-fields", path)
	if err != nil {
		return nil, err
	}
	members, err := decodeOrderedObject(out)
	if err != nil {
		return nil, &ProtocolError{Query: "--get-fields", Err: err}
	}
	fields := make([]Field, 0, len(members))
	for _, m := range members {
		var fr fieldReply
		if err := json.Unmarshal(m.value, &fr); err != nil {
			return nil, &ProtocolError{Query: "--get-fields", Err: err}
		}
		f := Field{Name: m.key, Kind: kindOf(fr.Type), Range: fr.Range}
		if f.Kind == FieldDataset {
			f.Dtype = fr.Dtype
			shape, err := ParseShape(fr.Shape)
			if err != nil {
				return nil, &ProtocolError{Query: "--get-fields", Err: err}
			}
			f.Shape = shape
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func (c *ExecClient) ListAttributes(ctx context.Context, path string) ([]Attribute, error) {
	out, err := c.run(ctx, "--get-attrs", path)
	if err != nil {
		return nil, err
	}
	members, err := decodeOrderedObject(out)
	if err != nil {
		return nil, &ProtocolError{Query: "--get-attrs", Err: err}
	}
	attrs := make([]Attribute, 0, len(members))
	for _, m := range members {
		var v string
		if err := json.Unmarshal(m.value, &v); err != nil {
			return nil, &ProtocolError{Query: "--get-attrs", Err: err}
		}
		attrs = append(attrs, Attribute{Name: m.key, Value: v})
	}
	return attrs, nil
}

func (c *ExecClient) IsField(ctx context.Context, path string) (bool, error) {
	return c.boolQuery(ctx, "--is-field", path)
}

func (c *ExecClient) IsGroup(ctx context.Context, path string) (bool, error) {
	return c.boolQuery(ctx, "--is-group", path)
}

func (c *ExecClient) boolQuery(ctx context.Context, query, path string) (bool, error) {
	out, err := c.run(ctx, query, path)
	if err != nil {
		return false, err
	}
	var reply struct {
		Return *bool `json:"return"`
	}
	if err := json.Unmarshal(out, &reply); err != nil {
		return false, &ProtocolError{Query: query, Err: err}
	}
	if reply.Return == nil {
		return false, &ProtocolError{Query: query, Err: fmt.Errorf("missing \"return\" key")}
	}
	return *reply.Return, nil
}

func (c *ExecClient) ReadLeaf(ctx context.Context, path string, full bool) (Leaf, error) {
	query := "--preview-field"
	if full {
		query = "--read-dataset"
	}
	out, err := c.run(ctx, query, path)
	if err != nil {
		return Leaf{}, err
	}
	var reply struct {
		Dtype string  `json:"dtype"`
		Shape string  `json:"shape"`
		Data  *string `json:"data"`
	}
	if err := json.Unmarshal(out, &reply); err != nil {
		return Leaf{}, &ProtocolError{Query: query, Err: err}
	}
	if reply.Data == nil {
		return Leaf{}, &ProtocolError{Query: query, Err: fmt.Errorf("missing \"data\" key")}
	}
	return Leaf{Dtype: reply.Dtype, Shape: reply.Shape, Data: *reply.Data}, nil
}

func kindOf(t string) FieldKind {
	switch t {
	case "group":
		return FieldGroup
	case "dataset":
		return FieldDataset
	default:
		return FieldOther
	}
}

// member is one key/value pair of a JSON object, in reply order.
type member struct {
	key   string
	value json.RawMessage
}

// decodeOrderedObject decodes a top-level JSON object while preserving the
// order its keys appear on the wire. encoding/json maps would randomize
// it, and the display contract is "provider reply order".
func decodeOrderedObject(data []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	var members []member
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		members = append(members, member{key: key, value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return members, nil
}
