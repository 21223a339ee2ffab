package provider

import (
	"fmt"
	"strconv"
	"strings"
)

// Shape is the ordered dimension list of a dataset. An empty shape is a
// scalar.
type Shape []int

// ParseShape decodes the provider's tuple-string form of a dataset shape:
// "(10,)", "(3, 4)", "()" and the word "scalar" are all valid. The empty
// string is treated as scalar too (older providers omit the field).
func ParseShape(s string) (Shape, error) {
	t := strings.TrimSpace(s)
	if t == "" || t == "scalar" || t == "()" {
		return nil, nil
	}
	if !strings.HasPrefix(t, "(") || !strings.HasSuffix(t, ")") {
		return nil, fmt.Errorf("malformed shape %q", s)
	}
	inner := strings.TrimSpace(t[1 : len(t)-1])
	inner = strings.TrimSuffix(inner, ",")
	if inner == "" {
		return nil, nil
	}
	parts := strings.Split(inner, ",")
	dims := make(Shape, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("malformed shape %q", s)
		}
		dims = append(dims, n)
	}
	return dims, nil
}

// String renders the shape back in tuple form; scalars render as "scalar".
func (s Shape) String() string {
	if len(s) == 0 {
		return "scalar"
	}
	if len(s) == 1 {
		return fmt.Sprintf("(%d,)", s[0])
	}
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
