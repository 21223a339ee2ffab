package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseShape(t *testing.T) {
	cases := []struct {
		in      string
		want    Shape
		wantErr bool
	}{
		{"(10,)", Shape{10}, false},
		{"(3, 4)", Shape{3, 4}, false},
		{"(2,3,4)", Shape{2, 3, 4}, false},
		{"()", nil, false},
		{"scalar", nil, false},
		{"", nil, false},
		{"(0,)", nil, true},
		{"(-1,)", nil, true},
		{"(a,)", nil, true},
		{"10", nil, true},
	}
	for _, tc := range cases {
		got, err := ParseShape(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		assert.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "scalar", Shape(nil).String())
	assert.Equal(t, "(10,)", Shape{10}.String())
	assert.Equal(t, "(3, 4)", Shape{3, 4}.String())
}
