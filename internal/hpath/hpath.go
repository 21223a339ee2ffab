// Package hpath canonicalizes slash-separated container paths.
// The root of a container is the single separator "/"; every other
// canonical path has exactly one leading separator per segment and no
// trailing separator.
package hpath

import "strings"

// Root is the canonical path of the container root.
const Root = "/"

// Join resolves relative against base and returns the canonical form.
// Both inputs are split on "/", empty segments are dropped, and the
// remainder is rejoined with a single leading separator. An empty result
// is the root. Join is pure and idempotent: Join(Join(b, r), "") equals
// Join(b, r).
func Join(base, relative string) string {
	segs := make([]string, 0, 8)
	for _, part := range []string{base, relative} {
		for _, s := range strings.Split(part, "/") {
			if s != "" {
				segs = append(segs, s)
			}
		}
	}
	if len(segs) == 0 {
		return Root
	}
	return "/" + strings.Join(segs, "/")
}

// Clean canonicalizes a single path. Equivalent to Join(path, "").
func Clean(path string) string {
	return Join(path, "")
}

// Dir returns the canonical parent of path. The parent of the root is
// the root itself.
func Dir(path string) string {
	p := Clean(path)
	if p == Root {
		return Root
	}
	i := strings.LastIndexByte(p, '/')
	if i <= 0 {
		return Root
	}
	return p[:i]
}

// Base returns the last segment of path, or "/" for the root.
func Base(path string) string {
	p := Clean(path)
	if p == Root {
		return Root
	}
	return p[strings.LastIndexByte(p, '/')+1:]
}
