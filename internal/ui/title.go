package ui

import "fmt"

// ViewTitle names a browsing session after its container: "hdf5: <base>",
// disambiguated with a numeric suffix when the plain title is already in
// use by another open session.
func ViewTitle(base string, taken map[string]bool) string {
	title := "hdf5: " + base
	if !taken[title] {
		return title
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s<%d>", title, i)
		if !taken[candidate] {
			return candidate
		}
	}
}
