package utils

import "strconv"

// Pluralize returns "<count> <noun>", adding an "s" unless count is exactly 1.
// Only suffix pluralization is supported: Pluralize("Color", 0) == "0 Colors".
func Pluralize(noun string, count int) string {
	s := strconv.Itoa(count) + " " + noun
	if count == 1 {
		return s
	}
	return s + "s"
}
