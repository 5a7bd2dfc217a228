package util

import (
	"strconv"
)

// MustParseUint parses a route parameter, returning 0 when it is not a
// valid id so handlers can reject it with one check.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}
