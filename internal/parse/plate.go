package parse

import "strings"

// Plate splits a license plate into its letter and digit groups. Input with
// a hyphen is split once on the first hyphen; input without one is treated
// as all digits.
//
//	Plate("ABC-1234") = ("ABC", "1234")
//	Plate("1234")     = ("", "1234")
func Plate(plate string) (letters, digits string) {
	if before, after, ok := strings.Cut(plate, "-"); ok {
		return before, after
	}
	return "", plate
}
