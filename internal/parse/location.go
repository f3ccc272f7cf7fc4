// Package parse holds the pure text transforms that decompose free-text
// input into the structured sub-fields the portal form expects.
package parse

import (
	"regexp"
	"strings"
)

// Fallback values used when a location cannot be decomposed at all. These
// exact strings are what the portal has historically accepted, so they must
// not change.
const (
	FallbackDistrict  = "西屯區"
	FallbackStreet    = "大隆路"
	FallbackRemainder = "192號"
)

// Defaults substituted for individual missing tokens.
const (
	DefaultDistrict  = "西屯區"
	DefaultStreet    = "其他路段"
	DefaultRemainder = "附近"
)

var (
	cityRe     = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]{2,3}市`)
	districtRe = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]{1,3}區`)
	streetRe   = regexp.MustCompile(`[\x{4e00}-\x{9fa5}A-Za-z0-9\-]+?(?:路|街|道|大道|巷|段)`)
)

// Location splits a free-text violation location into the (district, street,
// remainder) triple the portal form wants.
//
// The decomposition is a lossy, order-dependent heuristic, not an address
// grammar: a leading 2-3 character city token is stripped first, then the
// first district token (text ending in 區) is taken, then the first
// street-like token (text ending in a road/street/lane/section suffix) is
// searched in what remains. Missing tokens fall back to DefaultDistrict,
// DefaultStreet and DefaultRemainder; input that is blank yields the fixed
// fallback triple unchanged.
func Location(location string) (district, street, remainder string) {
	loc := strings.TrimSpace(location)
	if loc == "" {
		return FallbackDistrict, FallbackStreet, FallbackRemainder
	}

	loc = strings.TrimSpace(cityRe.ReplaceAllString(loc, ""))

	district = DefaultDistrict
	if m := districtRe.FindString(loc); m != "" {
		district = m
		loc = strings.TrimSpace(strings.Replace(loc, m, "", 1))
	}

	street = DefaultStreet
	if m := streetRe.FindString(loc); m != "" {
		street = m
		loc = strings.TrimSpace(strings.Replace(loc, m, "", 1))
	}

	remainder = loc
	if remainder == "" {
		remainder = DefaultRemainder
	}
	return district, street, remainder
}
