package models

import "regexp"

// SeedElectionID is the built-in election served when the registry is absent.
// Only this id receives fabricated fallback data.
const SeedElectionID = "france-pres-2027"

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidIdentifier reports whether s is usable as an election id or country
// code, and therefore as a single path segment under the data root.
func ValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}
