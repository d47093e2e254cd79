// Package slug derives URL-safe article identifiers from free-text titles.
//
// A slug is a non-empty run of lowercase ASCII letters and digits, with single
// hyphens between runs:
//
//	^[a-z0-9]+(-[a-z0-9]+)*$
//
// Basic usage:
//
//	import "github.com/dmitrymomot/folio/pkg/slug"
//
//	s := slug.Derive("Hello, World! 2024")
//	// Output: "hello-world-2024"
//
//	slug.Valid(s)       // true
//	slug.Valid("Hello") // false
//
// # Derivation
//
// [Derive] folds common Latin diacritics to ASCII, lower-cases the input,
// drops every character that is not a letter, digit, whitespace, hyphen or
// underscore, and joins the remaining words with single hyphens:
//
//	slug.Derive("Café résumé")      // "cafe-resume"
//	slug.Derive("  Too---Many   ")  // "too-many"
//	slug.Derive("snake_case_title") // "snake-case-title"
//	slug.Derive("Don't stop")       // "dont-stop"
//
// Titles made only of punctuation derive to the empty string. The empty string
// is never a valid slug, so callers must reject it before persisting:
//
//	slug.Derive("!!!")       // ""
//	slug.Derive("   ---   ") // ""
//
// Derive is pure: the same title always yields the same slug, and every valid
// slug derives to itself.
package slug
