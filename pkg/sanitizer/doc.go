// Package sanitizer cleans user-supplied HTML with bluemonday policies.
//
// [SanitizeHTML] is applied to article bodies coming from the dashboard's
// rich-text editor; [StripHTML] reduces titles, excerpts and meta fields to
// plain text.
package sanitizer
