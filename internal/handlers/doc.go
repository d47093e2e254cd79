// Package handlers declares the HTTP surface of folio: the dashboard JSON API
// under /api and the public, server-rendered blog.
//
// API responses share one envelope:
//
//	{"success": true, "data": {...}}
//	{"success": false, "error": "slug already exists: \"hello-world\"", "code": "slug_conflict"}
//
// ErrorHandler maps domain errors onto status codes: validation failures are
// 422, slug and media conflicts 409, missing records 404, bad credentials and
// missing sessions 401, insufficient roles 403. Public pages render an HTML
// error page instead of JSON.
package handlers
