// Package validate decides whether an ingestion form can be submitted.
//
// All checks are pure: no I/O, no panics, and the first failing rule wins.
// Rules are compiled from Options so the accepted book-URL shape comes from
// the selected source-site preset instead of being hard-coded.
//
// Order of evaluation:
//
//  1. book URL (absolute http/https, then the site pattern)
//  2. chapter pattern, when present or required
//  3. cover image URL, when present
//  4. required free-text fields in declaration order
package validate
