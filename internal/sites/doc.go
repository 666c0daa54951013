// Package sites loads the source-site presets that drive URL validation and
// metadata lookup.
//
// Presets are YAML documents keyed by name. The builtin set is embedded in the
// binary; an optional user file is merged on top, so a user entry with the same
// name replaces the builtin one. Lookups are case-insensitive and fall back to
// the "generic" preset.
package sites
