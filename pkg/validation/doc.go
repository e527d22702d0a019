// Package validation defines the contact form field kinds and the rule
// table applied to them. Rules are ordered checks where the first failure
// wins; format checks run before checksum checks so malformed identifiers
// never reach the check-digit algorithms.
//
// The table is built once with NewSchema and passed to the form state
// manager; tests build custom schemas with WithRule/WithoutRule.
package validation
