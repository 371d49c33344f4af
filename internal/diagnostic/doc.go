// Package diagnostic provides structured warnings, errors, and informational
// notes collected while importing or exporting a data contract.
//
// Key capabilities:
//   - Field-level oddities recorded as data instead of being thrown
//   - Locators ("schema[0].properties[2]") pointing back into the document
//   - "Did you mean" suggestions for unknown keys
//   - Replaced identifiers and dropped relationships reported alongside results
package diagnostic
