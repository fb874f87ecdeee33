// Package harness runs conformance scenarios against the fortune engine.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: anchor_fortnight
//	description: "Two weeks from the anchor day"
//	timezone: UTC
//	days:
//	  - date: 2025-12-20
//	    expect:
//	      code: 癸亥
//	      score: 25
//	      band: flow
//	      status: 破軍祿
//	range:
//	  start: 2025-12-20
//	  days: 14
//	  expect:
//	    min: -19
//	    median: 11.5
//	    top: [丙寅, 癸亥, 丁卯]
//	assertions:
//	  - type: periodic
//	    from: 2025-01-01
//	    days: 120
//
// Expectations are subset matches: only the fields present are checked.
//
// # Assertion Types
//
//   - periodic: every day in the window has the same code and score as the
//     day sixty days later
//   - idempotent: scoring a day twice gives identical fingerprints
//   - monotonic_bands: no score ranks in a better band than a higher score
//   - histogram_coverage: the window's histogram counts every score once
//   - registry_complete: every stem and branch has its table entry
//
// # Determinism
//
// The engine runs without a calendar formatter and with the scenario's
// zone, so results depend only on the scenario file. Results are
// snapshotted with goldie as canonical JSON.
package harness
