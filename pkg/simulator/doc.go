// Package simulator implements the credit and mortgage simulators of the
// solution pages: Price (fixed instalment) and SAC (constant amortisation)
// schedules plus Brazilian currency formatting.
package simulator
