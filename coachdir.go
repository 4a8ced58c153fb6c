// Package coachdir scrapes profile pages from a coaching directory into a
// flat table. It fetches each profile URL listed in a spreadsheet, extracts
// the person's fields with a cascade of fallback heuristics, and writes one
// row per profile together with a per-field completion summary.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, xlsx/).
package coachdir
