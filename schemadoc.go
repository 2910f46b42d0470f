// Package schemadoc extracts table and column definitions from a fixed set
// of HTML schema documentation pages reachable through an index page. Pages
// are fetched one at a time, their tables classified and normalized into
// column records, and results persisted per partition with checkpoints so a
// long run can be interrupted and resumed.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/, fs/).
package schemadoc
