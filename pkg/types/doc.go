// Package types defines the core data model for the storeclose system:
// canonical store identifiers, table rows and match results, closure
// outcomes, configuration, and the interfaces to the workbook and the
// relational mirror.
package types
