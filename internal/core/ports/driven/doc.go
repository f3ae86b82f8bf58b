// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Archive: read-only, path-addressed access to an opened archive
//
// # Optional Capabilities
//
// The resolution pipeline discovers these by interface assertion on the
// Archive value and degrades gracefully when they are absent:
//
//   - FulltextSearcher: fulltext index search. Skipped when the archive
//     carries no fulltext index.
//   - TitleSuggester: title prefix suggestions. Skipped when the archive
//     carries no title index.
//   - EntryLister: bounded enumeration for browsing. Browse returns an
//     empty list when absent.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
