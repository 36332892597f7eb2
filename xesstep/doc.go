// Package xesstep is the configuration record of the XES export step.
//
// Meta holds the step's nine optional string parameters plus the legacy
// output field name, and knows how to:
//
//   - serialize itself as an XML fragment and load back from one (XML,
//     LoadXML)
//   - persist itself as flat attributes of a repository.Repository
//     (SaveRep, ReadRep)
//   - append its output column to a row schema (GetFields)
//   - report whether the step is wired to upstream steps (Check, Validate)
//
// Parameter values are opaque strings. Nothing here checks that paths
// exist or that regular expressions compile; that happens when the step
// runs.
//
// A Meta is not safe for concurrent use.
package xesstep
