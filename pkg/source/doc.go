// Package source loads organization trees for the chart.
//
// A [Source] returns one organization together with all of its
// descendants, flattened into an [org.Tree]. Children are derived later
// from parent references, so sources only need to return the records.
//
// # Implementations
//
//   - [File]: a JSON or YAML tree file (see pkg/graph for the formats)
//   - anet.Client: the ANET GraphQL API
//   - mongo.Store: a MongoDB collection of organization documents
//   - postgres.Store: the ANET relational schema
//
// Every implementation validates the requested UUID with [ValidateOrgUUID]
// before doing any I/O, and reports a missing organization with
// errors.ErrCodeOrgNotFound.
package source
