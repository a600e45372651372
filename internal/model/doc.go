// Package model defines the domain data structures shared across the tool:
// list entries, numbered work items, the requested range, per-item failure
// records and the accumulated run result.
package model
