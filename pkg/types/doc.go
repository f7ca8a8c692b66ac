// Package types defines the document model, the closed operation set, the
// execution result shapes, and the standard errors for the minibase storage
// engine. It contains data contracts only; all behavior lives in the engine,
// store, and schema packages.
package types
