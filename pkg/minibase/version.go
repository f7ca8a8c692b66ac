// Package minibase carries public metadata about the minibase module.
package minibase

// Version is the semantic version of the minibase module.
const Version = "0.1.0"
