// Package filesystem provides filesystem implementations for sectorlink.
//
// This package contains implementations of the types.FS interface.
// The linking engine takes the interface so tests can inject
// fault-producing wrappers around the OS implementation.
package filesystem
