// Package analyze finds types marked with the kafka:type directive.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to load the
// packages under each include prefix and resolve every marked declaration
// to a package-level type.
//
// Key types:
//   - Scanner: loads packages and reports candidates and diagnostics
//   - TypeID: package import path + type name
package analyze
