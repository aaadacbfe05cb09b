// Package gen generates registration code for marked types.
//
// Generation approach uses text/template + go/format. One file is written
// into every package that declares marked types; its init function
// registers each type with the label registry:
//
//	func init() {
//		kafkatype.MustRegister("order", (*Order)(nil))
//	}
//
// Because the file lives in the package itself, unexported types can be
// registered too.
package gen
