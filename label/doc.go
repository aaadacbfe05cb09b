// Package label declares which Go types travel over Kafka as JSON and under
// which label.
//
// A type is marked with a directive in its doc comment:
//
//	//kafka:type order
//	type Order struct { ... }
//
// or registered explicitly at startup:
//
//	label.MustRegister("order", (*Order)(nil))
//
// The directive is read at build time by kafkatype-generator, which can emit
// the equivalent MustRegister calls. Registrations are validated when the
// type-mapping table is built: every label must be present and unique.
package label
