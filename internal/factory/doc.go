// Package factory assembles Kafka consumer and producer factories whose
// properties carry the generated type mappings.
//
// Assemble builds the type-mapping table once, appends it (and, for the
// consumer, the trusted packages) to copies of the configured client
// properties and constructs both factories. Either both factories are
// returned or none.
package factory
