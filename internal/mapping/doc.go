// Package mapping builds the Kafka JSON type-mapping table.
//
// Candidates (label + fully-qualified type name) come from a Source: the
// build-time package scanner or the runtime label registry. Build drops
// candidates matched by the exclude filter, rejects missing or invalid
// labels, groups the rest by label and requires exactly one type per label.
// The resulting Table flattens to the client's wire format:
//
//	order:kafkatype/examples/model.Order,user:kafkatype/examples/model.User
//
// Entries are ordered by label, so building twice from the same candidates
// yields byte-identical strings.
package mapping
