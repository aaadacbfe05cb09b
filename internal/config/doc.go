// Package config loads the type-mapping and Kafka client configuration and
// merges generated values into client properties.
//
// Values are layered: built-in defaults, then the YAML file, then
// environment variables. The type-mapping feature is enabled only when
// kafka.type-mapping.packages.include lists at least one package.
package config
