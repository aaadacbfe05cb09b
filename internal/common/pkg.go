package common

import (
	"strings"
)

// UnknownStr is the fallback name for unrecognised enum values.
const UnknownStr = "unknown"

// SplitTypeName splits "import/path.Name" into its package path and name.
// A name without a package yields an empty package path.
func SplitTypeName(typeName string) (pkgPath, name string) {
	dot := strings.LastIndex(typeName, ".")
	if dot < 0 || dot < strings.LastIndex(typeName, "/") {
		return "", typeName
	}

	return typeName[:dot], typeName[dot+1:]
}
