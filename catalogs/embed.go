// Package catalogs holds the catalog files compiled into the binary.
package catalogs

import _ "embed"

//go:embed websites.yaml
var Websites []byte
