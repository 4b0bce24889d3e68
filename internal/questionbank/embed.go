package questionbank

import _ "embed"

// defaultCatalog is the question set bundled with the binary, used when
// no catalog location is configured.
//
//go:embed catalog.json
var defaultCatalog []byte

// DefaultSource returns the embedded catalog.
func DefaultSource() Source {
	return BytesSource(defaultCatalog)
}
