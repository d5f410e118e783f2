package catalog

import _ "embed"

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the bundled demo catalog. Used when no catalog path is
// configured, and by tests.
func Demo() (*Catalog, error) {
	return Parse(demoYAML)
}
