package config

import (
	_ "embed"
)

//go:embed default.yaml
var defaultManifest []byte

// Default returns the built-in manifest used when no file is given.
func Default() *Manifest {
	m, err := Parse(defaultManifest)
	if err != nil {
		// The embedded manifest is validated by tests; reaching this
		// means a broken build.
		panic("embedded default manifest invalid: " + err.Error())
	}
	return m
}
