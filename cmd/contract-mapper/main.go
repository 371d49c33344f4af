// Package main provides the CLI entrypoint for contract-mapper.
//
// contract-mapper converts data contract documents to the entity model
// and back:
//   - normalize: contract text to entity model JSON
//   - export: entity model JSON to contract text
//   - roundtrip: import, export and re-import, reporting drift
//   - inspect: summarize tables, relationships and dependency order
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
