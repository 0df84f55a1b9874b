// Package main provides a small dev utility around the nestfeed library:
// it loads an observation-space schema from YAML, builds the batch-wise slot
// tree, and prints its structure.
package main

import (
	"flag"
	"fmt"
	"os"

	"nestfeed/feed"
	"nestfeed/inspect"
	"nestfeed/schema"
	"nestfeed/tensor"
)

func main() {
	schemaPath := flag.String("schema", "", "path to a YAML observation-space schema")
	baseName := flag.String("name", "nested", "base name for derived placeholder identifiers")
	batchDim := flag.Int("batch", tensor.DimUnbound, "fixed batch dimension, -1 for unbound")
	flag.Parse()

	if *schemaPath == "" {
		fmt.Fprintln(os.Stderr, "usage: nestfeed -schema <file.yaml> [-name base] [-batch n]")
		os.Exit(2)
	}

	s, err := schema.LoadFile(*schemaPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	slots, err := feed.BuildSlots(s, *batchDim, *baseName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	inspect.Show(os.Stdout, slots)
}
