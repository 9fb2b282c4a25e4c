// Command goshape validates and classifies documents against a registry
// manifest.
//
//	goshape --manifest registry.yaml validate --tag user user.json
//	goshape --manifest registry.yaml classify --strict input.yaml
//	goshape --manifest registry.yaml schema --tag user
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
