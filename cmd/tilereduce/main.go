// Command tilereduce reduces DNA tile systems by merging tiles or glue ends
// while preserving assembly properties.
//
//	tilereduce ends  system.yaml -o reduced.yaml --preserve s1,s22,ld
//	tilereduce tiles system.yaml --tries 50 --threads 8
//	tilereduce apply system.yaml merges.yaml -o reduced.yaml
//	tilereduce check system.yaml
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
