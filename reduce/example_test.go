package reduce_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/katalvlaran/tilereduce/reduce"
	"github.com/katalvlaran/tilereduce/tileset"
)

// ExampleReduceEnds loads a two-tile system and merges its ends while
// preserving determinism only.
func ExampleReduceEnds() {
	const src = `
ends:
  - {name: a, type: TD}
  - {name: b, type: TD}
tiles:
  - {name: T1, type: single, ends: [a, b, a/, b/]}
  - {name: T2, type: single, ends: [b, a, b/, a/]}
`
	ts, err := tileset.Load(strings.NewReader(src))
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := reduce.ReduceEnds(context.Background(), ts,
		reduce.WithPreserve("s1"), reduce.WithTries(3), reduce.WithSeed(1))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("results:", len(res))
	fmt.Println("glue classes:", res[0].Score)
	fmt.Println("end pairs:", res[0].Map.Pairs())
	// Output:
	// results: 1
	// glue classes: 6
	// end pairs: 3
}
