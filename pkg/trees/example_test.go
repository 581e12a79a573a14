package trees_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/chromatic/pkg/trees"
)

func ExampleRooted() {
	for l := range trees.Rooted(4) {
		fmt.Println(l)
	}
	// Output:
	// [0 1 2 3]
	// [0 1 2 2]
	// [0 1 2 1]
	// [0 1 1 1]
}

func ExampleCheck() {
	r, err := trees.Check(context.Background(), 8)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("%d trees, %d pairs compared, holds: %v\n", r.Trees, r.Pairs, r.Holds())
	// Output: 23 trees, 23 pairs compared, holds: true
}
