package csf_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/chromatic/pkg/csf"
	"github.com/matzehuels/chromatic/pkg/graph"
)

func ExampleCompute() {
	table, err := csf.Compute(context.Background(), graph.Complete(3))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, term := range table.Terms() {
		fmt.Println(term.Partition, term.Coeff)
	}
	// Output:
	// [1, 1, 1] 1
	// [2, 1] -3
	// [3] 2
}

func ExampleCSF() {
	ctx := context.Background()
	bowtie, _ := csf.CSF(ctx, graph.Bowtie(), "elementary")
	kite, _ := csf.CSF(ctx, graph.Kite(), "elementary")

	fmt.Println(bowtie)
	fmt.Println("equal:", bowtie.Equal(kite))
	fmt.Println("isomorphic:", graph.Isomorphic(graph.Bowtie(), graph.Kite()))
	// Output:
	// 4*e[3, 2] + 12*e[4, 1] + 20*e[5]
	// equal: true
	// isomorphic: false
}
