package symfunc_test

import (
	"fmt"

	"github.com/matzehuels/chromatic/pkg/partition"
	"github.com/matzehuels/chromatic/pkg/symfunc"
)

func Example() {
	// The chromatic symmetric function of a triangle.
	f := symfunc.New(symfunc.Power)
	f.AddInt(partition.New(1, 1, 1), 1)
	f.AddInt(partition.New(2, 1), -3)
	f.AddInt(partition.New(3), 2)

	fmt.Println(f)
	fmt.Println(f.In(symfunc.Elementary))
	fmt.Println(f.In(symfunc.Monomial))
	// Output:
	// p[1, 1, 1] - 3*p[2, 1] + 2*p[3]
	// 6*e[3]
	// 6*m[1, 1, 1]
}

func ExampleConvert() {
	f := symfunc.New(symfunc.Power)
	f.AddInt(partition.New(1, 1), 1)
	f.AddInt(partition.New(2), -1)

	fmt.Println(symfunc.Convert(f, "homogeneous"))
	fmt.Println(symfunc.Convert(f, "xyz"))
	// Output:
	// 2*h[1, 1] - 2*h[2]
	// p[1, 1] - p[2]
}

func ExampleParseBasis() {
	fmt.Println(symfunc.ParseBasis("schur"), symfunc.ParseBasis("S"))
	// Output: schur unknown
}
