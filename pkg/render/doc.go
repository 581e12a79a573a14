// Package render groups the plotting backends.
//
// The [nodelink] subpackage draws a graph as a classic node-link diagram
// through an embedded Graphviz, producing SVG, PNG or DOT source:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Title: "bowtie"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/chromatic/pkg/render/nodelink
package render
