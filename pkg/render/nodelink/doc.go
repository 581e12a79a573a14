// Package nodelink plots graphs as node-link diagrams using Graphviz.
//
// # Usage
//
// Convert a graph to DOT, then render it:
//
//	dot := nodelink.ToDOT(graph.Kite(), nodelink.Options{Title: "kite"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Or write straight to a file, with the format taken from the extension:
//
//	err := nodelink.Save(ctx, g, "bowtie.png", nodelink.Options{})
//
// # Options
//
//   - Title: caption drawn above the plot
//   - Detailed: vertex labels include the degree
//   - Highlight: vertices drawn with a grey fill
//   - Layout: Graphviz engine, neato by default
//
// # Dependencies
//
// Rendering runs in-process through [github.com/goccy/go-graphviz], which
// embeds Graphviz as WebAssembly; no system Graphviz install is needed.
package nodelink
