// Package render draws ancestor trees as Graphviz node-link diagrams.
//
// An enumeration from pkg/lineage is converted to DOT with one node per
// distinct person and one edge per parent link; pedigree collapse shows up
// naturally as converging edges. The DOT text can be rendered to SVG or PNG
// through the bundled Graphviz engine.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pedigraph/pedigraph/pkg/lineage"
	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

// Options configures ancestor-tree rendering.
type Options struct {
	// Detailed includes years, places, and generation numbers in node
	// labels. When false, only the person's name is shown.
	Detailed bool

	// Terminals outlines brick-wall ancestors (no known parents) in red.
	Terminals bool
}

// ToDOT converts an ancestor enumeration to Graphviz DOT. Edges point from
// child to parent, so the subject sits at the top and the oldest known
// generation at the bottom.
func ToDOT(store *pedigree.Store, enum *lineage.Enumeration, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph pedigree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("\n")

	// The same person may have several records (pedigree collapse); emit
	// each node and edge once.
	seenNode := map[string]bool{enum.Root.ID: true}
	fmt.Fprintf(&buf, "  %q [%s];\n", enum.Root.ID, strings.Join(nodeAttrs(store, enum.Root, 0, opts), ", "))

	seenEdge := map[[2]string]bool{}
	for _, rec := range enum.Records {
		if !seenNode[rec.Person.ID] {
			seenNode[rec.Person.ID] = true
			fmt.Fprintf(&buf, "  %q [%s];\n", rec.Person.ID, strings.Join(nodeAttrs(store, rec.Person, rec.Generation, opts), ", "))
		}
		child := enum.Root.ID
		if len(rec.Trail) > 1 {
			child = rec.Trail[len(rec.Trail)-2]
		}
		edge := [2]string{child, rec.Person.ID}
		if !seenEdge[edge] {
			seenEdge[edge] = true
			fmt.Fprintf(&buf, "  %q -> %q;\n", edge[0], edge[1])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(store *pedigree.Store, p *pedigree.Person, gen int, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(p, gen, opts.Detailed))}
	if opts.Terminals && gen > 0 {
		if father, mother := store.Parents(p.ID); father == nil && mother == nil {
			attrs = append(attrs, "color=red", "penwidth=2")
		}
	}
	return attrs
}

func nodeLabel(p *pedigree.Person, gen int, detailed bool) string {
	name := p.Name
	if name == "" {
		name = p.ID
	}
	if !detailed {
		return name
	}
	parts := []string{name}
	if y := p.Birth.YearOrZero(); y != 0 {
		span := fmt.Sprintf("b. %d", y)
		if d := p.Death.YearOrZero(); d != 0 {
			span = fmt.Sprintf("%d-%d", y, d)
		}
		parts = append(parts, span)
	}
	if p.BirthPlace != "" {
		parts = append(parts, p.BirthPlace)
	}
	if gen > 0 {
		parts = append(parts, fmt.Sprintf("gen %d", gen))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders DOT text to SVG using the embedded Graphviz engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG renders DOT text to PNG using the embedded Graphviz engine.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
