package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pedigraph/pedigraph/pkg/lineage"
	"github.com/pedigraph/pedigraph/pkg/render"
)

// renderCommand creates the ancestor-tree rendering command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		personID  string
		name      string
		maxGen    int
		format    string
		output    string
		detailed  bool
		terminals bool
	)

	cmd := &cobra.Command{
		Use:   "render <file.ged>",
		Short: "Render a person's ancestor tree as DOT, SVG, or PNG",
		Long: `Draws the ancestor tree as a Graphviz node-link diagram with the subject
at the top. Pedigree collapse shows up as converging edges. With
--terminals, brick-wall ancestors are outlined in red.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.loadTree(args[0])
			if err != nil {
				return err
			}

			person, err := resolvePerson(store, personID, name)
			if err != nil {
				return err
			}
			if person == nil {
				return nil
			}

			if maxGen == 0 {
				maxGen = c.Config.MaxGenerations
			}

			enum, err := lineage.EnumerateAncestors(store, person.ID, maxGen)
			if err != nil {
				return err
			}
			if enum.CycleDetected {
				printWarning("Cycle detected in parent links: affected branches were truncated")
			}

			dot := render.ToDOT(store, enum, render.Options{Detailed: detailed, Terminals: terminals})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				spinner := newSpinner("Rendering SVG...")
				spinner.Start()
				data, err = render.RenderSVG(cmd.Context(), dot)
				spinner.Stop()
			case "png":
				spinner := newSpinner("Rendering PNG...")
				spinner.Start()
				data, err = render.RenderPNG(cmd.Context(), dot)
				spinner.Stop()
			default:
				return fmt.Errorf("unknown format %q (want dot, svg, or png)", format)
			}
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Wrote %s (%d bytes)", output, len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&personID, "person", "p", "", "person ID, e.g. @I42@")
	cmd.Flags().StringVarP(&name, "name", "n", "", "person name query (interactive when ambiguous)")
	cmd.Flags().IntVarP(&maxGen, "max-gen", "g", 0, "generations to render (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, or png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include years, places, and generations in labels")
	cmd.Flags().BoolVar(&terminals, "terminals", false, "outline brick-wall ancestors in red")

	return cmd
}
