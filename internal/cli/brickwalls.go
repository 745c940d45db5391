package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pedigraph/pedigraph/pkg/lineage"
	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

// brickwallsCommand creates the brick-wall research report command.
func (c *CLI) brickwallsCommand() *cobra.Command {
	var (
		fromID   string
		fromName string
		maxGen   int
		lines    bool
		limit    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "brickwalls <file.ged>",
		Short: "Find line-terminal ancestors and rank them by research priority",
		Long: `Lists brick walls: ancestors beyond whom no parents are known. Each is
scored into a research-priority bucket from 1 (research first) to 5, based
on how close the generation is, how many descendants hang off the line,
and how sparse the person's recorded data is. Without --from or --name
every parentless person in the file is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.loadTree(args[0])
			if err != nil {
				return err
			}

			rootID := ""
			if fromID != "" || fromName != "" {
				root, err := resolvePerson(store, fromID, fromName)
				if err != nil {
					return err
				}
				if root == nil {
					return nil
				}
				rootID = root.ID
			}

			if maxGen == 0 {
				maxGen = c.Config.MaxGenerations
			}

			report, err := lineage.FindLineTerminals(store, rootID, maxGen, c.Config.Priority.Thresholds())
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(report)
			}
			printBrickWalls(report, limit)

			if lines && rootID != "" {
				traces, err := lineage.TraceDirectLines(store, rootID, maxGen)
				if err != nil {
					return err
				}
				printDirectLines(traces)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromID, "from", "", "restrict to ancestors of this person ID")
	cmd.Flags().StringVarP(&fromName, "name", "n", "", "restrict to ancestors of this person by name")
	cmd.Flags().IntVarP(&maxGen, "max-gen", "g", 0, "generations to search (default from config)")
	cmd.Flags().BoolVar(&lines, "lines", false, "also trace the principal direct lines to their ends")
	cmd.Flags().IntVar(&limit, "limit", 25, "show at most this many terminals (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a report")

	return cmd
}

// printBrickWalls renders the terminal report.
func printBrickWalls(report *lineage.TerminalReport, limit int) {
	printTitle("Brick Walls")
	printKeyValue("Persons in file", fmt.Sprintf("%d", report.TotalPersons))
	printKeyValue("With parents", fmt.Sprintf("%d", report.WithParents))
	printKeyValue("Without parents", fmt.Sprintf("%d", report.WithoutParents))
	printKeyValue("Terminals", fmt.Sprintf("%d", len(report.Terminals)))
	if report.CycleDetected {
		printNewline()
		printWarning("Cycle detected in parent links: affected branches were truncated")
	}
	printNewline()

	shown := 0
	for _, t := range report.Terminals {
		if limit > 0 && shown >= limit {
			printDetail("... and %d more (raise --limit to see them)", len(report.Terminals)-shown)
			break
		}
		shown++

		printInfo("%s %s (%s)", priorityBadge(t.Priority), StyleHighlight.Render(t.Person.Name), t.Person.ID)
		if t.Line != "" {
			printDetail("generation %d, %s", t.Generation, t.Line)
		}
		printDetail("%d descendant(s), %s data, %s", t.Descendants, qualityLabel(t.Quality), lifeSpan(t.Person))
	}
}

// printDirectLines renders the direct-line traces.
func printDirectLines(traces []lineage.LineTrace) {
	printTitle("Direct Lines")
	for _, trace := range traces {
		printInfo("%s", StyleHighlight.Render(trace.Name))
		if trace.Terminal == nil {
			printDetail("line ends immediately: no parent on record")
			continue
		}
		year := "unknown year"
		if trace.EarliestYear != 0 {
			year = fmt.Sprintf("b. %d", trace.EarliestYear)
		}
		printDetail("%d generation(s) to %s (%s), %s", trace.Depth, trace.Terminal.Name, trace.Terminal.ID, year)
	}
}

// priorityBadge renders the 1..5 priority bucket with a matching color.
func priorityBadge(priority int) string {
	badge := fmt.Sprintf("[P%d]", priority)
	switch {
	case priority <= 1:
		return styleHigh.Render(badge)
	case priority <= 3:
		return styleMedium.Render(badge)
	}
	return styleLow.Render(badge)
}

// qualityLabel maps a data-quality bucket to its report word.
func qualityLabel(q pedigree.DataQuality) string {
	switch q {
	case pedigree.QualityGood:
		return "good"
	case pedigree.QualityPartial:
		return "partial"
	}
	return "minimal"
}
