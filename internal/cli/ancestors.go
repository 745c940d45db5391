package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pedigraph/pedigraph/pkg/lineage"
)

// ancestorsCommand creates the ancestor enumeration command.
func (c *CLI) ancestorsCommand() *cobra.Command {
	var (
		personID string
		name     string
		maxGen   int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "ancestors <file.ged>",
		Short: "List every reachable ancestor with generation and lineage path",
		Long: `Walks the parent links upward from a person and lists each ancestor with
its generation distance and the father/mother path that reaches it. An
ancestor reachable along several lines appears once per line; that is
pedigree collapse, not an error.`,
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

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(enum)
			}
			printAncestors(enum)
			return nil
		},
	}

	cmd.Flags().StringVarP(&personID, "person", "p", "", "person ID, e.g. @I42@")
	cmd.Flags().StringVarP(&name, "name", "n", "", "person name query (interactive when ambiguous)")
	cmd.Flags().IntVarP(&maxGen, "max-gen", "g", 0, "generations to search (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a report")

	return cmd
}

// printAncestors renders the enumeration grouped by generation.
func printAncestors(enum *lineage.Enumeration) {
	printTitle(fmt.Sprintf("Ancestors of %s", enum.Root.Name))
	printKeyValue("Subject", fmt.Sprintf("%s (%s)", enum.Root.Name, enum.Root.ID))
	printKeyValue("Searched", fmt.Sprintf("%d generations", enum.MaxGen))
	printKeyValue("Lines found", fmt.Sprintf("%d", len(enum.Records)))
	if enum.CycleDetected {
		printNewline()
		printWarning("Cycle detected in parent links: affected branches were truncated")
	}

	byGen := map[int][]lineage.AncestorRecord{}
	gens := []int{}
	for _, rec := range enum.Records {
		if _, ok := byGen[rec.Generation]; !ok {
			gens = append(gens, rec.Generation)
		}
		byGen[rec.Generation] = append(byGen[rec.Generation], rec)
	}
	sort.Ints(gens)

	collapsed := collapsedAncestors(enum)
	for _, gen := range gens {
		printTitle(fmt.Sprintf("Generation %d", gen))
		for _, rec := range byGen[gen] {
			line := fmt.Sprintf("%s  %s (%s)", StyleDim.Render(rec.Path.String()), rec.Person.Name, rec.Person.ID)
			if collapsed[rec.Person.ID] {
				line += "  " + StyleWarning.Render("[multiple lines]")
			}
			printInfo("%s", line)
			if span := lifeSpan(rec.Person); span != "—" {
				printDetail("%s  %s", span, rec.Person.BirthPlace)
			}
		}
	}
}

// collapsedAncestors flags ancestors reached along more than one line.
func collapsedAncestors(enum *lineage.Enumeration) map[string]bool {
	collapsed := map[string]bool{}
	for id, recs := range enum.ByPerson() {
		if len(recs) > 1 {
			collapsed[id] = true
		}
	}
	return collapsed
}
