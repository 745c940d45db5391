package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pedigraph/pedigraph/pkg/lineage"
)

// coiCommand creates the coefficient-of-inbreeding command.
func (c *CLI) coiCommand() *cobra.Command {
	var (
		personID string
		name     string
		maxGen   int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "coi <file.ged>",
		Short: "Compute Wright's coefficient of inbreeding for a person",
		Long: `Computes the probability that the person's two alleles at a random locus
are identical by descent, by finding every ancestor shared between the
father's and mother's lines and summing 0.5^(n1+n2+1) over the independent
path pairs.`,
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

			prog := newProgress(c.Logger)
			result, err := lineage.Consanguinity(store, person.ID, maxGen)
			if err != nil {
				return err
			}
			prog.done("Analyzed %d generations", maxGen)

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(result)
			}
			printConsanguinity(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&personID, "person", "p", "", "person ID, e.g. @I42@")
	cmd.Flags().StringVarP(&name, "name", "n", "", "person name query (interactive when ambiguous)")
	cmd.Flags().IntVarP(&maxGen, "max-gen", "g", 0, "generations to search (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a report")

	return cmd
}

// printConsanguinity renders a single-person consanguinity report.
func printConsanguinity(r *lineage.ConsanguinityResult) {
	printTitle("Coefficient of Inbreeding")
	printKeyValue("Person", fmt.Sprintf("%s (%s)", r.Person.Name, r.Person.ID))

	switch r.Outcome {
	case lineage.OutcomeInsufficientData:
		printNewline()
		printWarning("One or both parents unknown: the coefficient cannot be computed")
		return
	case lineage.OutcomeNoCommonAncestor:
		printKeyValue("Coefficient", "0")
		printKeyValue("Searched", fmt.Sprintf("%d generations", r.MaxGen))
		printNewline()
		printSuccess("No common ancestor found: parents are unrelated within the searched range")
		return
	}

	level := "low"
	switch {
	case r.COI >= 0.0625:
		level = "high"
	case r.COI >= 0.01:
		level = "medium"
	}
	printKeyValue("Coefficient", riskStyle(level).Render(fmt.Sprintf("%.6f (%.3f%%)", r.COI, r.Percent())))
	printKeyValue("Relationship", r.Classification)
	printKeyValue("Searched", fmt.Sprintf("%d generations", r.MaxGen))
	if r.CycleDetected {
		printNewline()
		printWarning("Cycle detected in parent links: affected branches were truncated")
	}

	printTitle("Common Ancestors")
	for _, contrib := range r.CommonAncestors {
		printInfo("%s (%s)", StyleHighlight.Render(contrib.Ancestor.Name), contrib.Ancestor.ID)
		printDetail("contribution %.6f over %d path pair(s)", contrib.Value, len(contrib.Pairs))
		for _, pair := range contrib.Pairs {
			printDetail("  father %s %s %d gen, mother %s %s %d gen",
				pair.FatherPath, iconArrow, pair.FatherGen,
				pair.MotherPath, iconArrow, pair.MotherGen)
		}
	}
}
