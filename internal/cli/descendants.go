package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pedigraph/pedigraph/pkg/lineage"
)

// descendantsCommand creates the descendant counting command.
func (c *CLI) descendantsCommand() *cobra.Command {
	var (
		personID string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "descendants <file.ged>",
		Short: "Count all known descendants of a person",
		Args:  cobra.ExactArgs(1),
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

			count := lineage.CountDescendants(store, person.ID)
			children := store.Children(person.ID)

			printTitle("Descendants")
			printKeyValue("Person", fmt.Sprintf("%s (%s)", person.Name, person.ID))
			printKeyValue("Children", fmt.Sprintf("%d", len(children)))
			printKeyValue("Total descendants", StyleHighlight.Render(fmt.Sprintf("%d", count)))
			for _, child := range children {
				printDetail("%s (%s) %s", child.Name, child.ID, lifeSpan(child))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&personID, "person", "p", "", "person ID, e.g. @I42@")
	cmd.Flags().StringVarP(&name, "name", "n", "", "person name query (interactive when ambiguous)")

	return cmd
}
