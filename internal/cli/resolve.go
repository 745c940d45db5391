package cli

import (
	"fmt"

	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

// resolvePerson turns the --person/--name flag pair into a single person.
// An ID wins over a name query. A name matching several people launches the
// interactive picker; the picker returns nil when the user quits, and the
// caller should bail out quietly.
func resolvePerson(store *pedigree.Store, id, name string) (*pedigree.Person, error) {
	if id != "" {
		p := store.Person(id)
		if p == nil {
			return nil, fmt.Errorf("person %q not found", id)
		}
		return p, nil
	}
	if name == "" {
		return nil, fmt.Errorf("either --person or --name is required")
	}

	matches := store.FindByName(name)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no person matches %q", name)
	case 1:
		return matches[0], nil
	}

	printInfo("Found %d matches for %s", len(matches), StyleHighlight.Render(name))
	printNewline()
	return pickPerson(matches)
}
