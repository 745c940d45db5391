package lineage

import "github.com/pedigraph/pedigraph/pkg/pedigree"

// CountDescendants counts every distinct descendant of the person across
// all unions the person (and their descendants) participate in as a parent.
// A person reachable through multiple unions is counted once. Returns 0 for
// an unknown ID or a person with no recorded children. The traversal is
// cycle-safe: corrupt child links cannot revisit a counted person.
func CountDescendants(store *pedigree.Store, personID string) int {
	visited := map[string]bool{personID: true}
	return countDescendants(store, personID, visited)
}

func countDescendants(store *pedigree.Store, personID string, visited map[string]bool) int {
	count := 0
	for _, child := range store.Children(personID) {
		if visited[child.ID] {
			continue
		}
		visited[child.ID] = true
		count += 1 + countDescendants(store, child.ID, visited)
	}
	return count
}
