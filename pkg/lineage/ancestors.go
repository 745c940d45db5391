package lineage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

var (
	// ErrGenerationsOutOfRange is returned when maxGenerations is below 1.
	// This is a caller contract violation, not a data condition.
	ErrGenerationsOutOfRange = errors.New("max generations must be at least 1")

	// ErrPersonNotFound is returned when the requested person ID does not
	// exist in the store.
	ErrPersonNotFound = errors.New("person not found")
)

// DefaultMaxGenerations is the default traversal depth. It is deliberately
// generous: in small closed populations (village parishes, isolated
// communities) shared ancestry routinely sits eight or more generations up.
const DefaultMaxGenerations = 12

// Link is one step of a line path: the parent followed at that step.
type Link byte

const (
	// LinkFather marks a step to the father.
	LinkFather Link = 'F'
	// LinkMother marks a step to the mother.
	LinkMother Link = 'M'
)

// Path is the sequence of parent choices that reaches an ancestor from the
// starting person. Its length equals the ancestor's generation.
type Path []Link

// String renders the path in compact record form, e.g. "FFM" for the
// paternal grandfather's mother.
func (p Path) String() string {
	b := make([]byte, len(p))
	for i, l := range p {
		b[i] = byte(l)
	}
	return string(b)
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path { return append(Path(nil), p...) }

// lineLabels maps short paths to conventional line names.
var lineLabels = map[string]string{
	"F":  "paternal line",
	"M":  "maternal line",
	"FF": "paternal grandfather's line",
	"FM": "paternal grandmother's line",
	"MF": "maternal grandfather's line",
	"MM": "maternal grandmother's line",
}

// LineLabel returns a human-readable name for the lineage the path belongs
// to. Short paths get conventional names; deeper paths fall back to the
// top-level side plus the generation distance.
func (p Path) LineLabel() string {
	s := p.String()
	if s == "" {
		return "root"
	}
	if label, ok := lineLabels[s]; ok {
		return label
	}
	side := "maternal"
	if p[0] == LinkFather {
		side = "paternal"
	}
	return fmt.Sprintf("%s line (%d generations back)", side, len(p))
}

// Describe spells the path out step by step, e.g. "father's father's mother".
func (p Path) Describe() string {
	if len(p) == 0 {
		return "self"
	}
	words := make([]string, len(p))
	for i, l := range p {
		if l == LinkFather {
			words[i] = "father"
		} else {
			words[i] = "mother"
		}
	}
	return strings.Join(words, "'s ")
}

// AncestorRecord is one ancestor reached by one specific line. The same
// person may appear in several records when the pedigree collapses; records
// are never deduplicated by person, because the consanguinity calculation
// needs every independent line.
type AncestorRecord struct {
	Person     *pedigree.Person
	Generation int  // path length, >= 1
	Path       Path // parent choices from the starting person

	// Trail lists the person IDs along the path, from the first parent up
	// to and including the ancestor. The consanguinity calculator uses it
	// to test path independence.
	Trail []string
}

// Enumeration is the result of one ancestor traversal.
type Enumeration struct {
	Root    *pedigree.Person
	MaxGen  int
	Records []AncestorRecord

	// CycleDetected is set when some branch reached a person already on
	// that branch's own path. The branch is truncated at that point; the
	// flag exists so callers can surface the data-quality problem.
	CycleDetected bool
}

// ByPerson groups the enumeration's records by ancestor ID.
func (e *Enumeration) ByPerson() map[string][]AncestorRecord {
	grouped := make(map[string][]AncestorRecord)
	for _, rec := range e.Records {
		grouped[rec.Person.ID] = append(grouped[rec.Person.ID], rec)
	}
	return grouped
}

// EnumerateAncestors walks up from the person with the given ID and returns
// every ancestor reachable within maxGen generations, one record per
// distinct line. A parent missing on one side simply ends that side; it is
// not an error. Returns ErrGenerationsOutOfRange if maxGen < 1 and
// ErrPersonNotFound if the ID is unknown.
func EnumerateAncestors(store *pedigree.Store, personID string, maxGen int) (*Enumeration, error) {
	if maxGen < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrGenerationsOutOfRange, maxGen)
	}
	root := store.Person(personID)
	if root == nil {
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}

	enum := &Enumeration{Root: root, MaxGen: maxGen}
	visited := map[string]bool{root.ID: true}
	climb(store, root, 0, maxGen, nil, nil, visited, enum)
	return enum, nil
}

// climb recursively emits both parents of current and descends into each.
// The visited set covers only the current branch: entries are added before
// descending and removed after, so a person reached again through a sibling
// branch (pedigree collapse) is still emitted, while a person recurring on
// their own line (a data cycle) truncates the branch.
func climb(store *pedigree.Store, current *pedigree.Person, gen, maxGen int, path Path, trail []string, visited map[string]bool, enum *Enumeration) {
	if gen >= maxGen {
		return
	}
	father, mother := store.Parents(current.ID)
	for _, step := range [...]struct {
		parent *pedigree.Person
		link   Link
	}{{father, LinkFather}, {mother, LinkMother}} {
		if step.parent == nil {
			continue
		}
		if visited[step.parent.ID] {
			enum.CycleDetected = true
			continue
		}

		path = append(path, step.link)
		trail = append(trail, step.parent.ID)
		enum.Records = append(enum.Records, AncestorRecord{
			Person:     step.parent,
			Generation: gen + 1,
			Path:       path.Clone(),
			Trail:      append([]string(nil), trail...),
		})

		visited[step.parent.ID] = true
		climb(store, step.parent, gen+1, maxGen, path, trail, visited, enum)
		delete(visited, step.parent.ID)

		path = path[:len(path)-1]
		trail = trail[:len(trail)-1]
	}
}
