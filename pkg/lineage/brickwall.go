package lineage

import (
	"fmt"
	"sort"

	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

// Terminal is a brick wall: an ancestor beyond whom no further parents are
// known. Terminals mark where archival research has to continue.
type Terminal struct {
	Person     *pedigree.Person
	Generation int    // 0 when the search had no root person
	Path       Path   // empty when the search had no root person
	Line       string // human label for the lineage the terminal ends

	Descendants int
	Quality     pedigree.DataQuality

	// Priority is the research-priority bucket, 1 (highest) to 5 (lowest).
	Priority int
}

// PriorityThresholds parameterizes the research-priority score. The exact
// cut-offs are a policy choice; any values keep the score monotonic in
// generation proximity, descendant count, and data scarcity.
type PriorityThresholds struct {
	CloseGen int // generation considered close (inclusive)
	MidGen   int // generation considered moderately close (inclusive)

	ManyDescendants int // descendant count worth the full payoff bonus
	SomeDescendants int // descendant count worth a partial payoff bonus
}

// DefaultThresholds is the standard scoring policy.
var DefaultThresholds = PriorityThresholds{
	CloseGen:        3,
	MidGen:          5,
	ManyDescendants: 10,
	SomeDescendants: 5,
}

// ScorePriority buckets a terminal into priorities 1 (research first) to 5.
// Nearer generations, more descendants, and scarcer data all raise the
// priority: a close, well-connected, poorly documented ancestor is where an
// hour of research pays off most.
func (t PriorityThresholds) ScorePriority(generation, descendants int, quality pedigree.DataQuality) int {
	score := 0
	switch {
	case generation <= t.CloseGen:
		score += 3
	case generation <= t.MidGen:
		score += 2
	default:
		score++
	}
	switch {
	case descendants >= t.ManyDescendants:
		score += 3
	case descendants >= t.SomeDescendants:
		score += 2
	case descendants >= 1:
		score++
	}
	switch quality {
	case pedigree.QualityMinimal:
		score += 2
	case pedigree.QualityPartial:
		score++
	}

	switch {
	case score >= 7:
		return 1
	case score >= 5:
		return 2
	case score >= 3:
		return 3
	case score >= 2:
		return 4
	default:
		return 5
	}
}

// TerminalReport is the result of a brick-wall analysis.
type TerminalReport struct {
	Terminals []Terminal

	// Store-wide parentage counts, filled regardless of root restriction.
	TotalPersons   int
	WithParents    int
	WithoutParents int

	// CycleDetected reports corrupt parent links found while restricting
	// to a root person's ancestry.
	CycleDetected bool
}

// FindLineTerminals finds every brick wall in the store. With a non-empty
// rootID the result is restricted to actual ancestors of that person within
// maxGen generations, each annotated with its generation and line label;
// with an empty rootID every parentless person in the store is a terminal.
//
// Terminals are sorted by ascending priority, then descending descendant
// count. Returns ErrGenerationsOutOfRange if maxGen < 1 and
// ErrPersonNotFound for an unknown root.
func FindLineTerminals(store *pedigree.Store, rootID string, maxGen int, thresholds PriorityThresholds) (*TerminalReport, error) {
	if maxGen < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrGenerationsOutOfRange, maxGen)
	}

	report := &TerminalReport{TotalPersons: store.PersonCount()}
	parentless := make(map[string]bool)
	for _, id := range store.PersonIDs() {
		father, mother := store.Parents(id)
		if father == nil && mother == nil {
			report.WithoutParents++
			parentless[id] = true
		} else {
			report.WithParents++
		}
	}

	if rootID == "" {
		for _, id := range store.PersonIDs() {
			if !parentless[id] {
				continue
			}
			report.Terminals = append(report.Terminals, newTerminal(store, store.Person(id), 0, nil, thresholds))
		}
	} else {
		enum, err := EnumerateAncestors(store, rootID, maxGen)
		if err != nil {
			return nil, err
		}
		report.CycleDetected = enum.CycleDetected

		// An ancestor can be reached on several lines; report the most
		// proximate one.
		best := make(map[string]AncestorRecord)
		for _, rec := range enum.Records {
			if !parentless[rec.Person.ID] {
				continue
			}
			prev, seen := best[rec.Person.ID]
			if !seen || rec.Generation < prev.Generation {
				best[rec.Person.ID] = rec
			}
		}
		for _, rec := range best {
			report.Terminals = append(report.Terminals, newTerminal(store, rec.Person, rec.Generation, rec.Path, thresholds))
		}
	}

	sort.SliceStable(report.Terminals, func(i, j int) bool {
		a, b := report.Terminals[i], report.Terminals[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Descendants != b.Descendants {
			return a.Descendants > b.Descendants
		}
		return a.Person.ID < b.Person.ID
	})
	return report, nil
}

func newTerminal(store *pedigree.Store, person *pedigree.Person, gen int, path Path, thresholds PriorityThresholds) Terminal {
	descendants := CountDescendants(store, person.ID)
	quality := person.Quality()
	line := ""
	if len(path) > 0 {
		line = path.LineLabel()
	}
	return Terminal{
		Person:      person,
		Generation:  gen,
		Path:        path,
		Line:        line,
		Descendants: descendants,
		Quality:     quality,
		Priority:    thresholds.ScorePriority(gen, descendants, quality),
	}
}

// LineTrace is one direct ancestral line followed to its end.
type LineTrace struct {
	Name         string
	Depth        int // generations climbed before the line ended
	Terminal     *pedigree.Person
	EarliestYear int // 0 if the terminal has no dated events
	Persons      []*pedigree.Person
}

// TraceDirectLines follows the principal single-parent lines from the root:
// the patrilineal (father's father's ...) and matrilineal (mother's
// mother's ...) lines, and the same two lines for the paternal
// grandparents. Each trace stops at the first missing parent or after
// maxGen steps. Returns ErrGenerationsOutOfRange if maxGen < 1 and
// ErrPersonNotFound for an unknown root.
func TraceDirectLines(store *pedigree.Store, rootID string, maxGen int) ([]LineTrace, error) {
	if maxGen < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrGenerationsOutOfRange, maxGen)
	}
	root := store.Person(rootID)
	if root == nil {
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, rootID)
	}

	traces := []LineTrace{
		traceLine(store, root, LinkFather, maxGen, "patrilineal (Y-chromosome)"),
		traceLine(store, root, LinkMother, maxGen, "matrilineal (mitochondrial)"),
	}

	father, _ := store.Parents(rootID)
	if father != nil {
		grandfather, grandmother := store.Parents(father.ID)
		if grandfather != nil {
			traces = append(traces, traceLine(store, grandfather, LinkFather, maxGen, "paternal grandfather's patriline"))
		}
		if grandmother != nil {
			traces = append(traces, traceLine(store, grandmother, LinkMother, maxGen, "paternal grandmother's matriline"))
		}
	}
	return traces, nil
}

func traceLine(store *pedigree.Store, start *pedigree.Person, side Link, maxGen int, name string) LineTrace {
	trace := LineTrace{Name: name, Persons: []*pedigree.Person{start}}
	seen := map[string]bool{start.ID: true}
	current := start
	for trace.Depth < maxGen {
		father, mother := store.Parents(current.ID)
		next := father
		if side == LinkMother {
			next = mother
		}
		if next == nil || seen[next.ID] {
			break
		}
		seen[next.ID] = true
		trace.Persons = append(trace.Persons, next)
		current = next
		trace.Depth++
	}
	if trace.Depth > 0 {
		trace.Terminal = trace.Persons[len(trace.Persons)-1]
	}
	last := trace.Persons[len(trace.Persons)-1]
	trace.EarliestYear = last.Year()
	return trace
}
