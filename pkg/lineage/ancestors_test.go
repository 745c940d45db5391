package lineage

import (
	"errors"
	"testing"

	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

// addPerson registers a bare person for traversal tests.
func addPerson(t *testing.T, s *pedigree.Store, id string) {
	t.Helper()
	if err := s.AddPerson(&pedigree.Person{ID: id, Name: id}); err != nil {
		t.Fatalf("AddPerson(%s): %v", id, err)
	}
}

// addFamily registers a union and wires the parent/child links on the
// already-added persons.
func addFamily(t *testing.T, s *pedigree.Store, id, father, mother string, children ...string) {
	t.Helper()
	if err := s.AddFamily(&pedigree.Family{ID: id, Father: father, Mother: mother, Children: children}); err != nil {
		t.Fatalf("AddFamily(%s): %v", id, err)
	}
	for _, parentID := range []string{father, mother} {
		if parentID == "" {
			continue
		}
		p := s.Person(parentID)
		if p == nil {
			t.Fatalf("family %s references unknown parent %s", id, parentID)
		}
		p.SpouseIn = append(p.SpouseIn, id)
	}
	for _, childID := range children {
		c := s.Person(childID)
		if c == nil {
			t.Fatalf("family %s references unknown child %s", id, childID)
		}
		c.ChildIn = id
	}
}

// threeGenerations builds a full two-generation pedigree above "c":
//
//	gf gm   mgf mgm
//	  \ |     | /
//	   f       m
//	    \     /
//	       c
func threeGenerations(t *testing.T) *pedigree.Store {
	t.Helper()
	s := pedigree.New()
	for _, id := range []string{"c", "f", "m", "gf", "gm", "mgf", "mgm"} {
		addPerson(t, s, id)
	}
	addFamily(t, s, "fam-c", "f", "m", "c")
	addFamily(t, s, "fam-f", "gf", "gm", "f")
	addFamily(t, s, "fam-m", "mgf", "mgm", "m")
	return s
}

func TestEnumerateAncestors(t *testing.T) {
	s := threeGenerations(t)

	enum, err := EnumerateAncestors(s, "c", 5)
	if err != nil {
		t.Fatalf("EnumerateAncestors: %v", err)
	}
	if len(enum.Records) != 6 {
		t.Fatalf("got %d records, want 6", len(enum.Records))
	}
	if enum.CycleDetected {
		t.Error("CycleDetected = true for a clean tree")
	}

	wantPaths := map[string]string{
		"f": "F", "m": "M",
		"gf": "FF", "gm": "FM",
		"mgf": "MF", "mgm": "MM",
	}
	for _, rec := range enum.Records {
		want, ok := wantPaths[rec.Person.ID]
		if !ok {
			t.Errorf("unexpected ancestor %s", rec.Person.ID)
			continue
		}
		if got := rec.Path.String(); got != want {
			t.Errorf("path to %s = %q, want %q", rec.Person.ID, got, want)
		}
		if rec.Generation != len(rec.Path) {
			t.Errorf("generation of %s = %d, want path length %d", rec.Person.ID, rec.Generation, len(rec.Path))
		}
		if len(rec.Trail) != rec.Generation {
			t.Errorf("trail of %s has %d entries, want %d", rec.Person.ID, len(rec.Trail), rec.Generation)
		}
		if rec.Trail[len(rec.Trail)-1] != rec.Person.ID {
			t.Errorf("trail of %s ends at %s, want the ancestor itself", rec.Person.ID, rec.Trail[len(rec.Trail)-1])
		}
	}
}

func TestEnumerateGenerationCap(t *testing.T) {
	s := threeGenerations(t)

	enum, err := EnumerateAncestors(s, "c", 1)
	if err != nil {
		t.Fatalf("EnumerateAncestors: %v", err)
	}
	if len(enum.Records) != 2 {
		t.Fatalf("maxGen 1: got %d records, want only the parents", len(enum.Records))
	}
}

// TestEnumerateDeepensMonotonically checks that raising the cap only adds
// records, never changes or removes the shallow ones.
func TestEnumerateDeepensMonotonically(t *testing.T) {
	s := threeGenerations(t)

	shallow, err := EnumerateAncestors(s, "c", 1)
	if err != nil {
		t.Fatalf("EnumerateAncestors: %v", err)
	}
	deep, err := EnumerateAncestors(s, "c", 4)
	if err != nil {
		t.Fatalf("EnumerateAncestors: %v", err)
	}

	deepPaths := map[string]bool{}
	for _, rec := range deep.Records {
		deepPaths[rec.Person.ID+"/"+rec.Path.String()] = true
	}
	for _, rec := range shallow.Records {
		if !deepPaths[rec.Person.ID+"/"+rec.Path.String()] {
			t.Errorf("record %s via %s missing from the deeper enumeration", rec.Person.ID, rec.Path)
		}
	}
}

func TestEnumerateErrors(t *testing.T) {
	s := threeGenerations(t)

	if _, err := EnumerateAncestors(s, "c", 0); !errors.Is(err, ErrGenerationsOutOfRange) {
		t.Errorf("maxGen 0: err = %v, want ErrGenerationsOutOfRange", err)
	}
	if _, err := EnumerateAncestors(s, "c", -3); !errors.Is(err, ErrGenerationsOutOfRange) {
		t.Errorf("maxGen -3: err = %v, want ErrGenerationsOutOfRange", err)
	}
	if _, err := EnumerateAncestors(s, "nobody", 4); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("unknown person: err = %v, want ErrPersonNotFound", err)
	}
}

// TestEnumerateMissingParentSide checks that an unknown parent ends that
// side quietly instead of erroring.
func TestEnumerateMissingParentSide(t *testing.T) {
	s := pedigree.New()
	for _, id := range []string{"c", "f", "gf"} {
		addPerson(t, s, id)
	}
	addFamily(t, s, "fam-c", "f", "", "c")
	addFamily(t, s, "fam-f", "gf", "", "f")

	enum, err := EnumerateAncestors(s, "c", 10)
	if err != nil {
		t.Fatalf("EnumerateAncestors: %v", err)
	}
	if len(enum.Records) != 2 {
		t.Fatalf("got %d records, want f and gf only", len(enum.Records))
	}
	if enum.CycleDetected {
		t.Error("missing parents must not count as cycles")
	}
}

// TestEnumerateCycle feeds a corrupt tree where a person sits on their own
// ancestral line. The branch must be truncated and flagged, not looped.
func TestEnumerateCycle(t *testing.T) {
	s := pedigree.New()
	for _, id := range []string{"a", "b"} {
		addPerson(t, s, id)
	}
	addFamily(t, s, "fam-a", "b", "", "a")
	addFamily(t, s, "fam-b", "a", "", "b")

	enum, err := EnumerateAncestors(s, "a", 10)
	if err != nil {
		t.Fatalf("EnumerateAncestors: %v", err)
	}
	if !enum.CycleDetected {
		t.Error("CycleDetected = false, want true")
	}
	if len(enum.Records) != 1 {
		t.Errorf("got %d records, want just b before the truncation", len(enum.Records))
	}
}

// TestEnumeratePedigreeCollapse checks that an ancestor reachable along
// two valid lines is reported twice, once per line.
func TestEnumeratePedigreeCollapse(t *testing.T) {
	s := pedigree.New()
	// f and m are full siblings, so their parents appear on both sides.
	for _, id := range []string{"c", "f", "m", "g1", "g2"} {
		addPerson(t, s, id)
	}
	addFamily(t, s, "fam-c", "f", "m", "c")
	addFamily(t, s, "fam-g", "g1", "g2", "f", "m")

	enum, err := EnumerateAncestors(s, "c", 5)
	if err != nil {
		t.Fatalf("EnumerateAncestors: %v", err)
	}
	if enum.CycleDetected {
		t.Error("pedigree collapse must not be flagged as a cycle")
	}

	byPerson := enum.ByPerson()
	for _, id := range []string{"g1", "g2"} {
		if got := len(byPerson[id]); got != 2 {
			t.Errorf("ancestor %s reported on %d lines, want 2", id, got)
		}
	}
}

func TestPathLabels(t *testing.T) {
	tests := []struct {
		path     Path
		label    string
		describe string
	}{
		{Path{}, "root", "self"},
		{Path{LinkFather}, "paternal line", "father"},
		{Path{LinkMother, LinkMother}, "maternal grandmother's line", "mother's mother"},
		{Path{LinkFather, LinkMother, LinkFather}, "paternal line (3 generations back)", "father's mother's father"},
	}

	for _, tt := range tests {
		if got := tt.path.LineLabel(); got != tt.label {
			t.Errorf("LineLabel(%q) = %q, want %q", tt.path, got, tt.label)
		}
		if got := tt.path.Describe(); got != tt.describe {
			t.Errorf("Describe(%q) = %q, want %q", tt.path, got, tt.describe)
		}
	}
}
