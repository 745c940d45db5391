package render

import (
	"strings"
	"testing"

	"github.com/pedigraph/pedigraph/pkg/lineage"
	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

func buildTree(t *testing.T) *pedigree.Store {
	t.Helper()
	s := pedigree.New()
	persons := []*pedigree.Person{
		{ID: "c", Name: "Иван Сидоров", ChildIn: "fam-c"},
		{ID: "f", Name: "Пётр Сидоров", ChildIn: "fam-f", SpouseIn: []string{"fam-c"},
			Birth: pedigree.EventDate{Year: 1893}, Death: pedigree.EventDate{Year: 1951}, BirthPlace: "с. Высокое"},
		{ID: "m", Name: "Мария Сидорова", SpouseIn: []string{"fam-c"}},
		{ID: "gf", Name: "Николай Сидоров", SpouseIn: []string{"fam-f"}},
	}
	for _, p := range persons {
		if err := s.AddPerson(p); err != nil {
			t.Fatalf("AddPerson: %v", err)
		}
	}
	families := []*pedigree.Family{
		{ID: "fam-c", Father: "f", Mother: "m", Children: []string{"c"}},
		{ID: "fam-f", Father: "gf", Children: []string{"f"}},
	}
	for _, f := range families {
		if err := s.AddFamily(f); err != nil {
			t.Fatalf("AddFamily: %v", err)
		}
	}
	return s
}

func TestToDOT(t *testing.T) {
	s := buildTree(t)
	enum, err := lineage.EnumerateAncestors(s, "c", 5)
	if err != nil {
		t.Fatalf("EnumerateAncestors: %v", err)
	}

	dot := ToDOT(s, enum, Options{})

	if !strings.HasPrefix(dot, "digraph pedigree {") {
		t.Errorf("output does not open a digraph:\n%s", dot)
	}
	for _, want := range []string{
		`"c" -> "f";`,
		`"c" -> "m";`,
		`"f" -> "gf";`,
		`label="Пётр Сидоров"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "color=red") {
		t.Error("terminal outline emitted without Options.Terminals")
	}
}

func TestToDOTDetailed(t *testing.T) {
	s := buildTree(t)
	enum, err := lineage.EnumerateAncestors(s, "c", 5)
	if err != nil {
		t.Fatalf("EnumerateAncestors: %v", err)
	}

	dot := ToDOT(s, enum, Options{Detailed: true, Terminals: true})

	if !strings.Contains(dot, "1893-1951") {
		t.Errorf("detailed label missing year span:\n%s", dot)
	}
	if !strings.Contains(dot, "с. Высокое") {
		t.Errorf("detailed label missing birth place:\n%s", dot)
	}
	// m and gf have no known parents and must be outlined.
	if !strings.Contains(dot, "color=red") {
		t.Errorf("terminal outlines missing:\n%s", dot)
	}
}

// TestToDOTCollapse checks a collapsed ancestor is emitted as one node with
// converging edges.
func TestToDOTCollapse(t *testing.T) {
	s := pedigree.New()
	for _, p := range []*pedigree.Person{
		{ID: "c", Name: "c", ChildIn: "fam-c"},
		{ID: "f", Name: "f", ChildIn: "fam-g", SpouseIn: []string{"fam-c"}},
		{ID: "m", Name: "m", ChildIn: "fam-g", SpouseIn: []string{"fam-c"}},
		{ID: "g", Name: "g", SpouseIn: []string{"fam-g"}},
	} {
		if err := s.AddPerson(p); err != nil {
			t.Fatalf("AddPerson: %v", err)
		}
	}
	for _, f := range []*pedigree.Family{
		{ID: "fam-c", Father: "f", Mother: "m", Children: []string{"c"}},
		{ID: "fam-g", Father: "g", Children: []string{"f", "m"}},
	} {
		if err := s.AddFamily(f); err != nil {
			t.Fatalf("AddFamily: %v", err)
		}
	}

	enum, err := lineage.EnumerateAncestors(s, "c", 5)
	if err != nil {
		t.Fatalf("EnumerateAncestors: %v", err)
	}
	dot := ToDOT(s, enum, Options{})

	if got := strings.Count(dot, `"g" [`); got != 1 {
		t.Errorf("collapsed ancestor emitted %d times, want 1", got)
	}
	for _, want := range []string{`"f" -> "g";`, `"m" -> "g";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing converging edge %q:\n%s", want, dot)
		}
	}
}
