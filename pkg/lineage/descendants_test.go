package lineage

import (
	"testing"

	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

func TestCountDescendants(t *testing.T) {
	s := threeGenerations(t)

	tests := []struct {
		name   string
		person string
		want   int
	}{
		{name: "Grandparent", person: "gf", want: 2}, // f and c
		{name: "Parent", person: "f", want: 1},
		{name: "Leaf", person: "c", want: 0},
		{name: "Unknown", person: "nobody", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountDescendants(s, tt.person); got != tt.want {
				t.Errorf("CountDescendants(%s) = %d, want %d", tt.person, got, tt.want)
			}
		})
	}
}

// TestCountDescendantsMultipleUnions counts children across two marriages
// and checks a shared grandchild is counted once.
func TestCountDescendantsMultipleUnions(t *testing.T) {
	s := pedigree.New()
	for _, id := range []string{"p", "w1", "w2", "c1", "c2", "gc"} {
		addPerson(t, s, id)
	}
	addFamily(t, s, "fam-1", "p", "w1", "c1")
	addFamily(t, s, "fam-2", "p", "w2", "c2")
	// The half-siblings have a child together; gc descends from p twice.
	addFamily(t, s, "fam-3", "c1", "c2", "gc")

	if got := CountDescendants(s, "p"); got != 3 {
		t.Errorf("CountDescendants(p) = %d, want c1, c2, and gc once each", got)
	}
}

func TestCountDescendantsCycleSafe(t *testing.T) {
	s := pedigree.New()
	for _, id := range []string{"a", "b"} {
		addPerson(t, s, id)
	}
	// Corrupt links: each is the other's child.
	addFamily(t, s, "fam-a", "a", "", "b")
	addFamily(t, s, "fam-b", "b", "", "a")

	if got := CountDescendants(s, "a"); got != 1 {
		t.Errorf("CountDescendants(a) = %d, want 1 despite the cycle", got)
	}
}
