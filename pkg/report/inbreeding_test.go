package report

import (
	"math"
	"testing"

	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

func addPerson(t *testing.T, s *pedigree.Store, id string, sex pedigree.Sex) {
	t.Helper()
	if err := s.AddPerson(&pedigree.Person{ID: id, Name: id, Sex: sex}); err != nil {
		t.Fatalf("AddPerson(%s): %v", id, err)
	}
}

func addFamily(t *testing.T, s *pedigree.Store, id, father, mother string, children ...string) {
	t.Helper()
	if err := s.AddFamily(&pedigree.Family{ID: id, Father: father, Mother: mother, Children: children}); err != nil {
		t.Fatalf("AddFamily(%s): %v", id, err)
	}
	for _, parentID := range []string{father, mother} {
		if p := s.Person(parentID); p != nil {
			p.SpouseIn = append(p.SpouseIn, id)
		}
	}
	for _, childID := range children {
		if c := s.Person(childID); c != nil {
			c.ChildIn = id
		}
	}
}

// surveyTree builds a store with one consanguineous marriage (spouses are
// full siblings), one unrelated marriage, and one childless marriage.
func surveyTree(t *testing.T) *pedigree.Store {
	t.Helper()
	s := pedigree.New()
	for _, id := range []string{"g1", "g2", "sib1", "sib2", "child", "u1", "u2", "uc", "n1", "n2"} {
		addPerson(t, s, id, pedigree.SexUnknown)
	}
	addFamily(t, s, "fam-g", "g1", "g2", "sib1", "sib2")
	addFamily(t, s, "fam-sibs", "sib1", "sib2", "child")
	addFamily(t, s, "fam-unrelated", "u1", "u2", "uc")
	addFamily(t, s, "fam-childless", "n1", "n2")
	return s
}

func TestSurveyInbreeding(t *testing.T) {
	s := surveyTree(t)

	survey, err := SurveyInbreeding(s, 8)
	if err != nil {
		t.Fatalf("SurveyInbreeding: %v", err)
	}
	if survey.FamiliesTotal != 4 {
		t.Errorf("FamiliesTotal = %d, want 4", survey.FamiliesTotal)
	}
	if len(survey.Marriages) != 1 {
		t.Fatalf("got %d related marriages, want 1", len(survey.Marriages))
	}

	m := survey.Marriages[0]
	if m.Husband.ID != "sib1" || m.Wife.ID != "sib2" {
		t.Errorf("marriage spouses = %s/%s", m.Husband.ID, m.Wife.ID)
	}
	if m.Child.ID != "child" {
		t.Errorf("measured child = %s", m.Child.ID)
	}
	if math.Abs(m.Result.COI-0.25) > 1e-12 {
		t.Errorf("COI = %g, want 0.25", m.Result.COI)
	}
	if m.Level != LevelHigh {
		t.Errorf("Level = %v, want LevelHigh", m.Level)
	}
	if math.Abs(survey.MaxCOI-0.25) > 1e-12 {
		t.Errorf("MaxCOI = %g, want 0.25", survey.MaxCOI)
	}
	if survey.CountByLevel(LevelHigh) != 1 || survey.CountByLevel(LevelLow) != 0 {
		t.Errorf("level counts = %d high / %d low", survey.CountByLevel(LevelHigh), survey.CountByLevel(LevelLow))
	}
}

func TestSurveySortedByCOI(t *testing.T) {
	s := surveyTree(t)
	// Add a half-sibling marriage, which scores 0.125 < 0.25.
	for _, id := range []string{"h", "hw1", "hw2", "hs1", "hs2", "hc"} {
		addPerson(t, s, id, pedigree.SexUnknown)
	}
	addFamily(t, s, "fam-h1", "h", "hw1", "hs1")
	addFamily(t, s, "fam-h2", "h", "hw2", "hs2")
	addFamily(t, s, "fam-half", "hs1", "hs2", "hc")

	survey, err := SurveyInbreeding(s, 8)
	if err != nil {
		t.Fatalf("SurveyInbreeding: %v", err)
	}
	if len(survey.Marriages) != 2 {
		t.Fatalf("got %d related marriages, want 2", len(survey.Marriages))
	}
	if survey.Marriages[0].Result.COI < survey.Marriages[1].Result.COI {
		t.Error("marriages not sorted by descending COI")
	}
}

func TestClassifyLevel(t *testing.T) {
	tests := []struct {
		coi  float64
		want Level
	}{
		{0.0001, LevelLow},
		{0.01, LevelMedium},
		{0.03, LevelMedium},
		{0.0625, LevelHigh},
		{0.25, LevelHigh},
	}
	for _, tt := range tests {
		if got := classifyLevel(tt.coi); got != tt.want {
			t.Errorf("classifyLevel(%g) = %v, want %v", tt.coi, got, tt.want)
		}
	}
}
