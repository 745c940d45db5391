package report

import (
	"sort"

	"github.com/pedigraph/pedigraph/pkg/lineage"
	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

// COI bucket boundaries, matching the classical relationship landmarks:
// first cousins produce 6.25%, anything above is close inbreeding.
const (
	HighCOI   = 0.0625
	MediumCOI = 0.01
)

// Level buckets a marriage by the coefficient its children carry.
type Level int

const (
	// LevelLow is COI below 1%.
	LevelLow Level = iota
	// LevelMedium is COI from 1% up to 6.25%.
	LevelMedium
	// LevelHigh is COI of 6.25% and above.
	LevelHigh
)

// String returns "low", "medium", or "high".
func (l Level) String() string {
	switch l {
	case LevelMedium:
		return "medium"
	case LevelHigh:
		return "high"
	}
	return "low"
}

// classifyLevel buckets a coefficient.
func classifyLevel(coi float64) Level {
	switch {
	case coi >= HighCOI:
		return LevelHigh
	case coi >= MediumCOI:
		return LevelMedium
	default:
		return LevelLow
	}
}

// RelatedMarriage is a union whose spouses share ancestry, measured through
// the coefficient of inbreeding of the union's first recorded child.
type RelatedMarriage struct {
	Family  *pedigree.Family
	Husband *pedigree.Person
	Wife    *pedigree.Person
	Child   *pedigree.Person
	Result  *lineage.ConsanguinityResult
	Level   Level
}

// InbreedingSurvey is the whole-tree consanguinity report.
type InbreedingSurvey struct {
	MaxGen         int
	FamiliesTotal  int
	Marriages      []RelatedMarriage // sorted by descending COI
	MeanCOI        float64           // over related marriages
	MaxCOI         float64
	CyclesDetected bool
}

// CountByLevel returns how many related marriages fall into the level.
func (s *InbreedingSurvey) CountByLevel(level Level) int {
	n := 0
	for _, m := range s.Marriages {
		if m.Level == level {
			n++
		}
	}
	return n
}

// SurveyInbreeding scans every family with both spouses and at least one
// child, computes the child's coefficient of inbreeding, and collects the
// marriages where the spouses turn out to be related. Families without
// children contribute nothing: the coefficient is defined on offspring.
func SurveyInbreeding(store *pedigree.Store, maxGen int) (*InbreedingSurvey, error) {
	survey := &InbreedingSurvey{MaxGen: maxGen, FamiliesTotal: store.FamilyCount()}

	for _, famID := range store.FamilyIDs() {
		fam := store.Family(famID)
		if !fam.HasBothSpouses() || len(fam.Children) == 0 {
			continue
		}
		husband, wife := store.Person(fam.Father), store.Person(fam.Mother)
		child := store.Person(fam.Children[0])
		if husband == nil || wife == nil || child == nil {
			continue
		}

		result, err := lineage.Consanguinity(store, child.ID, maxGen)
		if err != nil {
			return nil, err
		}
		survey.CyclesDetected = survey.CyclesDetected || result.CycleDetected
		if result.Outcome != lineage.OutcomeRelated {
			continue
		}

		survey.Marriages = append(survey.Marriages, RelatedMarriage{
			Family:  fam,
			Husband: husband,
			Wife:    wife,
			Child:   child,
			Result:  result,
			Level:   classifyLevel(result.COI),
		})
		survey.MeanCOI += result.COI
		if result.COI > survey.MaxCOI {
			survey.MaxCOI = result.COI
		}
	}

	if n := len(survey.Marriages); n > 0 {
		survey.MeanCOI /= float64(n)
	}
	sort.SliceStable(survey.Marriages, func(i, j int) bool {
		return survey.Marriages[i].Result.COI > survey.Marriages[j].Result.COI
	})
	return survey, nil
}
