package lineage

import (
	"fmt"
	"math"
	"sort"

	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

// Outcome distinguishes the ways a consanguinity query can resolve. A zero
// coefficient is reported differently depending on whether it was computed
// (no shared ancestry found within the cap) or never computable (a parent
// is missing from the record).
type Outcome int

const (
	// OutcomeInsufficientData means at least one parent of the subject is
	// unknown, so no coefficient can be computed.
	OutcomeInsufficientData Outcome = iota
	// OutcomeNoCommonAncestor means both parents are known but share no
	// independent ancestral line within the generation cap.
	OutcomeNoCommonAncestor
	// OutcomeRelated means the parents share at least one ancestor.
	OutcomeRelated
)

// String returns a short label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNoCommonAncestor:
		return "no common ancestor"
	case OutcomeRelated:
		return "related"
	}
	return "insufficient data"
}

// Contribution is one common ancestor's share of the coefficient, summed
// over all of that ancestor's independent path pairs.
type Contribution struct {
	Ancestor *pedigree.Person
	Pairs    []PathPair
	Value    float64 // sum of 0.5^(n1+n2+1) over Pairs
}

// ConsanguinityResult is the outcome of a coefficient-of-inbreeding query.
type ConsanguinityResult struct {
	Person  *pedigree.Person
	Outcome Outcome

	// COI is Wright's coefficient of inbreeding: the probability that the
	// subject's two alleles at a random locus are identical by descent.
	// Always in [0, 1). Zero is meaningful only together with Outcome.
	COI float64

	// CommonAncestors lists each contributing ancestor once, sorted by
	// descending contribution.
	CommonAncestors []Contribution

	// Classification is a human label for the closest relationship found,
	// e.g. "parents are first cousins".
	Classification string

	// MaxGen is the generation cap the search ran under. A zero COI proves
	// only the absence of shared ancestry within this many generations.
	MaxGen int

	// CycleDetected reports corrupt parent links encountered during either
	// ancestor traversal. The affected branches were truncated.
	CycleDetected bool
}

// Percent returns the coefficient as a percentage.
func (r *ConsanguinityResult) Percent() float64 { return r.COI * 100 }

// Consanguinity computes Wright's coefficient of inbreeding for the person
// with the given ID:
//
//	COI = sum over independent path pairs of 0.5^(n1+n2+1)
//
// where n1 and n2 are the generation distances from the subject's father
// and mother to the common ancestor. The ancestor's own inbreeding
// coefficient is treated as zero (the classical F_a = 0 simplification);
// in deeply inbred populations this slightly understates the true value.
//
// A missing parent yields OutcomeInsufficientData with COI 0. Known parents
// without shared ancestry within maxGen yield OutcomeNoCommonAncestor.
// Returns ErrGenerationsOutOfRange if maxGen < 1 and ErrPersonNotFound if
// the ID is unknown.
func Consanguinity(store *pedigree.Store, personID string, maxGen int) (*ConsanguinityResult, error) {
	if maxGen < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrGenerationsOutOfRange, maxGen)
	}
	person := store.Person(personID)
	if person == nil {
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}

	result := &ConsanguinityResult{Person: person, MaxGen: maxGen}

	father, mother := store.Parents(personID)
	if father == nil || mother == nil {
		result.Outcome = OutcomeInsufficientData
		result.Classification = "insufficient data"
		return result, nil
	}

	fatherEnum, err := EnumerateAncestors(store, father.ID, maxGen)
	if err != nil {
		return nil, err
	}
	motherEnum, err := EnumerateAncestors(store, mother.ID, maxGen)
	if err != nil {
		return nil, err
	}
	result.CycleDetected = fatherEnum.CycleDetected || motherEnum.CycleDetected

	common := FindCommonAncestors(fatherEnum, motherEnum)
	if len(common) == 0 {
		result.Outcome = OutcomeNoCommonAncestor
		result.Classification = fmt.Sprintf("no common ancestor within %d generations", maxGen)
		return result, nil
	}

	result.Outcome = OutcomeRelated
	closest := common[0].Closest()
	for _, ca := range common {
		contrib := Contribution{Ancestor: ca.Person, Pairs: ca.Pairs}
		for _, pair := range ca.Pairs {
			contrib.Value += math.Pow(0.5, float64(pair.FatherGen+pair.MotherGen+1))
			if pair.FatherGen+pair.MotherGen < closest.FatherGen+closest.MotherGen {
				closest = pair
			}
		}
		result.COI += contrib.Value
		result.CommonAncestors = append(result.CommonAncestors, contrib)
	}

	sort.SliceStable(result.CommonAncestors, func(i, j int) bool {
		return result.CommonAncestors[i].Value > result.CommonAncestors[j].Value
	})
	result.Classification = classify(closest.FatherGen, closest.MotherGen)
	return result, nil
}

// relationLabels maps the closest (min, max) generation pair to the
// conventional description of how the subject's parents are related.
var relationLabels = map[[2]int]string{
	{1, 1}: "parents are full siblings",
	{1, 2}: "one parent is the other's uncle or aunt",
	{2, 2}: "parents are first cousins",
	{2, 3}: "parents are first cousins once removed",
	{3, 3}: "parents are second cousins",
	{3, 4}: "parents are second cousins once removed",
	{4, 4}: "parents are third cousins",
}

// classify maps the closest path pair to a human relationship label, with a
// generic distance-based fallback for combinations not in the table.
func classify(n1, n2 int) string {
	key := [2]int{min(n1, n2), max(n1, n2)}
	if label, ok := relationLabels[key]; ok {
		return label
	}
	total := n1 + n2
	switch {
	case total <= 4:
		return fmt.Sprintf("close kinship (%d generations to common ancestor)", total)
	case total <= 6:
		return fmt.Sprintf("moderate kinship (%d generations to common ancestor)", total)
	default:
		return fmt.Sprintf("distant kinship (%d generations to common ancestor)", total)
	}
}
