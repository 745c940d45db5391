package lineage

import (
	"maps"
	"slices"

	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

// PathPair is one independent (father-side, mother-side) line pair reaching
// a common ancestor. FatherGen and MotherGen are the generation distances
// from the subject's father and mother respectively.
type PathPair struct {
	FatherGen  int
	FatherPath Path
	MotherGen  int
	MotherPath Path
}

// CommonAncestor is a person present in both the father-side and the
// mother-side ancestor sets, with every surviving independent path pair.
type CommonAncestor struct {
	Person *pedigree.Person
	Pairs  []PathPair
}

// Closest returns the pair with the smallest combined depth.
func (c *CommonAncestor) Closest() PathPair {
	best := c.Pairs[0]
	for _, pair := range c.Pairs[1:] {
		if pair.FatherGen+pair.MotherGen < best.FatherGen+best.MotherGen {
			best = pair
		}
	}
	return best
}

// FindCommonAncestors resolves the people present in both enumerations and
// keeps, per person, every path pair whose two sides share no intermediate
// person. Overlapping pairs are discarded: the ancestry they would add is
// already accounted for by a more proximate common ancestor on the shared
// segment. All surviving pairs are retained, not just the closest, because
// Wright's formula sums every independent line.
//
// Results are sorted by ancestor ID for deterministic output.
func FindCommonAncestors(father, mother *Enumeration) []CommonAncestor {
	fatherSide := father.ByPerson()
	motherSide := mother.ByPerson()

	var common []CommonAncestor
	for _, id := range slices.Sorted(maps.Keys(fatherSide)) {
		motherRecs, shared := motherSide[id]
		if !shared {
			continue
		}
		ca := CommonAncestor{Person: fatherSide[id][0].Person}
		for _, f := range fatherSide[id] {
			for _, m := range motherRecs {
				if pathsOverlap(father.Root.ID, f.Trail, mother.Root.ID, m.Trail) {
					continue
				}
				ca.Pairs = append(ca.Pairs, PathPair{
					FatherGen:  f.Generation,
					FatherPath: f.Path,
					MotherGen:  m.Generation,
					MotherPath: m.Path,
				})
			}
		}
		if len(ca.Pairs) > 0 {
			common = append(common, ca)
		}
	}
	return common
}

// pathsOverlap reports whether the two lines share any person other than
// the common ancestor itself. Each line consists of its root (the subject's
// father or mother) plus the trail up to, but excluding, the ancestor.
func pathsOverlap(fatherID string, fatherTrail []string, motherID string, motherTrail []string) bool {
	onFatherLine := map[string]bool{fatherID: true}
	for _, id := range fatherTrail[:len(fatherTrail)-1] {
		onFatherLine[id] = true
	}
	if onFatherLine[motherID] {
		return true
	}
	for _, id := range motherTrail[:len(motherTrail)-1] {
		if onFatherLine[id] {
			return true
		}
	}
	return false
}
