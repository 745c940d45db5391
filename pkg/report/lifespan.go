package report

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

// Summary is a basic statistical description of a sample of ages.
type Summary struct {
	Count  int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// summarize computes a Summary over the sample; the zero Summary is
// returned for an empty sample.
func summarize(sample []float64) Summary {
	if len(sample) == 0 {
		return Summary{}
	}
	data := stats.LoadRawData(sample)
	mean, _ := data.Mean()
	median, _ := data.Median()
	minVal, _ := data.Min()
	maxVal, _ := data.Max()
	s := Summary{Count: len(sample), Mean: mean, Median: median, Min: minVal, Max: maxVal}
	if len(sample) > 1 {
		s.StdDev, _ = data.StandardDeviationSample()
	}
	return s
}

// Cohort is a half-century birth cohort with its lifespan statistics.
type Cohort struct {
	From, To int // birth years, inclusive-exclusive
	All      Summary
	Adults   Summary // persons who reached adulthood
}

// adultAge is the cut-off separating child mortality from adult lifespans
// in the cohort breakdown.
const adultAge = 16

// cohortSpan is the width of one birth cohort in years.
const cohortSpan = 50

// LifespanReport summarizes ages at death across the tree.
type LifespanReport struct {
	Overall Summary
	Male    Summary
	Female  Summary
	Cohorts []Cohort // sorted by cohort start year

	// LongLived lists persons who reached LongLivedAge, sorted by
	// descending age.
	LongLived []*pedigree.Person
}

// LongLivedAge is the age from which a person counts as long-lived.
const LongLivedAge = 80

// SurveyLifespans collects age-at-death statistics for every person with
// both a birth and a death year, overall, per sex, and per 50-year birth
// cohort.
func SurveyLifespans(store *pedigree.Store) *LifespanReport {
	rep := &LifespanReport{}
	var all, male, female []float64
	byCohort := make(map[int]*Cohort)
	var cohortAll = make(map[int][]float64)
	var cohortAdult = make(map[int][]float64)

	for _, id := range store.PersonIDs() {
		p := store.Person(id)
		age, ok := p.AgeAtDeath()
		if !ok || age < 0 {
			continue
		}
		v := float64(age)
		all = append(all, v)
		switch p.Sex {
		case pedigree.SexMale:
			male = append(male, v)
		case pedigree.SexFemale:
			female = append(female, v)
		}
		if age >= LongLivedAge {
			rep.LongLived = append(rep.LongLived, p)
		}

		if by := p.Birth.YearOrZero(); by != 0 {
			start := by - by%cohortSpan
			if _, ok := byCohort[start]; !ok {
				byCohort[start] = &Cohort{From: start, To: start + cohortSpan}
			}
			cohortAll[start] = append(cohortAll[start], v)
			if age >= adultAge {
				cohortAdult[start] = append(cohortAdult[start], v)
			}
		}
	}

	rep.Overall = summarize(all)
	rep.Male = summarize(male)
	rep.Female = summarize(female)

	for start, c := range byCohort {
		c.All = summarize(cohortAll[start])
		c.Adults = summarize(cohortAdult[start])
		rep.Cohorts = append(rep.Cohorts, *c)
	}
	sort.Slice(rep.Cohorts, func(i, j int) bool { return rep.Cohorts[i].From < rep.Cohorts[j].From })
	sort.SliceStable(rep.LongLived, func(i, j int) bool {
		ai, _ := rep.LongLived[i].AgeAtDeath()
		aj, _ := rep.LongLived[j].AgeAtDeath()
		return ai > aj
	})
	return rep
}
