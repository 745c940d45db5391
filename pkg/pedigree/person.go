package pedigree

import "time"

// Sex is the recorded sex of a person.
type Sex int

const (
	// SexUnknown is used when the record carries no SEX tag or an
	// unrecognized value.
	SexUnknown Sex = iota
	// SexMale corresponds to a "M" record.
	SexMale
	// SexFemale corresponds to a "F" record.
	SexFemale
)

// String returns the single-letter record form ("M", "F", or "U").
func (s Sex) String() string {
	switch s {
	case SexMale:
		return "M"
	case SexFemale:
		return "F"
	}
	return "U"
}

// EventDate holds a possibly-partial date attached to a life event.
// Genealogical records frequently carry only a year ("1893") or a month and
// year ("MAY 1893"); Date is the zero time unless the record had a full
// day-level date. Julian marks dates recorded in the Julian calendar.
type EventDate struct {
	Date   time.Time // full date, zero if only a year is known
	Year   int       // 0 if unknown
	Julian bool
}

// Known reports whether the event has at least a year.
func (d EventDate) Known() bool { return d.Year != 0 || !d.Date.IsZero() }

// YearOrZero returns the best-known year for the event.
func (d EventDate) YearOrZero() int {
	if d.Year != 0 {
		return d.Year
	}
	if !d.Date.IsZero() {
		return d.Date.Year()
	}
	return 0
}

// Residence is a recorded place of living, optionally with coordinates.
type Residence struct {
	Place string
	Date  string // raw record text, not normalized
	Lat   string
	Lon   string
}

// Person is an individual in the pedigree. Instances are owned by the
// [Store]; analysis code holds references and never mutates them.
//
// The zero value is not usable - ID must be set before adding to a Store.
type Person struct {
	ID         string // unique record identifier (e.g., "@I1@")
	Name       string // full display name
	GivenName  string
	Surname    string
	Patronymic string
	Sex        Sex

	Birth      EventDate
	BirthPlace string

	Death      EventDate
	DeathPlace string
	DeathCause string

	Christening EventDate

	// ChildIn is the family in which this person is a child; empty if no
	// parents are recorded. SpouseIn lists families in which the person is
	// a parent or spouse.
	ChildIn  string
	SpouseIn []string

	Occupation string
	Residences []Residence
	Godparents []string // person IDs linked via godparent associations
	Notes      []string
}

// AgeAtDeath returns the person's age in whole years at death and true,
// or 0 and false when either the birth or death year is unknown.
func (p *Person) AgeAtDeath() (int, bool) {
	by, dy := p.Birth.YearOrZero(), p.Death.YearOrZero()
	if by == 0 || dy == 0 {
		return 0, false
	}
	years := dy - by
	if !p.Birth.Date.IsZero() && !p.Death.Date.IsZero() {
		if p.Death.Date.Month() < p.Birth.Date.Month() ||
			(p.Death.Date.Month() == p.Birth.Date.Month() && p.Death.Date.Day() < p.Birth.Date.Day()) {
			years--
		}
	}
	return years, true
}

// Year returns the best year to anchor the person in time: birth year if
// known, otherwise death year. Returns 0 when neither is recorded.
func (p *Person) Year() int {
	if y := p.Birth.YearOrZero(); y != 0 {
		return y
	}
	return p.Death.YearOrZero()
}

// Alive reports whether the person has no death record.
func (p *Person) Alive() bool { return !p.Death.Known() }

// DataQuality classifies how completely a person is documented.
type DataQuality int

const (
	// QualityMinimal means little beyond an identifier is recorded.
	QualityMinimal DataQuality = iota
	// QualityPartial means some vital facts are present.
	QualityPartial
	// QualityGood means the person is well documented.
	QualityGood
)

// String returns the lowercase label ("minimal", "partial", "good").
func (q DataQuality) String() string {
	switch q {
	case QualityPartial:
		return "partial"
	case QualityGood:
		return "good"
	}
	return "minimal"
}

// Quality scores the person's data completeness. Full dates weigh more than
// bare years, and an exact birth record weighs more than a death record,
// since birth records anchor further archival research.
func (p *Person) Quality() DataQuality {
	score := 0
	switch {
	case !p.Birth.Date.IsZero():
		score += 3
	case p.Birth.Year != 0:
		score += 2
	}
	switch {
	case !p.Death.Date.IsZero():
		score += 2
	case p.Death.Year != 0:
		score++
	}
	if p.BirthPlace != "" {
		score += 2
	}
	if p.Surname != "" {
		score++
	}
	if p.GivenName != "" {
		score++
	}
	if p.Occupation != "" {
		score++
	}

	switch {
	case score >= 8:
		return QualityGood
	case score >= 4:
		return QualityPartial
	default:
		return QualityMinimal
	}
}
