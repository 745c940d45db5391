package pedigree

// Family is a union record: an optional father, an optional mother, and
// the children of the union. A family with neither parent known is legal
// and records an orphaned sibling group.
type Family struct {
	ID       string // unique record identifier (e.g., "@F1@")
	Father   string // person ID, empty if unknown
	Mother   string // person ID, empty if unknown
	Children []string

	Marriage      EventDate
	MarriagePlace string
	Divorce       EventDate
}

// HasBothSpouses reports whether both the father and mother are recorded.
func (f *Family) HasBothSpouses() bool { return f.Father != "" && f.Mother != "" }
