// Package gedcom reads GEDCOM 5.5 files into a [pedigree.Store].
//
// The parser is line-oriented: each line is "level [@xref@] TAG [value]".
// Individual (INDI) and family (FAM) records are extracted with the facts
// the analysis packages consume - names, sex, birth/death/christening dates
// and places, occupations, residences, notes, and godparent associations.
// Unknown tags are skipped, so files from any GEDCOM producer load without
// errors.
package gedcom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

// linePattern splits a GEDCOM line into level, optional xref, tag, value.
var linePattern = regexp.MustCompile(`^(\d+)\s+(?:(@[^@]+@)\s+)?(\w+)\s*(.*)$`)

// event is the sub-record context the parser is inside (BIRT, DEAT, ...).
type event int

const (
	evNone event = iota
	evBirth
	evDeath
	evChristening
	evMarriage
	evResidence
	evAssociation
)

// parser accumulates one INDI or FAM record at a time and flushes it into
// the store when the next level-0 line starts.
type parser struct {
	store *pedigree.Store

	person *pedigree.Person
	family *pedigree.Family

	ev     event
	resi   pedigree.Residence
	assoID string
}

// ParseFile reads a GEDCOM file from disk.
func ParseFile(path string) (*pedigree.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads GEDCOM records from r and returns the populated store.
func Parse(r io.Reader) (*pedigree.Store, error) {
	p := &parser{store: pedigree.New()}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		// Byte order mark on the first line.
		line = strings.TrimPrefix(line, "\uFEFF")
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		level, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad level %q", lineNo, m[1])
		}
		p.consume(level, m[2], m[3], strings.TrimSpace(m[4]))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if err := p.flush(); err != nil {
		return nil, err
	}
	return p.store, nil
}

func (p *parser) consume(level int, xref, tag, value string) {
	if level == 0 {
		_ = p.flush()
		switch tag {
		case "INDI":
			p.person = &pedigree.Person{ID: xref}
		case "FAM":
			p.family = &pedigree.Family{ID: xref}
		}
		return
	}

	switch {
	case p.person != nil:
		p.consumeIndi(level, tag, value)
	case p.family != nil:
		p.consumeFam(level, tag, value)
	}
}

// flush stores the record under construction. Duplicate IDs keep the first
// record seen, matching how most GEDCOM consumers behave.
func (p *parser) flush() error {
	p.finishEvent()
	var err error
	if p.person != nil {
		if p.person.GivenName == "" {
			p.person.GivenName = givenName(p.person.Name)
		}
		if p.person.Patronymic == "" {
			p.person.Patronymic = patronymic(p.person.Name)
		}
		err = p.store.AddPerson(p.person)
	} else if p.family != nil {
		err = p.store.AddFamily(p.family)
	}
	p.person, p.family = nil, nil
	return err
}

// finishEvent commits any open residence sub-record and resets the event
// context.
func (p *parser) finishEvent() {
	if p.ev == evResidence && p.person != nil && (p.resi.Place != "" || p.resi.Date != "") {
		p.person.Residences = append(p.person.Residences, p.resi)
	}
	p.resi = pedigree.Residence{}
	p.assoID = ""
	p.ev = evNone
}

func (p *parser) consumeIndi(level int, tag, value string) {
	if level == 1 {
		p.finishEvent()
		switch tag {
		case "NAME":
			p.person.Name = strings.Join(strings.Fields(strings.ReplaceAll(value, "/", " ")), " ")
			if p.person.Surname == "" {
				p.person.Surname = surname(value)
			}
		case "SEX":
			switch value {
			case "M":
				p.person.Sex = pedigree.SexMale
			case "F":
				p.person.Sex = pedigree.SexFemale
			}
		case "BIRT":
			p.ev = evBirth
		case "DEAT":
			p.ev = evDeath
		case "CHR":
			p.ev = evChristening
		case "RESI":
			p.ev = evResidence
		case "ASSO":
			p.ev = evAssociation
			p.assoID = value
		case "FAMC":
			p.person.ChildIn = value
		case "FAMS":
			p.person.SpouseIn = append(p.person.SpouseIn, value)
		case "OCCU":
			p.person.Occupation = value
		case "NOTE":
			p.person.Notes = append(p.person.Notes, value)
		}
		return
	}

	switch tag {
	case "GIVN":
		if fields := strings.Fields(value); len(fields) > 0 {
			p.person.GivenName = fields[0]
		}
	case "SURN":
		p.person.Surname = value
	case "DATE":
		switch p.ev {
		case evBirth:
			p.person.Birth = parseDate(value)
		case evDeath:
			p.person.Death = parseDate(value)
		case evChristening:
			p.person.Christening = parseDate(value)
		case evResidence:
			p.resi.Date = value
		}
	case "PLAC":
		switch p.ev {
		case evBirth:
			p.person.BirthPlace = value
		case evDeath:
			p.person.DeathPlace = value
		case evResidence:
			p.resi.Place = value
		}
	case "CAUS":
		if p.ev == evDeath {
			p.person.DeathCause = value
		}
	case "RELA":
		if p.ev == evAssociation && p.assoID != "" && isGodparent(value) {
			p.person.Godparents = append(p.person.Godparents, p.assoID)
		}
	case "LATI":
		if p.ev == evResidence {
			p.resi.Lat = value
		}
	case "LONG":
		if p.ev == evResidence {
			p.resi.Lon = value
		}
	}
}

func (p *parser) consumeFam(level int, tag, value string) {
	if level == 1 {
		p.finishEvent()
		switch tag {
		case "HUSB":
			p.family.Father = value
		case "WIFE":
			p.family.Mother = value
		case "CHIL":
			p.family.Children = append(p.family.Children, value)
		case "MARR":
			p.ev = evMarriage
		case "DIV":
			p.ev = evNone
		}
		return
	}

	if p.ev == evMarriage {
		switch tag {
		case "DATE":
			p.family.Marriage = parseDate(value)
		case "PLAC":
			p.family.MarriagePlace = value
		}
	}
}

// isGodparent matches the RELA descriptions used for godparent links in
// both English and Russian records.
func isGodparent(rela string) bool {
	lower := strings.ToLower(rela)
	return strings.Contains(lower, "godp") ||
		strings.Contains(lower, "крёстн") ||
		strings.Contains(lower, "крестн") ||
		strings.Contains(lower, "кресн")
}
