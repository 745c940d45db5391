package gedcom

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

// julianEscape marks a date recorded in the Julian calendar. Russian
// records before 1918 use it throughout.
const julianEscape = "@#DJULIAN@"

var months = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

var (
	// Qualifiers like "ABT 1893" or "BET 1890 AND 1895" are stripped; the
	// remaining tokens are parsed as an ordinary date.
	dateModifiers = regexp.MustCompile(`\b(ABT|BEF|AFT|EST|CAL|FROM|TO|BET|AND)\b`)

	fullDatePattern  = regexp.MustCompile(`(\d{1,2})\s+([A-Z]{3})\s+(\d{4})`)
	monthYearPattern = regexp.MustCompile(`^([A-Z]{3})\s+(\d{4})`)
	yearPattern      = regexp.MustCompile(`(\d{4})`)
)

// parseDate interprets a GEDCOM DATE value. It accepts full dates
// ("15 MAY 1893"), month-year ("MAY 1893"), and bare years ("1893"),
// tolerating approximation qualifiers. An unparseable value yields a zero
// EventDate; partial dates keep whatever precision was present.
func parseDate(value string) pedigree.EventDate {
	d := pedigree.EventDate{Julian: strings.Contains(value, julianEscape)}

	clean := strings.TrimSpace(strings.ReplaceAll(value, julianEscape, ""))
	clean = strings.TrimSpace(dateModifiers.ReplaceAllString(clean, ""))
	if clean == "" {
		return d
	}

	if m := fullDatePattern.FindStringSubmatch(clean); m != nil {
		if month, ok := months[m[2]]; ok {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[3])
			if t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC); t.Day() == day {
				d.Date = t
				d.Year = year
				return d
			}
		}
	}
	if m := monthYearPattern.FindStringSubmatch(clean); m != nil {
		if _, ok := months[m[1]]; ok {
			d.Year, _ = strconv.Atoi(m[2])
			return d
		}
	}
	if m := yearPattern.FindStringSubmatch(clean); m != nil {
		d.Year, _ = strconv.Atoi(m[1])
	}
	return d
}
