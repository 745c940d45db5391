package gedcom

import (
	"regexp"
	"strings"
)

var (
	// The surname is enclosed in slashes in NAME values, e.g.
	// "Иван /Петров/" or "John /Smith/".
	surnamePattern = regexp.MustCompile(`/[^/]*/`)

	// Russian patronymics end in a small set of suffixes (-вич, -вна, ...).
	patronymicPattern = regexp.MustCompile(`(?i)(евич|евна|ович|овна|вич|вна|ична|ич)$`)
)

// surname extracts the slash-delimited surname from a NAME value.
func surname(fullName string) string {
	m := surnamePattern.FindString(fullName)
	return strings.TrimSpace(strings.Trim(m, "/"))
}

// givenName extracts the first given name from a full NAME value,
// dropping the slash-delimited surname.
func givenName(fullName string) string {
	name := strings.TrimSpace(surnamePattern.ReplaceAllString(fullName, ""))
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// patronymic extracts the patronymic from a full NAME value by suffix.
// Returns "" when no word after the given name looks like a patronymic.
func patronymic(fullName string) string {
	name := strings.TrimSpace(surnamePattern.ReplaceAllString(fullName, ""))
	parts := strings.Fields(name)
	for _, part := range parts[min(1, len(parts)):] {
		if patronymicPattern.MatchString(part) {
			return part
		}
	}
	return ""
}
