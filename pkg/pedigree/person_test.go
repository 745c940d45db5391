package pedigree

import (
	"testing"
	"time"
)

func TestEventDateYearOrZero(t *testing.T) {
	tests := []struct {
		name string
		date EventDate
		want int
	}{
		{name: "Empty", date: EventDate{}, want: 0},
		{name: "YearOnly", date: EventDate{Year: 1893}, want: 1893},
		{
			name: "FullDate",
			date: EventDate{Date: time.Date(1893, time.May, 15, 0, 0, 0, 0, time.UTC)},
			want: 1893,
		},
		{
			name: "YearWinsOverDate",
			date: EventDate{Year: 1894, Date: time.Date(1893, time.May, 15, 0, 0, 0, 0, time.UTC)},
			want: 1894,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.YearOrZero(); got != tt.want {
				t.Errorf("YearOrZero() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAgeAtDeath(t *testing.T) {
	tests := []struct {
		name   string
		person Person
		want   int
		wantOK bool
	}{
		{
			name:   "NoData",
			person: Person{},
			wantOK: false,
		},
		{
			name:   "BirthOnly",
			person: Person{Birth: EventDate{Year: 1900}},
			wantOK: false,
		},
		{
			name:   "YearsOnly",
			person: Person{Birth: EventDate{Year: 1900}, Death: EventDate{Year: 1975}},
			want:   75,
			wantOK: true,
		},
		{
			name: "BirthdayNotReached",
			person: Person{
				Birth: EventDate{Date: time.Date(1900, time.October, 5, 0, 0, 0, 0, time.UTC), Year: 1900},
				Death: EventDate{Date: time.Date(1975, time.March, 1, 0, 0, 0, 0, time.UTC), Year: 1975},
			},
			want:   74,
			wantOK: true,
		},
		{
			name: "BirthdayReached",
			person: Person{
				Birth: EventDate{Date: time.Date(1900, time.March, 1, 0, 0, 0, 0, time.UTC), Year: 1900},
				Death: EventDate{Date: time.Date(1975, time.October, 5, 0, 0, 0, 0, time.UTC), Year: 1975},
			},
			want:   75,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.person.AgeAtDeath()
			if ok != tt.wantOK {
				t.Fatalf("AgeAtDeath() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("AgeAtDeath() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQuality(t *testing.T) {
	tests := []struct {
		name   string
		person Person
		want   DataQuality
	}{
		{
			name:   "BareRecord",
			person: Person{ID: "@I1@", Name: "Иванов"},
			want:   QualityMinimal,
		},
		{
			name: "YearAndSurname",
			person: Person{
				Birth:   EventDate{Year: 1850},
				Surname: "Иванов",
			},
			want: QualityMinimal,
		},
		{
			name: "PartialRecord",
			person: Person{
				Birth:      EventDate{Year: 1850},
				Surname:    "Иванов",
				GivenName:  "Пётр",
				Occupation: "крестьянин",
			},
			want: QualityPartial,
		},
		{
			name: "FullRecord",
			person: Person{
				Birth:      EventDate{Date: time.Date(1850, time.May, 1, 0, 0, 0, 0, time.UTC), Year: 1850},
				Death:      EventDate{Year: 1910},
				BirthPlace: "с. Высокое",
				Surname:    "Иванов",
				GivenName:  "Пётр",
			},
			want: QualityGood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.person.Quality(); got != tt.want {
				t.Errorf("Quality() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYear(t *testing.T) {
	p := Person{Death: EventDate{Year: 1910}}
	if got := p.Year(); got != 1910 {
		t.Errorf("Year() = %d, want death year fallback 1910", got)
	}
	p.Birth = EventDate{Year: 1850}
	if got := p.Year(); got != 1850 {
		t.Errorf("Year() = %d, want birth year 1850", got)
	}
}
