package agenda

import (
	"testing"
	"time"
)

func TestBirthdayOccurrence(t *testing.T) {
	tests := []struct {
		name      string
		birthdate string
		year      int
		want      string
	}{
		{"same month and day", "1990-03-10", 2024, "2024-03-10"},
		{"past year target", "1990-03-10", 1995, "1995-03-10"},
		{"future year target", "1990-03-10", 2031, "2031-03-10"},
		{"leap day in leap year", "2000-02-29", 2024, "2024-02-29"},
		{"leap day clamps in non-leap year", "2000-02-29", 2023, "2023-02-28"},
		{"leap day clamps in century year", "2000-02-29", 2100, "2100-02-28"},
		{"leap day kept in 400-year leap", "2000-02-29", 2400, "2400-02-29"},
		{"dec 31", "1985-12-31", 2024, "2024-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			birth, err := time.ParseInLocation("2006-01-02", tt.birthdate, time.Local)
			if err != nil {
				t.Fatalf("parse birthdate: %v", err)
			}
			got := BirthdayOccurrence(birth, tt.year)
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("BirthdayOccurrence(%s, %d) = %s, want %s", tt.birthdate, tt.year, got.Format("2006-01-02"), tt.want)
			}
			if got.Year() != tt.year {
				t.Errorf("occurrence year = %d, want %d", got.Year(), tt.year)
			}
		})
	}
}

func TestAge(t *testing.T) {
	birth := time.Date(1990, 3, 10, 0, 0, 0, 0, time.Local)
	if got := Age(birth, 2024); got != 34 {
		t.Errorf("Age = %d, want 34", got)
	}
	if got := Age(birth, 1990); got != 0 {
		t.Errorf("Age in birth year = %d, want 0", got)
	}
}
