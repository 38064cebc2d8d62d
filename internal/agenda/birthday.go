package agenda

import "time"

// BirthdayOccurrence returns the date a birthday falls on in targetYear:
// the birth month and day with the year replaced. The caller always names
// the year; nothing here reads the wall clock, so month navigation across
// year boundaries resolves against the displayed year, not "now".
//
// A 29 February birthdate clamps to 28 February in non-leap target years.
// Letting time.Date normalize would silently shift the party to 1 March; we
// keep it inside February so the occurrence stays in the birth month.
func BirthdayOccurrence(birthdate time.Time, targetYear int) time.Time {
	month, day := birthdate.Month(), birthdate.Day()
	if month == time.February && day == 29 && !isLeapYear(targetYear) {
		day = 28
	}
	return time.Date(targetYear, month, day, 0, 0, 0, 0, birthdate.Location())
}

// Age returns the age turned at the occurrence in targetYear.
func Age(birthdate time.Time, targetYear int) int {
	return targetYear - birthdate.Year()
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
