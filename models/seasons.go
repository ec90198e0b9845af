package models

// Indian cropping seasons
const (
	SeasonKharif = "Kharif"
	SeasonRabi   = "Rabi"
	SeasonSummer = "Summer"
)

// SeasonForMonth maps a calendar month to the cropping season it falls in:
// Kharif Jun-Sep, Rabi Oct-Jan, Summer Feb-May.
func SeasonForMonth(month int) string {
	switch {
	case month >= 6 && month <= 9:
		return SeasonKharif
	case month >= 10 || month == 1:
		return SeasonRabi
	default:
		return SeasonSummer
	}
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the English month name for 1-12, empty string otherwise.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}
