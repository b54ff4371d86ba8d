package validation

import (
	"fmt"
	"regexp"
	"strconv"
)

// Validation rule patterns
var (
	// Academic year label, e.g. "2024-2025"
	AcademicYearPattern = `^\d{4}-\d{4}$`
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	AcademicYear *regexp.Regexp
}{
	AcademicYear: regexp.MustCompile(AcademicYearPattern),
}

// ValidateAcademicYear checks the "YYYY-YYYY" label and that the second
// year is exactly the first plus one. Returns the first year on success.
func ValidateAcademicYear(year string) (int, error) {
	if !CompiledPatterns.AcademicYear.MatchString(year) {
		return 0, fmt.Errorf("academic year must match YYYY-YYYY, got %q", year)
	}

	first, _ := strconv.Atoi(year[:4])
	second, _ := strconv.Atoi(year[5:])
	if second != first+1 {
		return 0, fmt.Errorf("academic year %q must span consecutive years", year)
	}

	return first, nil
}

// ValidateMonth checks that month is a calendar month number.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	return nil
}
