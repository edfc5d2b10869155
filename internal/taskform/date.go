package taskform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"taskfront/internal/models"
)

// Years that fit the four-digit YYYY-MM-DD wire form.
const (
	minDueYear = 0
	maxDueYear = 9999
)

var (
	// ErrPartialDate reports that only some of day, month and year were given.
	ErrPartialDate = errors.New("due date is incomplete")
	// ErrInvalidDate reports a date that is not a real calendar date.
	ErrInvalidDate = errors.New("due date is not a valid date")
)

// ValidateCalendarDate reports whether year, month and day name a real
// Gregorian date. Month is 1-based.
func ValidateCalendarDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return date.Year() == year && int(date.Month()) == month && date.Day() == day
}

// AssembleDueDate joins split date fields into a YYYY-MM-DD string.
//
// All fields blank means no due date and returns "", nil. Otherwise the
// fields must all be present and form a real date; failures wrap
// ErrPartialDate or ErrInvalidDate and return an empty date.
func AssembleDueDate(year, month, day string) (string, error) {
	year = strings.TrimSpace(year)
	month = strings.TrimSpace(month)
	day = strings.TrimSpace(day)

	if year == "" && month == "" && day == "" {
		return "", nil
	}
	if year == "" || month == "" || day == "" {
		return "", ErrPartialDate
	}

	y, err := parseDatePart("year", year)
	if err != nil {
		return "", err
	}
	m, err := parseDatePart("month", month)
	if err != nil {
		return "", err
	}
	d, err := parseDatePart("day", day)
	if err != nil {
		return "", err
	}

	if y < minDueYear || y > maxDueYear {
		return "", fmt.Errorf("%w: year %d is outside %d..%d", ErrInvalidDate, y, minDueYear, maxDueYear)
	}
	if !ValidateCalendarDate(y, m, d) {
		return "", fmt.Errorf("%w: %s-%s-%s", ErrInvalidDate, year, month, day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), nil
}

// SplitDueDate breaks a YYYY-MM-DD date into its year, month and day parts.
// Unset or malformed dates yield empty parts.
func SplitDueDate(dueDate string) (year, month, day string) {
	dueDate = strings.TrimSpace(dueDate)
	if dueDate == "" {
		return "", "", ""
	}
	if _, err := time.Parse(models.DueDateLayout, dueDate); err != nil {
		return "", "", ""
	}
	parts := strings.SplitN(dueDate, "-", 3)
	return parts[0], parts[1], parts[2]
}

func parseDatePart(name, raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidDate, name, raw)
	}
	return value, nil
}
