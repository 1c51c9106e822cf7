package domain

import (
	"errors"
	"fmt"
	"time"
)

const dateLayout = "01/02/2006"

// FilterSet is the complete, validated set of search criteria for one fetch
// run. It is built once by the interactive collector, confirmed by the user,
// and read-only after that.
type FilterSet struct {
	Keyword    string
	City       string
	County     string
	PermitType string
	ScoreLow   int
	ScoreHigh  int
	StartDate  string // MM/DD/YYYY
	EndDate    string // MM/DD/YYYY, always the day of the run
}

// FormatStartDate reformats digits-only MMDDYYYY input to MM/DD/YYYY and
// rejects anything that is not a real calendar date (month 13, Feb 30, ...).
func FormatStartDate(raw string) (string, error) {
	if len(raw) != 8 {
		return "", fmt.Errorf("enter the date as 8 digits, MMDDYYYY")
	}
	formatted := raw[:2] + "/" + raw[2:4] + "/" + raw[4:]
	if _, err := time.Parse(dateLayout, formatted); err != nil {
		return "", fmt.Errorf("%s is not a valid date", formatted)
	}
	return formatted, nil
}

var (
	ErrScoreOutOfRange = errors.New("scores must be between 0 and 100")
	ErrScoreOrder      = errors.New("highest score cannot be lower than the lowest score")
)

// ValidateScoreRange checks both bounds are in 0..100 and low <= high.
func ValidateScoreRange(low, high int) error {
	if low < 0 || low > 100 || high < 0 || high > 100 {
		return ErrScoreOutOfRange
	}
	if low > high {
		return ErrScoreOrder
	}
	return nil
}

// Today returns the current date in the MM/DD/YYYY form the API expects.
func Today() string {
	return time.Now().Format(dateLayout)
}
