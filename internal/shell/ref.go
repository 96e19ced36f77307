package shell

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrPositionRequired indicates a command was given no task number.
var ErrPositionRequired = errors.New("task number required")

// parsePosition reads the one-based task number in args[0] and returns
// the matching zero-based index. Numbers past either end are returned as
// is; the store ignores them.
func parsePosition(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrPositionRequired
	}
	if !isAllDigits(args[0]) {
		return 0, fmt.Errorf("invalid task number: %s", args[0])
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task number: %s", args[0])
	}
	return n - 1, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
