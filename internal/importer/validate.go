package importer

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/opsboard/bulk_importer/internal/domain"
)

// one pure validator per import type; row is the 1-based data row number and
// every violated rule appends exactly one error, so callers can count on
// field-named, row-numbered messages

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateUsers(rec domain.RawRecord, row int) []domain.RowError {
	errs := requireFields(nil, rec, row, "email", "first_name", "last_name")

	if email := strings.TrimSpace(rec["email"]); email != "" && !emailRegexp.MatchString(email) {
		errs = append(errs, domain.RowError{Row: row, Message: fmt.Sprintf("email %q is not a valid address", email)})
	}

	return errs
}

func validateScorecards(rec domain.RawRecord, row int) []domain.RowError {
	errs := requireFields(nil, rec, row, "name")
	errs = checkEnum(errs, rec, row, "frequency", "daily", "weekly", "monthly", "quarterly")

	return errs
}

func validateRocks(rec domain.RawRecord, row int) []domain.RowError {
	errs := requireFields(nil, rec, row, "title", "quarter", "year")
	errs = checkIntRange(errs, rec, row, "quarter", 1, 4)
	errs = checkIntRange(errs, rec, row, "year", 2020, 2030)
	errs = checkIntRange(errs, rec, row, "completion_percentage", 0, 100)

	return errs
}

func validateTodos(rec domain.RawRecord, row int) []domain.RowError {
	errs := requireFields(nil, rec, row, "title")
	errs = checkEnum(errs, rec, row, "priority", "low", "medium", "high", "urgent")
	errs = checkEnum(errs, rec, row, "status", "pending", "in_progress", "completed", "cancelled")

	return errs
}

func validateIssues(rec domain.RawRecord, row int) []domain.RowError {
	errs := requireFields(nil, rec, row, "title")
	errs = checkEnum(errs, rec, row, "priority", "low", "medium", "high", "critical")
	errs = checkEnum(errs, rec, row, "status", "open", "in_progress", "resolved", "closed")

	return errs
}

func validateMeetings(rec domain.RawRecord, row int) []domain.RowError {
	errs := requireFields(nil, rec, row, "title")
	errs = checkEnum(errs, rec, row, "meeting_type", "level_10", "quarterly", "annual", "one_on_one")

	if v := strings.TrimSpace(rec["duration_minutes"]); v != "" {
		if n, err := strconv.Atoi(v); err != nil || n <= 0 {
			errs = append(errs, domain.RowError{Row: row, Message: "duration_minutes must be a positive integer"})
		}
	}

	return errs
}

func validateProcesses(rec domain.RawRecord, row int) []domain.RowError {
	errs := requireFields(nil, rec, row, "name")
	errs = checkEnum(errs, rec, row, "status", "draft", "documented", "archived")

	return errs
}

func requireFields(errs []domain.RowError, rec domain.RawRecord, row int, fields ...string) []domain.RowError {
	for _, field := range fields {
		if strings.TrimSpace(rec[field]) == "" {
			errs = append(errs, domain.RowError{Row: row, Message: field + " is required"})
		}
	}

	return errs
}

// checkEnum accepts the allowed values case-insensitively and ignores blank
// values, which stay subject only to requireFields.
func checkEnum(errs []domain.RowError, rec domain.RawRecord, row int, field string, allowed ...string) []domain.RowError {
	v := strings.TrimSpace(rec[field])
	if v == "" {
		return errs
	}

	if !slices.Contains(allowed, strings.ToLower(v)) {
		errs = append(errs, domain.RowError{
			Row:     row,
			Message: fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")),
		})
	}

	return errs
}

func checkIntRange(errs []domain.RowError, rec domain.RawRecord, row int, field string, min, max int) []domain.RowError {
	v := strings.TrimSpace(rec[field])
	if v == "" {
		return errs
	}

	if n, err := strconv.Atoi(v); err != nil || n < min || n > max {
		errs = append(errs, domain.RowError{
			Row:     row,
			Message: fmt.Sprintf("%s must be an integer between %d and %d", field, min, max),
		})
	}

	return errs
}
