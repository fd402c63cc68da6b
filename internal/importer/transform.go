package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opsboard/bulk_importer/internal/domain"
)

// one pure transformer per import type; input is assumed to have passed the
// matching validator, so no error reporting happens here. Organization and
// owner ids always come from the arguments, never from the uploaded data.

func transformUser(rec domain.RawRecord, orgID, actingUserID string) domain.Record {
	return &domain.User{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Email:          strings.ToLower(field(rec, "email")),
		FirstName:      field(rec, "first_name"),
		LastName:       field(rec, "last_name"),
		Role:           enumOrDefault(rec, "role", "member"),
		Department:     field(rec, "department"),
		IsActive:       true,
		CreatedBy:      actingUserID,
	}
}

func transformScorecard(rec domain.RawRecord, orgID, actingUserID string) domain.Record {
	return &domain.Scorecard{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Name:           field(rec, "name"),
		Description:    field(rec, "description"),
		Frequency:      enumOrDefault(rec, "frequency", "weekly"),
		Goal:           field(rec, "goal"),
		Unit:           field(rec, "unit"),
		OwnerID:        actingUserID,
	}
}

func transformRock(rec domain.RawRecord, orgID, actingUserID string) domain.Record {
	quarter, _ := strconv.Atoi(field(rec, "quarter"))
	year, _ := strconv.Atoi(field(rec, "year"))

	return &domain.Rock{
		ID:                   uuid.NewString(),
		OrganizationID:       orgID,
		Title:                field(rec, "title"),
		Description:          field(rec, "description"),
		Quarter:              quarter,
		Year:                 year,
		Priority:             enumOrDefault(rec, "priority", "medium"),
		Status:               enumOrDefault(rec, "status", "not_started"),
		CompletionPercentage: intOrDefault(rec, "completion_percentage", 0),
		DueDate:              normalizeDate(field(rec, "due_date")),
		OwnerID:              actingUserID,
	}
}

func transformTodo(rec domain.RawRecord, orgID, actingUserID string) domain.Record {
	return &domain.Todo{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Title:          field(rec, "title"),
		Description:    field(rec, "description"),
		Priority:       enumOrDefault(rec, "priority", "medium"),
		Status:         enumOrDefault(rec, "status", "pending"),
		DueDate:        normalizeDate(field(rec, "due_date")),
		OwnerID:        actingUserID,
	}
}

func transformIssue(rec domain.RawRecord, orgID, actingUserID string) domain.Record {
	return &domain.Issue{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Title:          field(rec, "title"),
		Description:    field(rec, "description"),
		Priority:       enumOrDefault(rec, "priority", "medium"),
		Status:         enumOrDefault(rec, "status", "open"),
		OwnerID:        actingUserID,
	}
}

func transformMeeting(rec domain.RawRecord, orgID, actingUserID string) domain.Record {
	return &domain.Meeting{
		ID:              uuid.NewString(),
		OrganizationID:  orgID,
		Title:           field(rec, "title"),
		Description:     field(rec, "description"),
		MeetingType:     enumOrDefault(rec, "meeting_type", "level_10"),
		ScheduledDate:   normalizeDate(field(rec, "scheduled_date")),
		DurationMinutes: intOrDefault(rec, "duration_minutes", 90),
		OwnerID:         actingUserID,
	}
}

func transformProcess(rec domain.RawRecord, orgID, actingUserID string) domain.Record {
	return &domain.Process{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Name:           field(rec, "name"),
		Description:    field(rec, "description"),
		Category:       field(rec, "category"),
		Status:         enumOrDefault(rec, "status", "draft"),
		OwnerID:        actingUserID,
	}
}

func field(rec domain.RawRecord, name string) string {
	return strings.TrimSpace(rec[name])
}

func enumOrDefault(rec domain.RawRecord, name, def string) string {
	if v := field(rec, name); v != "" {
		return strings.ToLower(v)
	}

	return def
}

func intOrDefault(rec domain.RawRecord, name string, def int) int {
	v := field(rec, name)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

var dateLayouts = []string{"2006-01-02", "01/02/2006", "02.01.2006", "2006/01/02"}

// normalizeDate brings a handful of common date shapes to YYYY-MM-DD.
// Unparseable input collapses to the empty string, which the record layer
// stores as NULL.
func normalizeDate(s string) string {
	if s == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return ""
}
