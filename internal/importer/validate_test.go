package importer_test

import (
	"testing"

	"github.com/opsboard/bulk_importer/internal/domain"
	"github.com/opsboard/bulk_importer/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validatorFor(t *testing.T, typ domain.ImportType) importer.ValidateFunc {
	t.Helper()

	desc, err := importer.NewRegistry().Lookup(typ)
	require.NoError(t, err)

	return desc.Validate
}

func TestValidate_RequiredFieldsAllTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ      domain.ImportType
		required []string
	}{
		{domain.TypeUsers, []string{"email", "first_name", "last_name"}},
		{domain.TypeScorecards, []string{"name"}},
		{domain.TypeRocks, []string{"title", "quarter", "year"}},
		{domain.TypeTodos, []string{"title"}},
		{domain.TypeIssues, []string{"title"}},
		{domain.TypeMeetings, []string{"title"}},
		{domain.TypeProcesses, []string{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			t.Parallel()

			validate := validatorFor(t, tt.typ)
			errs := validate(domain.RawRecord{}, 3)

			require.Len(t, errs, len(tt.required))
			for i, field := range tt.required {
				assert.Equal(t, 3, errs[i].Row)
				assert.Contains(t, errs[i].Message, field+" is required")
			}
		})
	}
}

func TestValidateUsers(t *testing.T) {
	t.Parallel()

	validate := validatorFor(t, domain.TypeUsers)

	valid := domain.RawRecord{"email": "sam@example.com", "first_name": "Sam", "last_name": "Lee"}
	assert.Empty(t, validate(valid, 1))

	badEmail := domain.RawRecord{"email": "not-an-email", "first_name": "Sam", "last_name": "Lee"}
	errs := validate(badEmail, 2)
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Row)
	assert.Contains(t, errs[0].Message, "email")
}

func TestValidateScorecards(t *testing.T) {
	t.Parallel()

	validate := validatorFor(t, domain.TypeScorecards)

	assert.Empty(t, validate(domain.RawRecord{"name": "New leads", "frequency": "Weekly"}, 1))

	errs := validate(domain.RawRecord{"name": "New leads", "frequency": "hourly"}, 1)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "frequency must be one of")
}

func TestValidateRocks_ConcreteScenario(t *testing.T) {
	t.Parallel()

	validate := validatorFor(t, domain.TypeRocks)

	rows := []domain.RawRecord{
		{"title": "A", "quarter": "1", "year": "2024"},
		{"title": "", "quarter": "5", "year": "2024"},
		{"title": "C", "quarter": "2", "year": "1999"},
	}

	var errs []domain.RowError
	for i, rec := range rows {
		errs = append(errs, validate(rec, i+1)...)
	}

	require.Len(t, errs, 3)
	assert.Equal(t, 2, errs[0].Row)
	assert.Contains(t, errs[0].Message, "title is required")
	assert.Equal(t, 2, errs[1].Row)
	assert.Contains(t, errs[1].Message, "quarter must be an integer between 1 and 4")
	assert.Equal(t, 3, errs[2].Row)
	assert.Contains(t, errs[2].Message, "year must be an integer between 2020 and 2030")
}

func TestValidateRocks_CompletionPercentage(t *testing.T) {
	t.Parallel()

	validate := validatorFor(t, domain.TypeRocks)

	base := domain.RawRecord{"title": "A", "quarter": "1", "year": "2024"}
	assert.Empty(t, validate(base, 1))

	base["completion_percentage"] = "50"
	assert.Empty(t, validate(base, 1))

	base["completion_percentage"] = "101"
	errs := validate(base, 1)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "completion_percentage must be an integer between 0 and 100")
}

func TestValidateTodos(t *testing.T) {
	t.Parallel()

	validate := validatorFor(t, domain.TypeTodos)

	assert.Empty(t, validate(domain.RawRecord{"title": "Call vendor", "priority": "URGENT", "status": "Pending"}, 1))

	errs := validate(domain.RawRecord{"title": "Call vendor", "priority": "severe", "status": "paused"}, 4)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Message, "priority must be one of: low, medium, high, urgent")
	assert.Contains(t, errs[1].Message, "status must be one of: pending, in_progress, completed, cancelled")
}

func TestValidateIssues(t *testing.T) {
	t.Parallel()

	validate := validatorFor(t, domain.TypeIssues)

	assert.Empty(t, validate(domain.RawRecord{"title": "Backlog", "priority": "critical", "status": "open"}, 1))

	errs := validate(domain.RawRecord{"title": "Backlog", "priority": "urgent"}, 1)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "priority must be one of: low, medium, high, critical")
}

func TestValidateMeetings(t *testing.T) {
	t.Parallel()

	validate := validatorFor(t, domain.TypeMeetings)

	assert.Empty(t, validate(domain.RawRecord{"title": "L10", "meeting_type": "level_10", "duration_minutes": "90"}, 1))

	errs := validate(domain.RawRecord{"title": "L10", "duration_minutes": "-5"}, 1)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "duration_minutes must be a positive integer")
}

func TestValidateProcesses(t *testing.T) {
	t.Parallel()

	validate := validatorFor(t, domain.TypeProcesses)

	assert.Empty(t, validate(domain.RawRecord{"name": "Onboarding", "status": "documented"}, 1))

	errs := validate(domain.RawRecord{"name": "Onboarding", "status": "live"}, 1)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "status must be one of: draft, documented, archived")
}

func TestValidate_NeverPanicsOnWeirdInput(t *testing.T) {
	t.Parallel()

	registry := importer.NewRegistry()
	weird := domain.RawRecord{"unexpected": "value", "title": "x", "name": "y",
		"email": "a@b.co", "first_name": "a", "last_name": "b", "quarter": "abc", "year": ""}

	for _, desc := range registry.Types() {
		assert.NotPanics(t, func() {
			desc.Validate(weird, 1)
			desc.Validate(nil, 1)
		})
	}
}
