package importer

import (
	"fmt"
	"reflect"

	"github.com/jszwec/csvutil"
	"github.com/opsboard/bulk_importer/internal/domain"
)

type ValidateFunc func(rec domain.RawRecord, row int) []domain.RowError

type TransformFunc func(rec domain.RawRecord, orgID, actingUserID string) domain.Record

// Descriptor bundles everything the importer knows about one entity type.
// Adding a type means adding one entry to NewRegistry, nothing else.
type Descriptor struct {
	Type           domain.ImportType
	Name           string
	Description    string
	RequiredFields []string
	OptionalFields []string

	// Sample is a csv-tagged struct holding one illustrative row. Both the
	// downloadable template and the sampleData shown in type listings are
	// generated from it, so templates cannot drift from the field schema.
	Sample any

	Validate  ValidateFunc
	Transform TransformFunc
}

// Fields returns the full header set, required first.
func (d Descriptor) Fields() []string {
	fields := make([]string, 0, len(d.RequiredFields)+len(d.OptionalFields))
	fields = append(fields, d.RequiredFields...)
	fields = append(fields, d.OptionalFields...)

	return fields
}

// Template renders the downloadable blank template: header row plus the
// sample row.
func (d Descriptor) Template() ([]byte, error) {
	rows := reflect.MakeSlice(reflect.SliceOf(reflect.TypeOf(d.Sample)), 0, 1)
	rows = reflect.Append(rows, reflect.ValueOf(d.Sample))

	data, err := csvutil.Marshal(rows.Interface())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template for %q: %w", d.Type, err)
	}

	return data, nil
}

type Registry struct {
	descriptors map[domain.ImportType]Descriptor
	order       []domain.ImportType
}

func NewRegistry() *Registry {
	r := &Registry{descriptors: make(map[domain.ImportType]Descriptor)}

	r.register(Descriptor{
		Type:           domain.TypeUsers,
		Name:           "Team Members",
		Description:    "People to invite into the organization",
		RequiredFields: []string{"email", "first_name", "last_name"},
		OptionalFields: []string{"role", "department"},
		Sample: userSample{
			Email:      "jordan@example.com",
			FirstName:  "Jordan",
			LastName:   "Rivera",
			Role:       "member",
			Department: "Operations",
		},
		Validate:  validateUsers,
		Transform: transformUser,
	})

	r.register(Descriptor{
		Type:           domain.TypeScorecards,
		Name:           "Scorecards",
		Description:    "Weekly measurables tracked on the scorecard",
		RequiredFields: []string{"name"},
		OptionalFields: []string{"description", "frequency", "goal", "unit"},
		Sample: scorecardSample{
			Name:        "New leads",
			Description: "Qualified leads entering the funnel",
			Frequency:   "weekly",
			Goal:        "25",
			Unit:        "leads",
		},
		Validate:  validateScorecards,
		Transform: transformScorecard,
	})

	r.register(Descriptor{
		Type:           domain.TypeRocks,
		Name:           "Rocks",
		Description:    "Quarterly goals with an owner and a deadline",
		RequiredFields: []string{"title", "quarter", "year"},
		OptionalFields: []string{"description", "priority", "status", "completion_percentage", "due_date"},
		Sample: rockSample{
			Title:                "Launch customer portal",
			Quarter:              "2",
			Year:                 "2025",
			Description:          "Ship the self-service portal MVP",
			Priority:             "high",
			Status:               "on_track",
			CompletionPercentage: "40",
			DueDate:              "2025-06-30",
		},
		Validate:  validateRocks,
		Transform: transformRock,
	})

	r.register(Descriptor{
		Type:           domain.TypeTodos,
		Name:           "To-Dos",
		Description:    "Short-term action items",
		RequiredFields: []string{"title"},
		OptionalFields: []string{"description", "priority", "status", "due_date"},
		Sample: todoSample{
			Title:       "Send onboarding packet",
			Description: "Email the packet to the new hires",
			Priority:    "medium",
			Status:      "pending",
			DueDate:     "2025-03-14",
		},
		Validate:  validateTodos,
		Transform: transformTodo,
	})

	r.register(Descriptor{
		Type:           domain.TypeIssues,
		Name:           "Issues",
		Description:    "Obstacles raised for the issues list",
		RequiredFields: []string{"title"},
		OptionalFields: []string{"description", "priority", "status"},
		Sample: issueSample{
			Title:       "Support backlog growing",
			Description: "Ticket queue doubled over two weeks",
			Priority:    "high",
			Status:      "open",
		},
		Validate:  validateIssues,
		Transform: transformIssue,
	})

	r.register(Descriptor{
		Type:           domain.TypeMeetings,
		Name:           "Meetings",
		Description:    "Recurring and scheduled meetings",
		RequiredFields: []string{"title"},
		OptionalFields: []string{"description", "meeting_type", "scheduled_date", "duration_minutes"},
		Sample: meetingSample{
			Title:           "Leadership Level 10",
			Description:     "Weekly leadership meeting",
			MeetingType:     "level_10",
			ScheduledDate:   "2025-03-10",
			DurationMinutes: "90",
		},
		Validate:  validateMeetings,
		Transform: transformMeeting,
	})

	r.register(Descriptor{
		Type:           domain.TypeProcesses,
		Name:           "Processes",
		Description:    "Documented core processes",
		RequiredFields: []string{"name"},
		OptionalFields: []string{"description", "category", "status"},
		Sample: processSample{
			Name:        "Client onboarding",
			Description: "Steps from signed contract to kickoff",
			Category:    "sales",
			Status:      "documented",
		},
		Validate:  validateProcesses,
		Transform: transformProcess,
	})

	return r
}

func (r *Registry) register(d Descriptor) {
	r.descriptors[d.Type] = d
	r.order = append(r.order, d.Type)
}

// Types lists all descriptors in registration order.
func (r *Registry) Types() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.descriptors[t])
	}

	return out
}

func (r *Registry) Lookup(t domain.ImportType) (Descriptor, error) {
	d, ok := r.descriptors[t]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, t)
	}

	return d, nil
}

// sample row structs; csv tag order defines the template column order and
// must stay required-fields-first to match each descriptor's field lists

type userSample struct {
	Email      string `csv:"email"      json:"email"`
	FirstName  string `csv:"first_name" json:"first_name"`
	LastName   string `csv:"last_name"  json:"last_name"`
	Role       string `csv:"role"       json:"role"`
	Department string `csv:"department" json:"department"`
}

type scorecardSample struct {
	Name        string `csv:"name"        json:"name"`
	Description string `csv:"description" json:"description"`
	Frequency   string `csv:"frequency"   json:"frequency"`
	Goal        string `csv:"goal"        json:"goal"`
	Unit        string `csv:"unit"        json:"unit"`
}

type rockSample struct {
	Title                string `csv:"title"                 json:"title"`
	Quarter              string `csv:"quarter"               json:"quarter"`
	Year                 string `csv:"year"                  json:"year"`
	Description          string `csv:"description"           json:"description"`
	Priority             string `csv:"priority"              json:"priority"`
	Status               string `csv:"status"                json:"status"`
	CompletionPercentage string `csv:"completion_percentage" json:"completion_percentage"`
	DueDate              string `csv:"due_date"              json:"due_date"`
}

type todoSample struct {
	Title       string `csv:"title"       json:"title"`
	Description string `csv:"description" json:"description"`
	Priority    string `csv:"priority"    json:"priority"`
	Status      string `csv:"status"      json:"status"`
	DueDate     string `csv:"due_date"    json:"due_date"`
}

type issueSample struct {
	Title       string `csv:"title"       json:"title"`
	Description string `csv:"description" json:"description"`
	Priority    string `csv:"priority"    json:"priority"`
	Status      string `csv:"status"      json:"status"`
}

type meetingSample struct {
	Title           string `csv:"title"            json:"title"`
	Description     string `csv:"description"      json:"description"`
	MeetingType     string `csv:"meeting_type"     json:"meeting_type"`
	ScheduledDate   string `csv:"scheduled_date"   json:"scheduled_date"`
	DurationMinutes string `csv:"duration_minutes" json:"duration_minutes"`
}

type processSample struct {
	Name        string `csv:"name"        json:"name"`
	Description string `csv:"description" json:"description"`
	Category    string `csv:"category"    json:"category"`
	Status      string `csv:"status"      json:"status"`
}
