package domain

// Record is a transformed, fully-typed row ready for insertion. The record
// store builds its INSERT from the three accessors, so every entity maps to
// exactly one table without the repository knowing entity internals.
type Record interface {
	Table() string
	Columns() []string
	Values() []any
}

type User struct {
	ID             string `db:"id"              json:"id"`
	OrganizationID string `db:"organization_id" json:"organization_id"`
	Email          string `db:"email"           json:"email"`
	FirstName      string `db:"first_name"      json:"first_name"`
	LastName       string `db:"last_name"       json:"last_name"`
	Role           string `db:"role"            json:"role"`
	Department     string `db:"department"      json:"department"`
	IsActive       bool   `db:"is_active"       json:"is_active"`
	CreatedBy      string `db:"created_by"      json:"created_by"`
}

func (u *User) Table() string { return "users" }

func (u *User) Columns() []string {
	return []string{"id", "organization_id", "email", "first_name", "last_name", "role", "department", "is_active", "created_by"}
}

func (u *User) Values() []any {
	return []any{u.ID, u.OrganizationID, u.Email, u.FirstName, u.LastName, u.Role, u.Department, u.IsActive, u.CreatedBy}
}

type Scorecard struct {
	ID             string `db:"id"              json:"id"`
	OrganizationID string `db:"organization_id" json:"organization_id"`
	Name           string `db:"name"            json:"name"`
	Description    string `db:"description"     json:"description"`
	Frequency      string `db:"frequency"       json:"frequency"`
	Goal           string `db:"goal"            json:"goal"`
	Unit           string `db:"unit"            json:"unit"`
	OwnerID        string `db:"owner_id"        json:"owner_id"`
}

func (s *Scorecard) Table() string { return "scorecards" }

func (s *Scorecard) Columns() []string {
	return []string{"id", "organization_id", "name", "description", "frequency", "goal", "unit", "owner_id"}
}

func (s *Scorecard) Values() []any {
	return []any{s.ID, s.OrganizationID, s.Name, s.Description, s.Frequency, s.Goal, s.Unit, s.OwnerID}
}

type Rock struct {
	ID                   string `db:"id"                    json:"id"`
	OrganizationID       string `db:"organization_id"       json:"organization_id"`
	Title                string `db:"title"                 json:"title"`
	Description          string `db:"description"           json:"description"`
	Quarter              int    `db:"quarter"               json:"quarter"`
	Year                 int    `db:"year"                  json:"year"`
	Priority             string `db:"priority"              json:"priority"`
	Status               string `db:"status"                json:"status"`
	CompletionPercentage int    `db:"completion_percentage" json:"completion_percentage"`
	DueDate              string `db:"due_date"              json:"due_date"`
	OwnerID              string `db:"owner_id"              json:"owner_id"`
}

func (r *Rock) Table() string { return "rocks" }

func (r *Rock) Columns() []string {
	return []string{"id", "organization_id", "title", "description", "quarter", "year", "priority", "status", "completion_percentage", "due_date", "owner_id"}
}

func (r *Rock) Values() []any {
	return []any{r.ID, r.OrganizationID, r.Title, r.Description, r.Quarter, r.Year, r.Priority, r.Status, r.CompletionPercentage, nullable(r.DueDate), r.OwnerID}
}

type Todo struct {
	ID             string `db:"id"              json:"id"`
	OrganizationID string `db:"organization_id" json:"organization_id"`
	Title          string `db:"title"           json:"title"`
	Description    string `db:"description"     json:"description"`
	Priority       string `db:"priority"        json:"priority"`
	Status         string `db:"status"          json:"status"`
	DueDate        string `db:"due_date"        json:"due_date"`
	OwnerID        string `db:"owner_id"        json:"owner_id"`
}

func (t *Todo) Table() string { return "todos" }

func (t *Todo) Columns() []string {
	return []string{"id", "organization_id", "title", "description", "priority", "status", "due_date", "owner_id"}
}

func (t *Todo) Values() []any {
	return []any{t.ID, t.OrganizationID, t.Title, t.Description, t.Priority, t.Status, nullable(t.DueDate), t.OwnerID}
}

type Issue struct {
	ID             string `db:"id"              json:"id"`
	OrganizationID string `db:"organization_id" json:"organization_id"`
	Title          string `db:"title"           json:"title"`
	Description    string `db:"description"     json:"description"`
	Priority       string `db:"priority"        json:"priority"`
	Status         string `db:"status"          json:"status"`
	OwnerID        string `db:"owner_id"        json:"owner_id"`
}

func (i *Issue) Table() string { return "issues" }

func (i *Issue) Columns() []string {
	return []string{"id", "organization_id", "title", "description", "priority", "status", "owner_id"}
}

func (i *Issue) Values() []any {
	return []any{i.ID, i.OrganizationID, i.Title, i.Description, i.Priority, i.Status, i.OwnerID}
}

type Meeting struct {
	ID              string `db:"id"               json:"id"`
	OrganizationID  string `db:"organization_id"  json:"organization_id"`
	Title           string `db:"title"            json:"title"`
	Description     string `db:"description"      json:"description"`
	MeetingType     string `db:"meeting_type"     json:"meeting_type"`
	ScheduledDate   string `db:"scheduled_date"   json:"scheduled_date"`
	DurationMinutes int    `db:"duration_minutes" json:"duration_minutes"`
	OwnerID         string `db:"owner_id"         json:"owner_id"`
}

func (m *Meeting) Table() string { return "meetings" }

func (m *Meeting) Columns() []string {
	return []string{"id", "organization_id", "title", "description", "meeting_type", "scheduled_date", "duration_minutes", "owner_id"}
}

func (m *Meeting) Values() []any {
	return []any{m.ID, m.OrganizationID, m.Title, m.Description, m.MeetingType, nullable(m.ScheduledDate), m.DurationMinutes, m.OwnerID}
}

type Process struct {
	ID             string `db:"id"              json:"id"`
	OrganizationID string `db:"organization_id" json:"organization_id"`
	Name           string `db:"name"            json:"name"`
	Description    string `db:"description"     json:"description"`
	Category       string `db:"category"        json:"category"`
	Status         string `db:"status"          json:"status"`
	OwnerID        string `db:"owner_id"        json:"owner_id"`
}

func (p *Process) Table() string { return "processes" }

func (p *Process) Columns() []string {
	return []string{"id", "organization_id", "name", "description", "category", "status", "owner_id"}
}

func (p *Process) Values() []any {
	return []any{p.ID, p.OrganizationID, p.Name, p.Description, p.Category, p.Status, p.OwnerID}
}

// Membership links an imported user to the organization the import ran under.
type Membership struct {
	OrganizationID string `db:"organization_id" json:"organization_id"`
	UserID         string `db:"user_id"         json:"user_id"`
	Role           string `db:"role"            json:"role"`
}

// nullable maps empty date strings to NULL so DATE columns accept them.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
