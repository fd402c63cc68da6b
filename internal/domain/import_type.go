package domain

// ImportType identifies one of the entity kinds the importer accepts.
type ImportType string

const (
	TypeUsers      ImportType = "users"
	TypeScorecards ImportType = "scorecards"
	TypeRocks      ImportType = "rocks"
	TypeTodos      ImportType = "todos"
	TypeIssues     ImportType = "issues"
	TypeMeetings   ImportType = "meetings"
	TypeProcesses  ImportType = "processes"
)

func (t ImportType) String() string {
	return string(t)
}
