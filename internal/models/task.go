package models

// Task is a task record as owned by the upstream task API.
type Task struct {
	ID          int64   `json:"id"`
	CaseNumber  string  `json:"caseNumber"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"dueDate"`
}

// DueDateString returns the due date or an empty string when unset.
func (t Task) DueDateString() string {
	if t.DueDate == nil {
		return ""
	}
	return *t.DueDate
}
