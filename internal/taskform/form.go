package taskform

import (
	"net/url"
	"strings"

	"taskfront/internal/api"
	"taskfront/internal/models"
)

// Form field names posted by the task views.
const (
	FieldName         = "taskName"
	FieldTitle        = "taskTitle"
	FieldCaseNumber   = "taskCaseNumber"
	FieldDescription  = "taskDescription"
	FieldStatus       = "taskStatus"
	FieldDueDateDay   = "taskDueDate-day"
	FieldDueDateMonth = "taskDueDate-month"
	FieldDueDateYear  = "taskDueDate-year"
)

// Form is a task form submission.
type Form struct {
	Title        string
	CaseNumber   string
	Description  string
	Status       string
	DueDateDay   string
	DueDateMonth string
	DueDateYear  string
}

// ParseForm reads a task form. The create view posts the title as taskName
// and the edit view as taskTitle; taskTitle wins when both are set.
func ParseForm(values url.Values) Form {
	title := values.Get(FieldTitle)
	if strings.TrimSpace(title) == "" {
		title = values.Get(FieldName)
	}
	return Form{
		Title:        title,
		CaseNumber:   values.Get(FieldCaseNumber),
		Description:  values.Get(FieldDescription),
		Status:       values.Get(FieldStatus),
		DueDateDay:   values.Get(FieldDueDateDay),
		DueDateMonth: values.Get(FieldDueDateMonth),
		DueDateYear:  values.Get(FieldDueDateYear),
	}
}

// DueDate assembles the split due date fields.
func (f Form) DueDate() (string, error) {
	return AssembleDueDate(f.DueDateYear, f.DueDateMonth, f.DueDateDay)
}

// Request builds the upstream payload. The request is always usable: a
// rejected due date is left unset and returned as dateErr.
func (f Form) Request() (req api.TaskRequest, dateErr error) {
	req = api.TaskRequest{
		CaseNumber:  strings.TrimSpace(f.CaseNumber),
		Title:       strings.TrimSpace(f.Title),
		Description: f.Description,
		Status:      models.NormalizeStatus(f.Status),
	}

	due, err := f.DueDate()
	if err != nil {
		return req, err
	}
	if due != "" {
		req.DueDate = &due
	}
	return req, nil
}

// UpdateRequest builds the upstream payload for an existing task.
func (f Form) UpdateRequest(id int64) (api.TaskRequest, error) {
	req, dateErr := f.Request()
	req.ID = &id
	return req, dateErr
}
