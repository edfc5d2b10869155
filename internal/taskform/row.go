package taskform

import (
	"strconv"

	"taskfront/internal/models"
)

// DueDatePlaceholder is shown in list rows for tasks without a due date.
const DueDatePlaceholder = "Not set"

// Link is a labelled hyperlink.
type Link struct {
	Text string
	Href string
}

// Badge is a styled status label.
type Badge struct {
	Class string
	Text  string
}

// DisplayRow is one row of the task list view.
type DisplayRow struct {
	Title   Link
	DueDate string
	Status  Badge
}

// EditView is the task edit form model with the due date split into parts.
type EditView struct {
	models.Task
	DueDateDay   string
	DueDateMonth string
	DueDateYear  string
}

// TaskPath returns the front-end path of a task.
func TaskPath(id int64) string {
	return "/tasks/" + strconv.FormatInt(id, 10)
}

// ToDisplayRow projects an upstream task onto a list row.
func ToDisplayRow(task models.Task) DisplayRow {
	due := task.DueDateString()
	if due == "" {
		due = DueDatePlaceholder
	}
	return DisplayRow{
		Title:   Link{Text: task.Title, Href: TaskPath(task.ID)},
		DueDate: due,
		Status:  Badge{Class: StatusStyleClass(task.Status), Text: task.Status},
	}
}

func ToDisplayRows(tasks []models.Task) []DisplayRow {
	rows := make([]DisplayRow, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, ToDisplayRow(task))
	}
	return rows
}

// NewEditView prepares a task for the edit form.
func NewEditView(task models.Task) EditView {
	year, month, day := SplitDueDate(task.DueDateString())
	return EditView{
		Task:         task,
		DueDateDay:   day,
		DueDateMonth: month,
		DueDateYear:  year,
	}
}
