package models

import (
	"fmt"
	"strings"
)

// TaskStatus defines the lifecycle states the upstream API understands.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "to do"
	StatusInProgress TaskStatus = "in progress"
	StatusComplete   TaskStatus = "complete"

	DefaultStatus = StatusToDo
)

const DueDateLayout = "2006-01-02"

var validTaskStatuses = map[TaskStatus]struct{}{
	StatusToDo:       {},
	StatusInProgress: {},
	StatusComplete:   {},
}

// Older form revisions posted these spellings.
var taskStatusAliases = map[string]TaskStatus{
	"todo":        StatusToDo,
	"to_do":       StatusToDo,
	"in_progress": StatusInProgress,
	"inprogress":  StatusInProgress,
	"completed":   StatusComplete,
	"done":        StatusComplete,
}

var orderedTaskStatuses = []TaskStatus{
	StatusToDo,
	StatusInProgress,
	StatusComplete,
}

func IsValidTaskStatus(status TaskStatus) bool {
	_, ok := validTaskStatuses[status]
	return ok
}

// ParseTaskStatus resolves raw input to a known status, case-insensitively.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	value := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	if value == "" {
		return "", fmt.Errorf("status is required")
	}
	status := TaskStatus(value)
	if IsValidTaskStatus(status) {
		return status, nil
	}
	if alias, ok := taskStatusAliases[value]; ok {
		return alias, nil
	}
	return "", fmt.Errorf("invalid status: %s", value)
}

// NormalizeStatus returns the canonical spelling for known statuses, the
// default for blank input, and the trimmed input otherwise.
func NormalizeStatus(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return string(DefaultStatus)
	}
	if status, err := ParseTaskStatus(trimmed); err == nil {
		return string(status)
	}
	return trimmed
}

func TaskStatusStrings() []string {
	out := make([]string, 0, len(orderedTaskStatuses))
	for _, status := range orderedTaskStatuses {
		out = append(out, string(status))
	}
	return out
}
