package taskform

import (
	"slices"

	"taskfront/internal/models"
)

// Style tokens for status badges.
const (
	StyleToDo       = "govuk-tag govuk-tag--grey"
	StyleInProgress = "govuk-tag govuk-tag--blue"
	StyleComplete   = "govuk-tag govuk-tag--green"
	StyleDefault    = "govuk-tag"
)

// StatusStyleClass returns the badge class for a status. Unknown statuses
// get StyleDefault.
func StatusStyleClass(status string) string {
	parsed, err := models.ParseTaskStatus(status)
	if err != nil {
		return StyleDefault
	}
	switch parsed {
	case models.StatusToDo:
		return StyleToDo
	case models.StatusInProgress:
		return StyleInProgress
	case models.StatusComplete:
		return StyleComplete
	default:
		return StyleDefault
	}
}

// StatusOptions lists the statuses offered by the edit form. A current
// status outside the canonical set is appended so saving keeps it.
func StatusOptions(current string) []string {
	options := models.TaskStatusStrings()
	normalized := models.NormalizeStatus(current)
	if slices.Contains(options, normalized) {
		return options
	}
	return append(options, normalized)
}
