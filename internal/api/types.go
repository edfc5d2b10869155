package api

// ErrorResponse is the error body returned by the upstream API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// TaskRequest is the create and update payload for the upstream API.
// DueDate is sent as null when unset.
type TaskRequest struct {
	ID          *int64  `json:"id,omitempty"`
	CaseNumber  string  `json:"caseNumber"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"dueDate"`
}
