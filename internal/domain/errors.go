package domain

type ErrorCode string

const (
	// ErrorCodeAPIFailure marks a non-success response from the GitHub API.
	// Listing failures are fatal for the whole run.
	ErrorCodeAPIFailure ErrorCode = "API_FAILURE"
	// ErrorCodeInconsistentState marks a record that contradicts the
	// collection it was fetched from.
	ErrorCodeInconsistentState ErrorCode = "INCONSISTENT_STATE"
)

type DomainError struct {
	Code    ErrorCode
	Message string
}

func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

func (e *DomainError) Error() string {
	return e.Message
}
