package notion

import (
	"errors"
	"fmt"

	"github.com/jomei/notionapi"
)

// RemoteError is any failure returned by the Notion API, tagged with the
// operation that produced it.
type RemoteError struct {
	Op      string
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("notion %s failed: %s (status %d, code %s)", e.Op, e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("notion %s failed: %s", e.Op, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// wrapRemote tags an API failure with its originating operation, pulling
// status and code out of notionapi errors when available.
func wrapRemote(op string, err error) error {
	re := &RemoteError{Op: op, Message: err.Error(), Err: err}
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		re.Status = apiErr.Status
		re.Code = string(apiErr.Code)
		re.Message = apiErr.Message
	}
	return re
}

// isNotFound reports whether the error is the API telling us the object is
// gone already.
func isNotFound(err error) bool {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == 404 || string(apiErr.Code) == "object_not_found"
	}
	return false
}
