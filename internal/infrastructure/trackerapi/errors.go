package trackerapi

import (
	"fmt"
	"net/http"
	"strings"

	"price_tracker/pkg/rest"
)

const maxDetailLen = 300

// StatusError is a non-2xx answer of the tracker service.
type StatusError struct {
	StatusCode int
	Code       string
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("tracker api: status %d", e.StatusCode)
	}

	return fmt.Sprintf("tracker api: status %d: %s", e.StatusCode, e.Detail)
}

// ErrorDetail is the server supplied reason, suitable for users.
func (e *StatusError) ErrorDetail() string {
	return e.Detail
}

func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func newStatusError(statusCode int, body []byte) *StatusError {
	statusErr := &StatusError{StatusCode: statusCode}

	var payload rest.Error
	if err := json.Unmarshal(body, &payload); err != nil {
		statusErr.Detail = truncate(strings.TrimSpace(string(body)))
		return statusErr
	}

	statusErr.Code = string(payload.Code)
	statusErr.Detail = payload.Message

	if statusErr.Detail == "" && len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil {
			statusErr.Detail = detail
		} else {
			statusErr.Detail = truncate(string(payload.Detail))
		}
	}

	return statusErr
}

func truncate(s string) string {
	if len(s) > maxDetailLen {
		return s[:maxDetailLen]
	}

	return s
}
