package authsdk

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// StatusError reports a non-2xx response that survived the retry cycle.
// Callers can branch on Code; Message carries the service's error body
// when one was present.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.Code)
}

// newStatusError drains the response body looking for the service's
// {"error": ...} shape. A body that is not in that shape is not an error
// here, just an empty message.
func newStatusError(resp *http.Response) *StatusError {
	e := &StatusError{Code: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return e
	}

	var parsed ErrorResponse
	if json.Unmarshal(body, &parsed) == nil {
		e.Message = parsed.Error
	}
	return e
}
