package rest

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Response struct {
	StatusCode int
	Header     map[string][]string
	Body       []byte
}

// Error is the error envelope returned by the graph api:
// {"error": {"message": "...", "type": "...", "code": 100}}
type Error struct {
	Message    string `json:"message"`
	Type       string `json:"type"`
	Code       int    `json:"code"`
	StatusCode int    `json:"-"`
}

func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("status %d", e.StatusCode)}
	if e.Code != 0 {
		parts = append(parts, fmt.Sprintf("code %d", e.Code))
	}
	if e.Type != "" {
		parts = append(parts, fmt.Sprintf("type %s", e.Type))
	}
	if e.Message != "" {
		parts = append(parts, fmt.Sprintf("message %s", e.Message))
	}
	return strings.Join(parts, " ")
}

type errorResponse struct {
	Error *Error `json:"error"`
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 399
}

// Decode unmarshals a successful body into out, or returns *Error for a
// failed one. out may be nil when the caller only cares about the outcome.
func (r *Response) Decode(out interface{}) error {
	if !r.IsSuccess() {
		er := &errorResponse{}
		if err := json.Unmarshal(r.Body, er); err != nil || er.Error == nil {
			return &Error{StatusCode: r.StatusCode, Message: strings.TrimSpace(string(r.Body))}
		}
		er.Error.StatusCode = r.StatusCode
		return er.Error
	}
	if out == nil || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("decode response failed, err:%w", err)
	}
	return nil
}
