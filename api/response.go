// Package api contains the pieces shared by every endpoint wrapper: the
// HTTP transport boundary, the response envelope that normalizes every call
// outcome into one stable shape, the call runner that maps failures into
// envelopes, and the patch-update protocol for partial updates.
package api

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/prestix-studio/cloudns-api/config"
	"github.com/prestix-studio/cloudns-api/validation"
)

// RawResponse is the transport boundary object: the numeric status code and
// the JSON-decoded body of one HTTP exchange.
type RawResponse struct {
	StatusCode int
	Body       any
}

// StubResponse builds a RawResponse without a network round-trip. Endpoint
// logic that derives a result from another call's payload uses it, as do
// tests.
func StubResponse(body any, statusCode int) *RawResponse {
	return &RawResponse{StatusCode: statusCode, Body: body}
}

// Response is the normalized outcome of one remote call. It is write-once:
// a single Create populates it and nothing mutates it afterwards, except the
// narrow failure paths in Run that set Error and StatusCode once.
type Response struct {
	StatusCode       int
	Payload          any
	Error            string
	ValidationErrors []validation.Detail

	populated bool
}

// Create populates the envelope from a raw transport response and
// classifies it. The error is determined in order: an embedded "error" key
// in the body (used verbatim), then a non-OK HTTP status, then the vendor's
// "Failed" status marker with its description.
func (r *Response) Create(raw *RawResponse) {
	r.populated = true
	r.StatusCode = raw.StatusCode
	r.Payload = snakeCaseKeys(raw.Body)

	if body, ok := r.Payload.(map[string]any); ok {
		if msg, ok := body["error"].(string); ok && msg != "" {
			r.Error = msg
			return
		}
	}

	if r.StatusCode != 200 {
		r.Error = "HTTP response " + strconv.Itoa(r.StatusCode)
		return
	}

	if body, ok := r.Payload.(map[string]any); ok && body["status"] == "Failed" {
		if desc, ok := body["status_description"].(string); ok {
			r.Error = desc
		}
	}
}

// Success reports whether the call succeeded: the envelope was populated
// with an OK status and no error of any class was recorded.
func (r *Response) Success() bool {
	return r.populated && r.StatusCode == 200 && r.Error == ""
}

// PayloadMap returns the payload as a mapping, or an empty one when the
// payload is absent or not a mapping.
func (r *Response) PayloadMap() map[string]any {
	if m, ok := r.Payload.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Result produces the stable result shape: status_code, success, and
// payload always; error and validation_errors only when present. In debug
// mode an envelope that was never populated and carries no error gets a
// diagnostic error to surface the misuse.
func (r *Response) Result() map[string]any {
	result := map[string]any{
		"status_code": r.statusCode(),
		"success":     r.Success(),
		"payload":     r.payload(),
	}

	if r.Error != "" {
		result["error"] = r.Error
	}
	if len(r.ValidationErrors) > 0 {
		result["validation_errors"] = r.ValidationErrors
	}

	if config.Debug() && !r.Success() && r.Error == "" {
		result["error"] = "Response has not yet been created from a transport response."
	}

	return result
}

// String returns Result serialized as JSON. Serialization is deterministic:
// map keys marshal in sorted order.
func (r *Response) String() string {
	out, err := json.Marshal(r.Result())
	if err != nil {
		return `{"status_code":500,"success":false,"error":"Response could not be serialized."}`
	}
	return string(out)
}

func (r *Response) statusCode() any {
	if !r.populated && r.StatusCode == 0 {
		return nil
	}
	return r.StatusCode
}

func (r *Response) payload() any {
	if r.Payload == nil {
		return map[string]any{}
	}
	return r.Payload
}

var (
	firstCapRe = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	allCapRe   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// snakeCase rewrites a camelCase-or-mixed-case key to lower_snake_case. The
// transform is idempotent: a key already in snake case passes through.
func snakeCase(key string) string {
	key = firstCapRe.ReplaceAllString(key, "${1}_${2}")
	key = allCapRe.ReplaceAllString(key, "${1}_${2}")
	return strings.ToLower(key)
}

// snakeCaseKeys normalizes the keys of a mapping body, or of each mapping
// element of a sequence body. Keys are only rewritten at the top level of
// each mapping; non-mapping bodies pass through unchanged.
func snakeCaseKeys(body any) any {
	switch v := body.(type) {
	case map[string]any:
		normalized := make(map[string]any, len(v))
		for key, value := range v {
			normalized[snakeCase(key)] = value
		}
		return normalized
	case []any:
		normalized := make([]any, len(v))
		for i, elem := range v {
			if m, ok := elem.(map[string]any); ok {
				normalized[i] = snakeCaseKeys(m)
			} else {
				normalized[i] = elem
			}
		}
		return normalized
	default:
		return body
	}
}
