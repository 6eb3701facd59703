package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestix-studio/cloudns-api/config"
	"github.com/prestix-studio/cloudns-api/validation"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestRun_WrapsSuccessfulResponse(t *testing.T) {
	response := Run(func() (*RawResponse, error) {
		return StubResponse(map[string]any{"zone": "example.com"}, 200), nil
	})

	require.True(t, response.Success())
	assert.Equal(t, map[string]any{"zone": "example.com"}, response.Payload)
}

func TestRun_Timeout(t *testing.T) {
	response := Run(func() (*RawResponse, error) {
		return nil, &url.Error{Op: "Get", URL: "https://api.cloudns.net", Err: timeoutError{}}
	})

	assert.False(t, response.Success())
	assert.Equal(t, "API Connection timed out.", response.Error)
	assert.Equal(t, http.StatusGatewayTimeout, response.StatusCode)
}

func TestRun_DeadlineExceeded(t *testing.T) {
	response := Run(func() (*RawResponse, error) {
		return nil, context.DeadlineExceeded
	})

	assert.Equal(t, "API Connection timed out.", response.Error)
	assert.Equal(t, http.StatusGatewayTimeout, response.StatusCode)
}

func TestRun_ConnectionError(t *testing.T) {
	response := Run(func() (*RawResponse, error) {
		return nil, &url.Error{Op: "Get", URL: "https://api.cloudns.net", Err: errors.New("connection refused")}
	})

	assert.False(t, response.Success())
	assert.Equal(t, "API Network Connection error.", response.Error)
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
}

func TestRun_DecodeErrorIsConnectionClass(t *testing.T) {
	response := Run(func() (*RawResponse, error) {
		return nil, &decodeError{err: errors.New("invalid character '<'")}
	})

	assert.Equal(t, "API Network Connection error.", response.Error)
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
}

func TestRun_APIErrorPassesThroughVerbatim(t *testing.T) {
	response := Run(func() (*RawResponse, error) {
		return nil, &Error{Message: `Record "42" not found in "example.com" zone.`, StatusCode: http.StatusNotFound}
	})

	assert.Equal(t, `Record "42" not found in "example.com" zone.`, response.Error)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestRun_SingleValidationError(t *testing.T) {
	response := Run(func() (*RawResponse, error) {
		return nil, &validation.Error{Field: "ttl", Message: "This field must be a valid ttl."}
	})

	assert.Equal(t, "Validation error.", response.Error)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	require.Len(t, response.ValidationErrors, 1)
	assert.Equal(t, "ttl", response.ValidationErrors[0].Fieldname)
}

func TestRun_ValidationErrorsKeepOrder(t *testing.T) {
	response := Run(func() (*RawResponse, error) {
		return nil, validation.Errors{
			{Field: "domain-name", Message: "This field must be a valid domain name."},
			{Field: "ttl", Message: "This field must be a valid ttl."},
			{Field: "record", Message: "This field (record) is required."},
		}
	})

	assert.Equal(t, "Validation error.", response.Error)
	require.Len(t, response.ValidationErrors, 3)
	assert.Equal(t, "domain-name", response.ValidationErrors[0].Fieldname)
	assert.Equal(t, "ttl", response.ValidationErrors[1].Fieldname)
	assert.Equal(t, "record", response.ValidationErrors[2].Fieldname)
}

func TestRun_UnexpectedError(t *testing.T) {
	t.Setenv(config.EnvDebug, "")
	response := Run(func() (*RawResponse, error) {
		return nil, errors.New("nil pointer dereference somewhere deep")
	})

	assert.Equal(t, "Something went wrong.", response.Error)
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
}

func TestRun_UnexpectedErrorInDebugMode(t *testing.T) {
	t.Setenv(config.EnvDebug, "1")
	response := Run(func() (*RawResponse, error) {
		return nil, errors.New("nil pointer dereference somewhere deep")
	})

	assert.Equal(t, "nil pointer dereference somewhere deep", response.Error)
}

func TestRun_ContainsPanics(t *testing.T) {
	t.Setenv(config.EnvDebug, "")
	response := Run(func() (*RawResponse, error) {
		panic("endpoint blew up")
	})

	assert.Equal(t, "Something went wrong.", response.Error)
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
}

func TestPatchUpdate_MergesFetchedDefaults(t *testing.T) {
	get := func(ctx context.Context, args map[string]any) *Response {
		assert.Equal(t, map[string]any{"domain_name": "example.com", "record_id": 42}, args)
		var r Response
		r.Create(StubResponse(map[string]any{
			"host":   "ns1",
			"ttl":    float64(3600),
			"record": "10.0.0.10",
		}, 200))
		return &r
	}

	var updateArgs map[string]any
	update := func(ctx context.Context, args map[string]any) *Response {
		updateArgs = args
		var r Response
		r.Create(StubResponse(map[string]any{}, 200))
		return &r
	}

	wrapped := PatchUpdate(update, get, "domain_name", "record_id")
	response := wrapped(context.Background(), map[string]any{
		"domain_name": "example.com",
		"record_id":   42,
		"record":      "10.10.10.10",
		"patch":       true,
	})

	require.True(t, response.Success())
	// Fetched values fill the gaps; the caller's explicit record wins.
	assert.Equal(t, "ns1", updateArgs["host"])
	assert.Equal(t, float64(3600), updateArgs["ttl"])
	assert.Equal(t, "10.10.10.10", updateArgs["record"])
}

func TestPatchUpdate_ShortCircuitsOnFailedGet(t *testing.T) {
	get := func(ctx context.Context, args map[string]any) *Response {
		var r Response
		r.Create(StubResponse(map[string]any{
			"status":            "Failed",
			"statusDescription": "Missing domain-name",
		}, 200))
		return &r
	}

	updateCalled := false
	update := func(ctx context.Context, args map[string]any) *Response {
		updateCalled = true
		return &Response{}
	}

	wrapped := PatchUpdate(update, get, "domain_name")
	response := wrapped(context.Background(), map[string]any{"domain_name": "example.com", "patch": true})

	assert.False(t, updateCalled)
	assert.False(t, response.Success())
	assert.Equal(t, "Missing domain-name", response.Error)
}

func TestPatchUpdate_PassthroughWithoutFlag(t *testing.T) {
	getCalled := false
	get := func(ctx context.Context, args map[string]any) *Response {
		getCalled = true
		return &Response{}
	}
	update := func(ctx context.Context, args map[string]any) *Response {
		var r Response
		r.Create(StubResponse(map[string]any{}, 200))
		return &r
	}

	wrapped := PatchUpdate(update, get, "domain_name")
	response := wrapped(context.Background(), map[string]any{"domain_name": "example.com"})

	assert.False(t, getCalled)
	assert.True(t, response.Success())
}

func TestArgs_FlattensStructAndDropsUnsetFields(t *testing.T) {
	type attrs struct {
		Host     string `structs:"host,omitempty"`
		TTL      int    `structs:"ttl,omitempty"`
		Priority *int   `structs:"priority,omitempty"`
		Record   string `structs:"record,omitempty"`
	}

	priority := 20
	args := Args(attrs{Host: "www", TTL: 3600, Priority: &priority})

	assert.Equal(t, "www", args["host"])
	assert.Equal(t, 3600, args["ttl"])
	assert.Equal(t, 20, args["priority"])
	assert.NotContains(t, args, "record")
}
