package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"reflect"

	"github.com/fatih/structs"
	"github.com/rs/zerolog/log"

	"github.com/prestix-studio/cloudns-api/config"
	"github.com/prestix-studio/cloudns-api/validation"
)

// Error is a failure reported deliberately by endpoint logic, carrying its
// own message and HTTP status code. Run places both in the envelope
// verbatim.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

// Endpoint performs one remote call and returns the raw transport response.
type Endpoint func() (*RawResponse, error)

// Run invokes an endpoint and always returns an envelope: every failure
// class, panics included, is caught and mapped into the envelope rather than
// propagated. This is the failure-containment contract of the library.
func Run(endpoint Endpoint) (response *Response) {
	response = &Response{}

	defer func() {
		if recovered := recover(); recovered != nil {
			log.Error().Interface("panic", recovered).Msg("api call panicked")
			response.Error = "Something went wrong."
			response.StatusCode = http.StatusInternalServerError
			if config.Debug() {
				response.Error = fmt.Sprint(recovered)
			}
		}
	}()

	raw, err := endpoint()
	if err != nil {
		classify(response, err)
		return response
	}

	response.Create(raw)
	return response
}

// classify maps an endpoint failure into the envelope.
func classify(response *Response, err error) {
	var (
		apiErr *Error
		vErr   *validation.Error
		vErrs  validation.Errors
		netErr net.Error
		urlErr *url.Error
		decErr *decodeError
	)

	switch {
	case errors.As(err, &vErrs):
		response.Error = "Validation error."
		response.ValidationErrors = vErrs.Details()
		response.StatusCode = http.StatusBadRequest

	case errors.As(err, &vErr):
		response.Error = "Validation error."
		response.ValidationErrors = vErr.Details()
		response.StatusCode = http.StatusBadRequest

	case errors.As(err, &apiErr):
		response.Error = apiErr.Message
		response.StatusCode = apiErr.StatusCode

	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		response.Error = "API Connection timed out."
		response.StatusCode = http.StatusGatewayTimeout
		if config.Debug() {
			response.Error = err.Error()
		}

	case errors.As(err, &urlErr), errors.As(err, &decErr):
		response.Error = "API Network Connection error."
		response.StatusCode = http.StatusInternalServerError
		if config.Debug() {
			response.Error = err.Error()
		}

	default:
		log.Debug().Err(err).Msg("unclassified api call failure")
		response.Error = "Something went wrong."
		response.StatusCode = http.StatusInternalServerError
		if config.Debug() {
			response.Error = err.Error()
		}
	}
}

// MapEndpoint is an endpoint call that takes its arguments as a name-value
// map. The patch-update protocol operates at this level because it merges
// fetched remote state with caller-supplied arguments by name.
type MapEndpoint func(ctx context.Context, args map[string]any) *Response

// PatchUpdate wraps an update endpoint with the fetch-then-merge protocol.
// When args carry a true "patch" flag: the get endpoint is called with only
// the key fields of args; if it fails its envelope is returned untouched and
// the update never runs; otherwise the fetched payload supplies defaults and
// the caller's explicit arguments take precedence. Without the flag, the
// wrapper is a passthrough.
func PatchUpdate(update, get MapEndpoint, keys ...string) MapEndpoint {
	return func(ctx context.Context, args map[string]any) *Response {
		if patch, ok := args["patch"].(bool); ok && patch {
			keyArgs := make(map[string]any, len(keys))
			for _, key := range keys {
				if value, ok := args[key]; ok {
					keyArgs[key] = value
				}
			}

			existing := get(ctx, keyArgs)
			if !existing.Success() {
				return existing
			}

			merged := existing.PayloadMap()
			for name, value := range args {
				merged[name] = value
			}
			args = merged
		}

		return update(ctx, args)
	}
}

// Args flattens a tagged parameter struct into the argument map a
// MapEndpoint consumes. Zero-valued fields tagged omitempty are dropped and
// pointer fields are dereferenced, so the map holds exactly the arguments
// the caller supplied explicitly.
func Args(params any) map[string]any {
	args := structs.Map(params)
	for name, value := range args {
		v := reflect.ValueOf(value)
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				delete(args, name)
				continue
			}
			args[name] = v.Elem().Interface()
		}
	}
	return args
}
