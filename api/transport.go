package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// BaseURL is the root of the ClouDNS HTTP API. It is a variable so tests
// can point the transport at a local server.
var BaseURL = "https://api.cloudns.net"

// Doer issues a single HTTP request. The default is an http.Client with a
// timeout; tests inject their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to the Doer interface.
type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

var httpClient Doer = &http.Client{Timeout: 30 * time.Second}

// SetHTTPClient replaces the transport's HTTP client and returns the
// previous one so callers can restore it.
func SetHTTPClient(d Doer) (previous Doer) {
	previous = httpClient
	httpClient = d
	return previous
}

// decodeError marks a response body that could not be decoded as JSON. The
// call runner maps it to the network-connection error class.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string {
	return "decoding response body: " + e.err.Error()
}

func (e *decodeError) Unwrap() error {
	return e.err
}

// Get issues an HTTP GET to the given API path with a flat parameter map
// encoded in the query string.
func Get(ctx context.Context, path string, params map[string]any) (*RawResponse, error) {
	return request(ctx, http.MethodGet, path, params)
}

// Post issues an HTTP POST to the given API path. The ClouDNS API takes
// parameters in the query string for POST as well.
func Post(ctx context.Context, path string, params map[string]any) (*RawResponse, error) {
	return request(ctx, http.MethodPost, path, params)
}

func request(ctx context.Context, method, path string, params map[string]any) (*RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = encodeParams(params).Encode()

	requestID := uuid.NewString()
	log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Msg("ClouDNS API request")

	res, err := httpClient.Do(req)
	if err != nil {
		log.Debug().
			Str("request_id", requestID).
			Err(err).
			Msg("ClouDNS API transport failure")
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &decodeError{err: err}
	}

	var decoded any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &decoded); err != nil {
			return nil, &decodeError{err: err}
		}
	}

	log.Debug().
		Str("request_id", requestID).
		Int("status_code", res.StatusCode).
		Msg("ClouDNS API response")

	return &RawResponse{StatusCode: res.StatusCode, Body: decoded}, nil
}

// encodeParams flattens the parameter map into query values: scalars are
// stringified, slices become repeated keys. The auth password never appears
// anywhere but here.
func encodeParams(params map[string]any) url.Values {
	values := url.Values{}
	for name, value := range params {
		switch v := value.(type) {
		case nil:
		case []string:
			for _, item := range v {
				values.Add(name, item)
			}
		case []any:
			for _, item := range v {
				values.Add(name, encodeScalar(item))
			}
		default:
			values.Set(name, encodeScalar(value))
		}
	}
	return values
}

func encodeScalar(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}
