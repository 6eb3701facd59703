// Package validation contains the engine that checks field values before
// they are transmitted to the ClouDNS API.
//
// Validators are looked up by a field-semantic name (usually the parameter
// name itself, optionally overridden per field). The registry is open: a
// name with no registered validator passes unchanged. Pattern-shaped checks
// (email, domain name, IP addresses) delegate to go-playground/validator;
// the vendor-specific enumerations are checked directly.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var patterns *validator.Validate

func init() {
	patterns = validator.New()
}

// Options carries the per-field validation directives.
//
// Min and Max are pointers so that a zero bound is a real bound rather than
// an absent one.
type Options struct {
	// Optional accepts an empty or absent value without further checks.
	Optional bool

	// As selects a validator by name instead of the field's own name.
	As string

	// Min and Max are inclusive numeric bounds for integer validation.
	Min *int
	Max *int
}

// Func checks a single value. The field name is used only for error
// reporting; the Options carry any numeric bounds.
type Func func(field string, value any, opts Options) error

// Validate checks value for the named field. A nil return means the value
// is acceptable as-is. Failures are reported as *Error.
func Validate(field string, value any, opts Options) error {
	if opts.Optional && isBlank(value) {
		return nil
	}
	if isMissing(value) {
		return &Error{Field: field, Message: "This field (" + field + ") is required."}
	}

	name := opts.As
	if name == "" {
		name = field
	}

	fn, ok := registry[name]
	if !ok {
		return nil
	}
	return fn(field, value, opts)
}

// isMissing reports whether a required value is absent.
func isMissing(value any) bool {
	return value == nil || value == ""
}

// isBlank reports whether an optional value should short-circuit validation.
// Zero values of every kind count as blank, matching the permissive contract
// for optional fields.
func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		n, ok := toInt(value)
		return ok && n == 0
	}
}

// toInt coerces native integers, integral floats (JSON numbers), and numeric
// strings. Non-numeric values and non-integral floats are rejected.
func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	case float32:
		if float32(int(v)) == v {
			return int(v), true
		}
	case float64:
		if float64(int(v)) == v {
			return int(v), true
		}
	case string:
		n, err := strconv.Atoi(v)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

func toString(value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

// isInt accepts integers and numeric strings, applying any inclusive bounds.
func isInt(field string, value any, opts Options) error {
	n, ok := toInt(value)
	if !ok {
		return &Error{Field: field, Message: "This field must be an integer."}
	}
	if opts.Min != nil && n < *opts.Min {
		return &Error{Field: field, Message: fmt.Sprintf("This field must be greater than %d.", *opts.Min)}
	}
	if opts.Max != nil && n > *opts.Max {
		return &Error{Field: field, Message: fmt.Sprintf("This field must be less than %d.", *opts.Max)}
	}
	return nil
}

// pattern adapts a go-playground/validator tag to a registry Func.
func pattern(tag, message string) Func {
	return func(field string, value any, _ Options) error {
		s, ok := toString(value)
		if !ok || patterns.Var(s, tag) != nil {
			return &Error{Field: field, Message: message}
		}
		return nil
	}
}

var (
	isDomainName = pattern("fqdn", "This field must be a valid domain name.")
	isEmail      = pattern("email", "This field must be a valid email.")
	isIPv4       = pattern("ipv4", "This field must be a valid IPv4 address.")
	isIPv6       = pattern("ipv6", "This field must be a valid IPv6 address.")
)

func isRequired(field string, value any, _ Options) error {
	if isMissing(value) {
		return &Error{Field: field, Message: "This field is required."}
	}
	return nil
}

// isValid always passes. It exists so fields can opt out of checking while
// still recording that the choice was deliberate.
func isValid(string, any, Options) error {
	return nil
}

// isAPIBool accepts the API's 0/1 flags, and native booleans for
// convenience.
func isAPIBool(field string, value any, _ Options) error {
	if _, ok := value.(bool); ok {
		return nil
	}
	if n, ok := toInt(value); ok && (n == 0 || n == 1) {
		return nil
	}
	return &Error{Field: field, Message: "This field must be 0 or 1."}
}

var algorithms = []string{"RSA", "DSA", "ECDSA", "ED25519"}

// isAlgorithm accepts an SSHFP algorithm name or its 1-4 numeric code.
func isAlgorithm(field string, value any, _ Options) error {
	if s, ok := toString(value); ok {
		if containsString(algorithms, strings.ToUpper(s)) {
			return nil
		}
	} else if n, ok := toInt(value); ok && n >= 1 && n <= 4 {
		return nil
	}
	return &Error{Field: field, Message: "This field must be RSA, DSA, ECDSA, or Ed25519."}
}

var fingerprintTypes = []string{"SHA-1", "SHA-256"}

// isFingerprintType accepts an SSHFP fingerprint type name or its numeric
// code (1 or 2).
func isFingerprintType(field string, value any, _ Options) error {
	if s, ok := toString(value); ok {
		if containsString(fingerprintTypes, strings.ToUpper(s)) {
			return nil
		}
	} else if n, ok := toInt(value); ok && (n == 1 || n == 2) {
		return nil
	}
	return &Error{Field: field, Message: "This field must be one of SHA-1 or SHA-256."}
}

func isCAAFlag(field string, value any, _ Options) error {
	if n, ok := toInt(value); ok && (n == 0 || n == 128) {
		return nil
	}
	return &Error{Field: field, Message: "This field must be 0 (non-critical) or 128 (critical)."}
}

var caaTypes = []string{"issue", "issuewild", "iodef"}

func isCAAType(field string, value any, _ Options) error {
	if s, ok := toString(value); ok && containsString(caaTypes, strings.ToLower(s)) {
		return nil
	}
	return &Error{Field: field, Message: "This field must be one of issue, issuewild, iodef."}
}

var hexRe = regexp.MustCompile(`^[a-fA-F0-9]+$`)

func isHexstring(field string, value any, _ Options) error {
	if s, ok := toString(value); ok && hexRe.MatchString(s) {
		return nil
	}
	return &Error{Field: field, Message: "This field must be a hexadecimal string."}
}

// RecordTypes are the resource record types the ClouDNS API accepts.
var RecordTypes = []string{
	"A", "AAAA", "MX", "CNAME", "TXT", "SPF", "NS", "SRV", "WR",
	"RP", "SSHFP", "ALIAS", "CAA", "NAPTR", "PTR", "TLSA",
}

// IsRecordType validates a DNS record type, case-insensitively.
func IsRecordType(field string, value any, _ Options) error {
	if s, ok := toString(value); ok && containsString(RecordTypes, strings.ToUpper(s)) {
		return nil
	}
	return &Error{Field: field, Message: "This field must be a valid domain record type."}
}

func isRedirectType(field string, value any, _ Options) error {
	if n, ok := toInt(value); ok && (n == 301 || n == 302) {
		return nil
	}
	return &Error{Field: field, Message: "This field must be 301 (permanent) or 302 (temporary)."}
}

var rowsPerPage = []int{10, 20, 30, 50, 100}

func isRowsPerPage(field string, value any, _ Options) error {
	if n, ok := toInt(value); ok && containsInt(rowsPerPage, n) {
		return nil
	}
	return &Error{Field: field, Message: "This field must be one of: 10, 20, 30, 50, or 100."}
}

func intSet(set []int, message string) Func {
	return func(field string, value any, _ Options) error {
		if n, ok := toInt(value); ok && containsInt(set, n) {
			return nil
		}
		return &Error{Field: field, Message: message}
	}
}

var (
	isTLSAUsage        = intSet([]int{0, 1, 2, 3}, "This field must be one of: 0, 1, 2, or 3.")
	isTLSASelector     = intSet([]int{0, 1}, "This field must be one of: 0 or 1.")
	isTLSAMatchingType = intSet([]int{0, 1, 2}, "This field must be one of: 0, 1, or 2.")
)

// TTLs are the second-counts the ClouDNS API accepts for record TTLs.
var TTLs = []int{
	60, 300, 900, 1800, 3600, 21600, 43200, 86400,
	172800, 259200, 604800, 1209600, 2592000,
}

var ttlLabels = []string{
	"1 minute", "5 minutes", "15 minutes", "30 minutes", "1 hour",
	"6 hours", "12 hours", "1 day", "2 days", "3 days", "1 week",
	"2 weeks", "1 month",
}

func isTTL(field string, value any, _ Options) error {
	if n, ok := toInt(value); ok && containsInt(TTLs, n) {
		return nil
	}
	if s, ok := toString(value); ok && containsString(ttlLabels, strings.ToLower(s)) {
		return nil
	}
	return &Error{Field: field, Message: "This field must be a valid ttl. " +
		"(1 minute, 5 minutes, 15 minutes, 30 minutes, 1 hour, 6 hours, " +
		"12 hours, 1 day, 2 days, 3 days, 1 week, 2 weeks, or 1 month) or " +
		"(60, 300, 900, 1800, 3600, 21600, 43200, 86400, 172800, 259200, " +
		"604800, 1209600, or 2592000)"}
}

// ZoneTypes are the zone types the ClouDNS API accepts.
var ZoneTypes = []string{"master", "slave", "parked", "geodns", "domain", "reverse"}

func isZoneType(field string, value any, _ Options) error {
	if s, ok := toString(value); ok && containsString(ZoneTypes, strings.ToLower(s)) {
		return nil
	}
	return &Error{Field: field, Message: "This field must be a valid zone type. " +
		"(master, slave, parked, or geodns)"}
}

func containsString(set []string, s string) bool {
	for _, member := range set {
		if member == s {
			return true
		}
	}
	return false
}

func containsInt(set []int, n int) bool {
	for _, member := range set {
		if member == n {
			return true
		}
	}
	return false
}

// registry maps field-semantic names to validators. Parameter names not
// present here pass validation unchanged.
var registry = map[string]Func{
	"admin-mail":         isEmail,
	"algorithm":          isAlgorithm,
	"bool":               isAPIBool,
	"caa_flag":           isCAAFlag,
	"caa_type":           isCAAType,
	"caa_value":          isValid,
	"default-ttl":        isTTL,
	"domain-name":        isDomainName,
	"email":              isEmail,
	"expire":             isInt,
	"fptype":             isFingerprintType,
	"frame":              isAPIBool,
	"frame-title":        isValid,
	"geodns-location":    isInt,
	"hexstring":          isHexstring,
	"integer":            isInt,
	"ipv4":               isIPv4,
	"ipv6":               isIPv6,
	"mail":               isEmail,
	"page":               isInt,
	"port":               isInt,
	"primary-ns":         isDomainName,
	"priority":           isInt,
	"record":             isRequired,
	"record-id":          isInt,
	"record-type":        IsRecordType,
	"redirect-type":      isRedirectType,
	"refresh":            isInt,
	"retry":              isInt,
	"required":           isRequired,
	"rows-per-page":      isRowsPerPage,
	"save-path":          isAPIBool,
	"status":             isAPIBool,
	"tlsa_matching_type": isTLSAMatchingType,
	"tlsa_selector":      isTLSASelector,
	"tlsa_usage":         isTLSAUsage,
	"ttl":                isTTL,
	"txt":                isDomainName,
	"valid":              isValid,
	"weight":             isInt,
	"zone-type":          isZoneType,
}
