// Package record wraps the ClouDNS resource-record endpoints: listing,
// creating, updating, and deleting records, activation toggling, zone
// transfers and copies, and BIND export. SOA records live in package soa.
package record

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prestix-studio/cloudns-api/api"
	"github.com/prestix-studio/cloudns-api/parameters"
)

// Int returns a pointer to n, for the optional numeric attributes.
func Int(n int) *int {
	return &n
}

// Attributes are the per-record arguments shared by Create and Update. Only
// the attributes relevant to the record's type are consulted; see the
// per-type generators for which type requires what.
type Attributes struct {
	// Host is the record's host. Leave empty to address the zone apex.
	Host   string `structs:"host,omitempty"`
	Record string `structs:"record,omitempty"`
	TTL    int    `structs:"ttl,omitempty"`

	Priority *int `structs:"priority,omitempty"`
	Port     *int `structs:"port,omitempty"`
	Weight   *int `structs:"weight,omitempty"`

	RedirectType     int    `structs:"redirect_type,omitempty"`
	Frame            *int   `structs:"frame,omitempty"`
	FrameTitle       string `structs:"frame_title,omitempty"`
	FrameKeywords    string `structs:"frame_keywords,omitempty"`
	FrameDescription string `structs:"frame_description,omitempty"`

	Algorithm       string `structs:"algorithm,omitempty"`
	FingerprintType string `structs:"fptype,omitempty"`

	Order   *int   `structs:"order,omitempty"`
	Pref    *int   `structs:"pref,omitempty"`
	Flag    *int   `structs:"flag,omitempty"`
	Params  string `structs:"params,omitempty"`
	Regexp  string `structs:"regexp,omitempty"`
	Replace string `structs:"replace,omitempty"`

	CAAFlag  *int   `structs:"caa_flag,omitempty"`
	CAAType  string `structs:"caa_type,omitempty"`
	CAAValue string `structs:"caa_value,omitempty"`

	TLSAUsage        *int `structs:"tlsa_usage,omitempty"`
	TLSASelector     *int `structs:"tlsa_selector,omitempty"`
	TLSAMatchingType *int `structs:"tlsa_matching_type,omitempty"`

	GeoDNSLocation int `structs:"geodns_location,omitempty"`
}

// AvailableRecordTypes returns the record types available for a zone type
// (domain, reverse, or parked).
func AvailableRecordTypes(ctx context.Context, zoneType string) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		params, err := parameters.New(parameters.Field{Name: "zone-type", Value: zoneType})
		if err != nil {
			return nil, err
		}
		return api.Get(ctx, "/dns/get-available-record-types.json", params.Map())
	})
}

// AvailableTTLs returns the TTL values the API accepts.
func AvailableTTLs(ctx context.Context) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		auth, err := parameters.AuthMap()
		if err != nil {
			return nil, err
		}
		return api.Get(ctx, "/dns/get-available-ttl.json", auth)
	})
}

// ListParams are the arguments to List. Host and RecordType narrow the
// listing; use "@" as host for the zone apex.
type ListParams struct {
	DomainName string
	Host       string
	RecordType string
}

// List returns the records of a domain, keyed by record id.
func List(ctx context.Context, p ListParams) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		params, err := parameters.New(
			parameters.Field{Name: "domain-name", Value: p.DomainName},
			parameters.Field{Name: "host", Value: p.Host, Optional: true},
			parameters.Field{Name: "type", Value: p.RecordType, Optional: true},
		)
		if err != nil {
			return nil, err
		}
		return api.Get(ctx, "/dns/records.json", params.Map())
	})
}

// Create adds a DNS record to a domain. Which attributes are required
// depends on the record type.
func Create(ctx context.Context, domainName, recordType string, attrs Attributes) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		args := api.Args(attrs)
		args["domain_name"] = domainName
		args["record_type"] = recordType

		params, err := buildParameters(args)
		if err != nil {
			return nil, err
		}
		return api.Post(ctx, "/dns/add-record.json", params.Map())
	})
}

// Transfer imports all records for the domain from another DNS server via
// AXFR. The domain name must match on both servers.
func Transfer(ctx context.Context, domainName, server string) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		params, err := parameters.New(
			parameters.Field{Name: "domain-name", Value: domainName},
			parameters.Field{Name: "server", Value: server},
		)
		if err != nil {
			return nil, err
		}
		return api.Post(ctx, "/dns/axfr-import.json", params.Map())
	})
}

// Copy copies all records from one of the account's domains into another,
// optionally deleting the destination's current records first.
func Copy(ctx context.Context, domainName, fromDomain string, deleteCurrentRecords bool) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		deleteFlag := 0
		if deleteCurrentRecords {
			deleteFlag = 1
		}

		params, err := parameters.New(
			parameters.Field{Name: "domain-name", Value: domainName},
			parameters.Field{Name: "from-domain", Value: fromDomain},
			parameters.Field{Name: "delete-current-records", Value: deleteFlag},
		)
		if err != nil {
			return nil, err
		}
		return api.Get(ctx, "/dns/copy-records.json", params.Map())
	})
}

// Get returns a single record of a domain. It wraps List, extracting just
// the requested record; a missing id reports a not-found failure in the
// envelope.
func Get(ctx context.Context, domainName string, recordID int) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		listing := List(ctx, ListParams{DomainName: domainName})
		if !listing.Success() {
			return nil, &api.Error{Message: listing.Error, StatusCode: listing.StatusCode}
		}

		record, ok := listing.PayloadMap()[strconv.Itoa(recordID)]
		if !ok {
			return nil, &api.Error{
				Message:    fmt.Sprintf("Record %q not found in %q zone.", strconv.Itoa(recordID), domainName),
				StatusCode: http.StatusNotFound,
			}
		}

		return api.StubResponse(record, listing.StatusCode), nil
	})
}

// Export returns all records of the domain in BIND zone-file format.
func Export(ctx context.Context, domainName string) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		params, err := parameters.New(parameters.Field{Name: "domain-name", Value: domainName})
		if err != nil {
			return nil, err
		}
		return api.Get(ctx, "/dns/records-export.json", params.Map())
	})
}

// DynamicURL returns the URL that dynamically points an A or AAAA record at
// the address of whatever device calls it.
func DynamicURL(ctx context.Context, domainName string, recordID int) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		params, err := parameters.New(
			parameters.Field{Name: "domain-name", Value: domainName},
			parameters.Field{Name: "record-id", Value: recordID},
		)
		if err != nil {
			return nil, err
		}
		return api.Get(ctx, "/dns/get-dynamic-url.json", params.Map())
	})
}

// UpdateParams are the arguments to Update. RecordType is validation-only
// (record types cannot change); when omitted it is fetched with an extra
// call. With Patch set, unspecified attributes keep their current remote
// values.
type UpdateParams struct {
	DomainName string `structs:"domain_name"`
	RecordID   int    `structs:"record_id"`
	RecordType string `structs:"record_type,omitempty"`
	Patch      bool   `structs:"patch,omitempty"`

	Attributes `structs:",flatten"`
}

// Update modifies a DNS record.
func Update(ctx context.Context, p UpdateParams) *api.Response {
	return updateEndpoint(ctx, api.Args(p))
}

// PatchRecord is a convenience for Update with the patch flag set.
func PatchRecord(ctx context.Context, p UpdateParams) *api.Response {
	p.Patch = true
	return Update(ctx, p)
}

var updateEndpoint = api.PatchUpdate(rawUpdate, rawGet, "domain_name", "record_id")

func rawGet(ctx context.Context, args map[string]any) *api.Response {
	domainName, _ := args["domain_name"].(string)
	return Get(ctx, domainName, asRecordID(args["record_id"]))
}

func rawUpdate(ctx context.Context, args map[string]any) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		recordType, _ := args["record_type"].(string)
		if recordType == "" {
			existing := rawGet(ctx, args)
			if !existing.Success() {
				return nil, &api.Error{Message: existing.Error, StatusCode: existing.StatusCode}
			}
			recordType, _ = existing.PayloadMap()["type"].(string)
			args["record_type"] = recordType
		}

		params, err := buildParameters(args)
		if err != nil {
			return nil, err
		}

		// The record type steers validation only; ClouDNS does not accept
		// it on updates.
		fields := params.Map()
		delete(fields, "record-type")

		return api.Post(ctx, "/dns/mod-record.json", fields)
	})
}

func asRecordID(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// Activate makes a record live.
func Activate(ctx context.Context, domainName string, recordID int) *api.Response {
	return changeStatus(ctx, domainName, recordID, parameters.Field{Name: "status", Value: 1})
}

// Deactivate takes a record out of service without deleting it.
func Deactivate(ctx context.Context, domainName string, recordID int) *api.Response {
	return changeStatus(ctx, domainName, recordID, parameters.Field{Name: "status", Value: 0})
}

// ToggleActivation flips a record's active status.
func ToggleActivation(ctx context.Context, domainName string, recordID int) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		params, err := parameters.New(
			parameters.Field{Name: "domain-name", Value: domainName},
			parameters.Field{Name: "record-id", Value: recordID},
		)
		if err != nil {
			return nil, err
		}
		return api.Post(ctx, "/dns/change-record-status.json", params.Map())
	})
}

// Delete removes a DNS record.
func Delete(ctx context.Context, domainName string, recordID int) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		params, err := parameters.New(
			parameters.Field{Name: "domain-name", Value: domainName},
			parameters.Field{Name: "record-id", Value: recordID},
		)
		if err != nil {
			return nil, err
		}
		return api.Post(ctx, "/dns/delete-record.json", params.Map())
	})
}

func changeStatus(ctx context.Context, domainName string, recordID int, status parameters.Field) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		params, err := parameters.New(
			parameters.Field{Name: "domain-name", Value: domainName},
			parameters.Field{Name: "record-id", Value: recordID},
			status,
		)
		if err != nil {
			return nil, err
		}
		return api.Post(ctx, "/dns/change-record-status.json", params.Map())
	})
}
