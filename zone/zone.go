// Package zone wraps the ClouDNS zone endpoints: listing, creating,
// updating, activating, and deleting DNS zones, plus the DNSSEC and GeoDNS
// queries that operate at the zone level.
package zone

import (
	"context"
	"strings"

	"github.com/prestix-studio/cloudns-api/api"
	"github.com/prestix-studio/cloudns-api/parameters"
)

// ListParams are the arguments to List. Zero values fall back to page 1
// with 10 rows.
type ListParams struct {
	Page        int
	RowsPerPage int
	Search      string
	GroupID     string
}

// List returns a paginated list of zones.
func List(ctx context.Context, p ListParams) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		if p.Page == 0 {
			p.Page = 1
		}
		if p.RowsPerPage == 0 {
			p.RowsPerPage = 10
		}

		params, err := parameters.New(
			parameters.Field{Name: "page", Value: p.Page},
			parameters.Field{Name: "rows-per-page", Value: p.RowsPerPage},
			parameters.Field{Name: "search", Value: p.Search, Optional: true},
			parameters.Field{Name: "group-id", Value: p.GroupID, Optional: true},
		)
		if err != nil {
			return nil, err
		}
		return api.Get(ctx, "/dns/list-zones.json", params.Map())
	})
}

// PageCountParams are the arguments to GetPageCount.
type PageCountParams struct {
	RowsPerPage int
	Search      string
	GroupID     string
}

// GetPageCount returns the number of pages for the full or filtered zone
// listing.
func GetPageCount(ctx context.Context, p PageCountParams) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		if p.RowsPerPage == 0 {
			p.RowsPerPage = 10
		}

		params, err := parameters.New(
			parameters.Field{Name: "rows-per-page", Value: p.RowsPerPage},
			parameters.Field{Name: "search", Value: p.Search, Optional: true},
			parameters.Field{Name: "group-id", Value: p.GroupID, Optional: true},
		)
		if err != nil {
			return nil, err
		}
		return api.Get(ctx, "/dns/get-pages-count.json", params.Map())
	})
}

// CreateOptions carry the zone-type-specific arguments to Create.
type CreateOptions struct {
	// NS seeds the starting NS records; master zones only.
	NS []string

	// MasterIP is the master server address; required for slave zones.
	MasterIP string
}

// Create registers a new DNS zone. The zone type is lowercased before
// transmission; slave zones require a master IP and master zones may carry
// starting nameservers.
func Create(ctx context.Context, domainName, zoneType string, opts CreateOptions) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		zoneType = strings.ToLower(zoneType)

		fields := []parameters.Field{
			{Name: "domain-name", Value: domainName},
			{Name: "zone-type", Value: zoneType},
		}
		switch zoneType {
		case "slave":
			fields = append(fields, parameters.Field{Name: "master-ip", Value: opts.MasterIP, As: "required"})
		case "master":
			fields = append(fields, parameters.Field{Name: "ns", Value: opts.NS, Optional: true})
		}

		params, err := parameters.New(fields...)
		if err != nil {
			return nil, err
		}
		return api.Post(ctx, "/dns/register.json", params.Map())
	})
}

// Get retrieves the zone information for a domain.
func Get(ctx context.Context, domainName string) *api.Response {
	return domainGet(ctx, "/dns/get-zone-info.json", domainName)
}

// Update bumps the zone's serial number.
func Update(ctx context.Context, domainName string) *api.Response {
	return domainPost(ctx, "/dns/update-zone.json", domainName)
}

// Activate enables the domain's zone.
func Activate(ctx context.Context, domainName string) *api.Response {
	return changeStatus(ctx, domainName, parameters.Field{Name: "status", Value: 1})
}

// Deactivate disables the domain's zone.
func Deactivate(ctx context.Context, domainName string) *api.Response {
	return changeStatus(ctx, domainName, parameters.Field{Name: "status", Value: 0})
}

// ToggleActivation flips the zone's activation status.
func ToggleActivation(ctx context.Context, domainName string) *api.Response {
	return domainPost(ctx, "/dns/change-status.json", domainName)
}

// Delete removes the domain's zone.
func Delete(ctx context.Context, domainName string) *api.Response {
	return domainPost(ctx, "/dns/delete.json", domainName)
}

// GetStats returns the zone totals and limits for the account's plan.
func GetStats(ctx context.Context) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		params, err := parameters.New()
		if err != nil {
			return nil, err
		}
		return api.Get(ctx, "/dns/get-zones-stats.json", params.Map())
	})
}

// DNSSECAvailable checks whether DNSSEC can be enabled for the domain.
func DNSSECAvailable(ctx context.Context, domainName string) *api.Response {
	return domainGet(ctx, "/dns/is-dnssec-available.json", domainName)
}

// DNSSECActivate enables DNSSEC for the domain's zone.
func DNSSECActivate(ctx context.Context, domainName string) *api.Response {
	return domainPost(ctx, "/dns/activate-dnssec.json", domainName)
}

// DNSSECDeactivate disables DNSSEC for the domain's zone.
func DNSSECDeactivate(ctx context.Context, domainName string) *api.Response {
	return domainPost(ctx, "/dns/deactivate-dnssec.json", domainName)
}

// DNSSECDSRecords retrieves the DNSSEC DS records for the domain's zone.
func DNSSECDSRecords(ctx context.Context, domainName string) *api.Response {
	return domainGet(ctx, "/dns/get-dnssec-ds-records.json", domainName)
}

// IsUpdated reports whether the zone is synchronized across all
// nameservers.
func IsUpdated(ctx context.Context, domainName string) *api.Response {
	return domainGet(ctx, "/dns/is-updated.json", domainName)
}

// GeoDNSLocations lists the GeoDNS locations available to the zone.
func GeoDNSLocations(ctx context.Context, domainName string) *api.Response {
	return domainGet(ctx, "/dns/get-geodns-locations.json", domainName)
}

func changeStatus(ctx context.Context, domainName string, status parameters.Field) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		params, err := parameters.New(
			parameters.Field{Name: "domain-name", Value: domainName},
			status,
		)
		if err != nil {
			return nil, err
		}
		return api.Post(ctx, "/dns/change-status.json", params.Map())
	})
}

func domainGet(ctx context.Context, path, domainName string) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		params, err := parameters.New(parameters.Field{Name: "domain-name", Value: domainName})
		if err != nil {
			return nil, err
		}
		return api.Get(ctx, path, params.Map())
	})
}

func domainPost(ctx context.Context, path, domainName string) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		params, err := parameters.New(parameters.Field{Name: "domain-name", Value: domainName})
		if err != nil {
			return nil, err
		}
		return api.Post(ctx, path, params.Map())
	})
}
