// Package soa wraps the ClouDNS SOA endpoints for reading and updating a
// zone's Start-of-Authority record.
package soa

import (
	"context"

	"github.com/prestix-studio/cloudns-api/api"
	"github.com/prestix-studio/cloudns-api/parameters"
)

// Get retrieves the SOA record for a domain.
func Get(ctx context.Context, domainName string) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		params, err := parameters.New(parameters.Field{Name: "domain-name", Value: domainName})
		if err != nil {
			return nil, err
		}
		return api.Get(ctx, "/dns/soa-details.json", params.Map())
	})
}

// UpdateParams are the arguments to Update. Every field except Patch is
// required by the API for a full update; with Patch set, omitted fields are
// fetched from the current SOA record and only the supplied ones change.
type UpdateParams struct {
	DomainName string `structs:"domain_name"`
	PrimaryNS  string `structs:"primary_ns,omitempty"`
	AdminMail  string `structs:"admin_mail,omitempty"`
	Refresh    int    `structs:"refresh,omitempty"`
	Retry      int    `structs:"retry,omitempty"`
	Expire     int    `structs:"expire,omitempty"`
	DefaultTTL int    `structs:"default_ttl,omitempty"`
	Patch      bool   `structs:"patch,omitempty"`
}

// Update modifies the SOA record for a domain.
func Update(ctx context.Context, p UpdateParams) *api.Response {
	return updateEndpoint(ctx, api.Args(p))
}

// Patch is a convenience for Update with the patch flag set.
func Patch(ctx context.Context, p UpdateParams) *api.Response {
	p.Patch = true
	return Update(ctx, p)
}

var updateEndpoint = api.PatchUpdate(rawUpdate, rawGet, "domain_name")

func rawGet(ctx context.Context, args map[string]any) *api.Response {
	domainName, _ := args["domain_name"].(string)
	return Get(ctx, domainName)
}

func rawUpdate(ctx context.Context, args map[string]any) *api.Response {
	return api.Run(func() (*api.RawResponse, error) {
		params, err := parameters.New(
			parameters.Field{Name: "domain-name", Value: args["domain_name"]},
			parameters.Field{Name: "primary-ns", Value: args["primary_ns"]},
			parameters.Field{Name: "admin-mail", Value: args["admin_mail"]},
			parameters.Field{Name: "refresh", Value: args["refresh"], Min: bound(1200), Max: bound(43200)},
			parameters.Field{Name: "retry", Value: args["retry"], Min: bound(180), Max: bound(2419200)},
			parameters.Field{Name: "expire", Value: args["expire"], Min: bound(1209600), Max: bound(2419200)},
			parameters.Field{Name: "default-ttl", Value: args["default_ttl"], Min: bound(60), Max: bound(2419200)},
		)
		if err != nil {
			return nil, err
		}
		return api.Post(ctx, "/dns/modify-soa.json", params.Map())
	})
}

func bound(n int) *int {
	return &n
}
