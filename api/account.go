package api

import (
	"context"

	"github.com/prestix-studio/cloudns-api/parameters"
)

// GetLogin reports the login status for the configured credentials.
func GetLogin(ctx context.Context) *Response {
	return authOnly(ctx, "/dns/login.json")
}

// GetNameservers lists the nameservers available to the account.
func GetNameservers(ctx context.Context) *Response {
	return authOnly(ctx, "/dns/available-name-servers.json")
}

// GetMyIP returns the caller's IP address as seen by ClouDNS.
func GetMyIP(ctx context.Context) *Response {
	return authOnly(ctx, "/dns/get-my-ip.json")
}

// IsGeoDNSAvailable reports whether the account's plan provides GeoDNS
// support.
func IsGeoDNSAvailable(ctx context.Context) *Response {
	return authOnly(ctx, "/dns/is-geodns-available.json")
}

func authOnly(ctx context.Context, path string) *Response {
	return Run(func() (*RawResponse, error) {
		auth, err := parameters.AuthMap()
		if err != nil {
			return nil, err
		}
		return Get(ctx, path, auth)
	})
}
