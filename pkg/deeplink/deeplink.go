// Package deeplink builds client-side navigation URLs embedded in push
// notification payloads. Routes must match the Expo Router structure of the
// mobile app.
package deeplink

import (
	"net/url"
	"sort"
	"strings"
)

const (
	RouteChat           = "/chat"
	RouteListingOffers  = "/profile-listing-offers"
	RouteMyListings     = "/profile-my-listings"
	RoutePastOrders     = "/profile-past-orders"
	RouteWishlist       = "/profile-my-wishlist"
	RouteProductDetails = "/product-detail"
	RouteDashboard      = "/dashboard"
)

// Build returns route plus query-encoded params. Params are sorted by key so
// the same input always yields the same URL.
func Build(route string, params map[string]string) string {
	if len(params) == 0 {
		return route
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(params[k]))
	}

	return route + "?" + strings.Join(parts, "&")
}
