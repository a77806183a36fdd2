package deeplink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildWithoutParams(t *testing.T) {
	assert.Equal(t, "/profile-my-listings", Build(RouteMyListings, nil))
	assert.Equal(t, "/dashboard", Build(RouteDashboard, map[string]string{}))
}

func TestBuildSortsParams(t *testing.T) {
	url := Build(RouteChat, map[string]string{
		"offerId":   "o-1",
		"isSeller":  "true",
		"listingId": "l-1",
	})
	assert.Equal(t, "/chat?isSeller=true&listingId=l-1&offerId=o-1", url)
}

func TestBuildEscapesValues(t *testing.T) {
	url := Build(RouteProductDetails, map[string]string{
		"listingId": "a b&c",
	})
	assert.Equal(t, "/product-detail?listingId=a+b%26c", url)
}
