// Package oauth builds OpenID authorization URLs for the supported providers.
// Every provider is asked for an id_token returned in the URL fragment, with
// the zkLogin nonce embedded.
package oauth

import (
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/zklogin/internal/client/models"
	"github.com/dmitrijs2005/zklogin/internal/common"
)

// Endpoint describes how to reach one provider.
type Endpoint struct {
	AuthURL string
	// Extra query parameters appended to the common set.
	Extra url.Values
}

var endpoints = map[models.Provider]Endpoint{
	models.ProviderGoogle: {
		AuthURL: "https://accounts.google.com/o/oauth2/v2/auth",
	},
	models.ProviderTwitch: {
		AuthURL: "https://id.twitch.tv/oauth2/authorize",
		Extra: url.Values{
			"force_verify": {"true"},
			"lang":         {"en"},
			"login_type":   {"login"},
		},
	},
	models.ProviderFacebook: {
		AuthURL: "https://www.facebook.com/v19.0/dialog/oauth",
	},
}

// ClientIDs maps each provider to the OAuth client id registered for it.
type ClientIDs map[models.Provider]string

// AuthURL returns the authorization URL for p.
func AuthURL(p models.Provider, clientIDs ClientIDs, redirectURI, nonce string) (string, error) {
	ep, ok := endpoints[p]
	if !ok {
		return "", fmt.Errorf("%w: %q", common.ErrUnknownProvider, p)
	}

	q := url.Values{}
	q.Set("client_id", clientIDs[p])
	q.Set("nonce", nonce)
	q.Set("redirect_uri", redirectURI)
	q.Set("response_type", "id_token")
	q.Set("scope", "openid")
	for k, vs := range ep.Extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	return ep.AuthURL + "?" + q.Encode(), nil
}
