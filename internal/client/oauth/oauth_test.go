package oauth

import (
	"net/url"
	"testing"

	"github.com/dmitrijs2005/zklogin/internal/client/models"
	"github.com/dmitrijs2005/zklogin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ids = ClientIDs{
	models.ProviderGoogle:   "g-id",
	models.ProviderTwitch:   "t-id",
	models.ProviderFacebook: "f-id",
}

func TestAuthURL_CommonParams(t *testing.T) {
	for _, p := range models.Providers {
		t.Run(string(p), func(t *testing.T) {
			raw, err := AuthURL(p, ids, "http://localhost:1234", "NONCE")
			require.NoError(t, err)

			u, err := url.Parse(raw)
			require.NoError(t, err)
			q := u.Query()
			assert.Equal(t, ids[p], q.Get("client_id"))
			assert.Equal(t, "NONCE", q.Get("nonce"))
			assert.Equal(t, "http://localhost:1234", q.Get("redirect_uri"))
			assert.Equal(t, "id_token", q.Get("response_type"))
			assert.Equal(t, "openid", q.Get("scope"))
		})
	}
}

func TestAuthURL_ProviderSpecific(t *testing.T) {
	raw, err := AuthURL(models.ProviderGoogle, ids, "http://r", "n")
	require.NoError(t, err)
	u, _ := url.Parse(raw)
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Empty(t, u.Query().Get("force_verify"))

	raw, err = AuthURL(models.ProviderTwitch, ids, "http://r", "n")
	require.NoError(t, err)
	u, _ = url.Parse(raw)
	assert.Equal(t, "id.twitch.tv", u.Host)
	assert.Equal(t, "true", u.Query().Get("force_verify"))
	assert.Equal(t, "en", u.Query().Get("lang"))
	assert.Equal(t, "login", u.Query().Get("login_type"))

	raw, err = AuthURL(models.ProviderFacebook, ids, "http://r", "n")
	require.NoError(t, err)
	u, _ = url.Parse(raw)
	assert.Equal(t, "/v19.0/dialog/oauth", u.Path)
}

func TestAuthURL_UnknownProvider(t *testing.T) {
	_, err := AuthURL(models.Provider("Myspace"), ids, "http://r", "n")
	require.ErrorIs(t, err, common.ErrUnknownProvider)
}
