// Package models defines the records the zkLogin client persists and passes
// between its components.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/zklogin/internal/common"
)

// Provider identifies an OpenID provider.
type Provider string

const (
	ProviderGoogle   Provider = "Google"
	ProviderTwitch   Provider = "Twitch"
	ProviderFacebook Provider = "Facebook"
)

// Providers lists the supported providers in display order.
var Providers = []Provider{ProviderGoogle, ProviderTwitch, ProviderFacebook}

// ParseProvider accepts a provider name in any letter case.
func ParseProvider(s string) (Provider, error) {
	for _, p := range Providers {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownProvider, s)
}
