package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	mistPerSUI  = 1_000_000_000
	suiDecimals = 9
)

var errBadAmount = errors.New("amount must be a positive SUI value with at most 9 decimals")

// formatSUI renders a MIST amount in SUI without trailing zeros.
func formatSUI(mist uint64) string {
	whole, frac := mist/mistPerSUI, mist%mistPerSUI
	if frac == 0 {
		return fmt.Sprintf("%d SUI", whole)
	}
	f := strings.TrimRight(fmt.Sprintf("%09d", frac), "0")
	return fmt.Sprintf("%d.%s SUI", whole, f)
}

// parseSUI converts a decimal SUI amount such as "0.5" to MIST.
func parseSUI(s string) (uint64, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(s), ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > suiDecimals {
		return 0, errBadAmount
	}

	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil || w > (^uint64(0))/mistPerSUI {
		return 0, errBadAmount
	}
	var f uint64
	if frac != "" {
		f, err = strconv.ParseUint(frac+strings.Repeat("0", suiDecimals-len(frac)), 10, 64)
		if err != nil {
			return 0, errBadAmount
		}
	}

	mist := w*mistPerSUI + f
	if mist == 0 {
		return 0, errBadAmount
	}
	return mist, nil
}
