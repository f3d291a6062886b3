package models

import (
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/zklogin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider("google")
	require.NoError(t, err)
	assert.Equal(t, ProviderGoogle, p)

	p, err = ParseProvider("TWITCH")
	require.NoError(t, err)
	assert.Equal(t, ProviderTwitch, p)

	_, err = ParseProvider("github")
	require.ErrorIs(t, err, common.ErrUnknownProvider)
}

func TestAccountRecord_JSONFieldNames(t *testing.T) {
	a := AccountRecord{
		Provider: ProviderFacebook, UserAddr: "0x1", ZkProofs: json.RawMessage(`{"a":1}`),
		EphemeralPrivateKey: "k", UserSalt: "42", Sub: "u1", Aud: "c1", MaxEpoch: 7,
	}
	b, err := json.Marshal(a)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"provider":"Facebook","userAddr":"0x1","zkProofs":{"a":1},
		"ephemeralPrivateKey":"k","userSalt":"42","sub":"u1","aud":"c1","maxEpoch":7
	}`, string(b))
}

func TestBalanceMap_AbsentIsNotZero(t *testing.T) {
	b := NewBalanceMap()

	_, ok := b.Get("0xa")
	assert.False(t, ok)

	b.Set("0xa", 0)
	v, ok := b.Get("0xa")
	assert.True(t, ok)
	assert.Zero(t, v)
}

func TestBalanceMap_MergeKeepsUnansweredEntries(t *testing.T) {
	b := NewBalanceMap()
	b.Set("0xa", 1)
	b.Set("0xb", 2)

	b.Merge(map[string]uint64{"0xb": 20, "0xc": 30})

	va, _ := b.Get("0xa")
	vb, _ := b.Get("0xb")
	vc, _ := b.Get("0xc")
	assert.Equal(t, uint64(1), va)
	assert.Equal(t, uint64(20), vb)
	assert.Equal(t, uint64(30), vc)

	b.Reset()
	assert.Zero(t, b.Len())
}
