package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceDecodesStringsAndNumbers(t *testing.T) {
	var r struct {
		A Price  `json:"a"`
		B Price  `json:"b"`
		C *Price `json:"c"`
		D Price  `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"120.500","b":80,"c":null,"d":""}`), &r))
	assert.Equal(t, Price(120.5), r.A)
	assert.Equal(t, Price(80), r.B)
	assert.Nil(t, r.C)
	assert.Equal(t, Price(0), r.D)

	assert.Error(t, json.Unmarshal([]byte(`{"a":"-1"}`), &r))
	assert.Error(t, json.Unmarshal([]byte(`{"a":"cheap"}`), &r))
	for _, v := range []string{`"NaN"`, `"Inf"`, `"-Inf"`, `"Infinity"`} {
		assert.Error(t, json.Unmarshal([]byte(`{"a":`+v+`}`), &r), v)
	}

	var p Price
	assert.Error(t, p.UnmarshalJSON([]byte(`"80`)))
	assert.Error(t, p.UnmarshalJSON([]byte(`"`)))
	require.NoError(t, p.UnmarshalJSON([]byte(` "42.5" `)))
	assert.Equal(t, Price(42.5), p)

	out, err := json.Marshal(Price(99.5))
	require.NoError(t, err)
	assert.Equal(t, "99.5", string(out))
}

func TestRoomHelpers(t *testing.T) {
	discount := Price(80)
	r := Room{PricePerNight: 100, DiscountPrice: &discount, RoomSize: "32m"}
	assert.Equal(t, Price(80), r.EffectivePrice())

	n, ok := r.Size()
	assert.True(t, ok)
	assert.Equal(t, 32, n)

	r.RoomSize = "n/a"
	_, ok = r.Size()
	assert.False(t, ok)

	assert.True(t, BedKing.Valid())
	assert.False(t, BedType("hammock").Valid())
}

func TestIdentityExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, Identity{}.Expired(now))
	assert.True(t, Identity{ExpiresAt: now}.Expired(now))
	assert.False(t, Identity{ExpiresAt: now.Add(time.Minute)}.Expired(now))
}

func TestParseFilterMode(t *testing.T) {
	m, ok := ParseFilterMode("")
	assert.True(t, ok)
	assert.Equal(t, FilterLastWins, m)

	m, ok = ParseFilterMode("composed")
	assert.True(t, ok)
	assert.Equal(t, FilterComposed, m)

	_, ok = ParseFilterMode("fuzzy")
	assert.False(t, ok)
}
