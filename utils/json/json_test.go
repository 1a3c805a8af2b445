// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package json

import (
	stdjson "encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestUint256(t *testing.T) {
	require := require.New(t)

	amount := NewUint256(uint256.MustFromDecimal("340282366920938463463374607431768211456"))
	b, err := stdjson.Marshal(amount)
	require.NoError(err)
	require.JSONEq(`"340282366920938463463374607431768211456"`, string(b))

	var parsed Uint256
	require.NoError(stdjson.Unmarshal(b, &parsed))
	require.Equal(amount.Int(), parsed.Int())

	require.Error(stdjson.Unmarshal([]byte(`"-1"`), &parsed))
}

func TestUint16Bounds(t *testing.T) {
	require := require.New(t)

	var bps Uint16
	require.NoError(stdjson.Unmarshal([]byte(`"9999"`), &bps))
	require.Equal(Uint16(9999), bps)

	require.Error(stdjson.Unmarshal([]byte(`"65536"`), &bps))
}
