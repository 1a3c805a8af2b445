// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package devnet

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/vault/utils/timer/mockable"
	"github.com/luxfi/vault/vault/config"
	"github.com/luxfi/vault/vault/fees"

	avajson "github.com/luxfi/utils/json"
	json "github.com/luxfi/vault/utils/json"
)

func newTestDevnet(t *testing.T, weights ...uint64) *Devnet {
	clock := &mockable.Clock{}
	clock.Set(time.UnixMilli(1_700_000_000_000))
	d, err := New(
		Config{
			Vault:        config.DefaultConfig(),
			AgentWeights: weights,
		},
		memdb.New(),
		clock,
		log.NewNoOpLogger(),
		metric.NewRegistry(),
	)
	require.NoError(t, err)
	return d
}

func TestDevnetStakeAndCheckPool(t *testing.T) {
	require := require.New(t)

	d := newTestDevnet(t, 100, 200)
	require.Len(d.Agents, 2)
	require.Equal(14*fees.Day, d.Engine.GetCooldownPeriod())

	user := ids.GenerateTestShortID()
	d.Network.Fund(user, uint256.NewInt(30_000_000))
	_, err := d.Engine.Stake(t.Context(), user, uint256.NewInt(30_000_000))
	require.NoError(err)
	require.NoError(d.CheckPool(t.Context()))

	// rewards not yet compounded are outside the pool
	require.NoError(d.Network.AddRewards(d.Agents[0], uint256.NewInt(1_000_000)))
	require.NoError(d.CheckPool(t.Context()))
}

func TestServiceControls(t *testing.T) {
	require := require.New(t)

	d := newTestDevnet(t, 100)
	s := NewService(log.NewNoOpLogger(), d)
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	user := ids.GenerateTestShortID()

	require.NoError(s.Fund(r, &AccountAmountArgs{
		Account: user,
		Amount:  json.NewUint256(uint256.NewInt(5_000_000)),
	}, &EmptyReply{}))
	balance := GetBalanceReply{}
	require.NoError(s.GetBalance(r, &GetBalanceArgs{Account: user}, &balance))
	require.Equal(uint256.NewInt(5_000_000), balance.Balance.Int())
	require.True(balance.Shares.Int().IsZero())

	agent := ids.GenerateTestShortID()
	require.NoError(s.AddAgent(r, &AgentArgs{Agent: agent, Weight: 50}, &EmptyReply{}))
	require.NoError(s.UpdateAgent(r, &AgentArgs{Agent: agent, Weight: 0}, &EmptyReply{}))

	info := GetDevnetReply{}
	require.NoError(s.GetDevnet(r, nil, &info))
	require.Equal(d.Admin, info.Admin)
	require.Equal(d.Network.VaultAccount(), info.Vault)
	require.Equal([]ids.ShortID{d.Agents[0], agent}, info.Agents)

	require.NoError(s.RemoveAgent(r, &AgentArgs{Agent: agent}, &EmptyReply{}))
	require.Len(d.Agents, 1)

	timeReply := TimeReply{}
	require.NoError(s.AdvanceTime(r, &AdvanceTimeArgs{Milliseconds: avajson.Uint64(fees.Day)}, &timeReply))
	require.Equal(uint64(1_700_000_000_000)+fees.Day, uint64(timeReply.Time))
}
