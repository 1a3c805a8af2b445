// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"

	"github.com/luxfi/vault/utils/units"
	"github.com/luxfi/vault/vault/allocation"
	"github.com/luxfi/vault/vault/unlock"
)

// Account returns the vault's own account.
func (e *Engine) Account() ids.ShortID {
	return e.account
}

func (e *Engine) GetMinStake() *uint256.Int {
	return e.minStake.Clone()
}

func (e *Engine) GetTotalPooled() *uint256.Int {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.vault.TotalPooled.Clone()
}

// GetTotalShares returns minted shares plus virtual shares accrued up to now.
func (e *Engine) GetTotalShares() (*uint256.Int, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.vault.Fees.TotalSharesAt(e.clock.UnixMilli())
}

func (e *Engine) GetTotalSharesMinted() *uint256.Int {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.vault.Fees.SharesMinted.Clone()
}

// GetCurrentVirtualShares returns the virtual shares accrued up to now.
func (e *Engine) GetCurrentVirtualShares() (*uint256.Int, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.vault.Fees.VirtualSharesAt(e.clock.UnixMilli())
}

func (e *Engine) GetFeePercentage() uint16 {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.vault.Fees.FeePercentage
}

func (e *Engine) GetIncentivePercentage() uint16 {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.vault.IncentivePercentage
}

// GetPendingUnlocks returns the number of unlock requests not yet redeemed.
func (e *Engine) GetPendingUnlocks() uint64 {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.vault.PendingUnlocks
}

// GetCooldownPeriod returns the cooldown period in milliseconds.
func (e *Engine) GetCooldownPeriod() uint64 {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.vault.CooldownPeriod
}

func (e *Engine) GetShareTokenContract() ids.ShortID {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.vault.ShareToken
}

func (e *Engine) GetRegistryContract() ids.ShortID {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.vault.Registry
}

func (e *Engine) GetRoleAdjustFee() ids.ShortID {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.vault.RoleAdjustFee
}

func (e *Engine) GetRoleFeeTo() ids.ShortID {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.vault.RoleFeeTo
}

// GetRoleSetCode returns the holder of the set code role, and false once the
// role has been disabled.
func (e *Engine) GetRoleSetCode() (ids.ShortID, bool) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if !e.vault.SetCodeEnabled {
		return ids.ShortEmpty, false
	}
	return e.vault.RoleSetCode, true
}

func (e *Engine) GetCodeHash() ids.ID {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.vault.CodeHash
}

// GetSharesFromAzero converts base asset into shares at the current ratio.
func (e *Engine) GetSharesFromAzero(azero *uint256.Int) (*uint256.Int, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	return sharesFromAzero(&e.vault, e.clock.UnixMilli(), azero)
}

// GetAzeroFromShares converts shares into base asset at the current ratio.
func (e *Engine) GetAzeroFromShares(shares *uint256.Int) (*uint256.Int, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	return azeroFromShares(&e.vault, e.clock.UnixMilli(), shares)
}

// GetRate returns the base asset redeemable for one whole share.
func (e *Engine) GetRate() (*uint256.Int, error) {
	return e.GetAzeroFromShares(uint256.NewInt(units.Share))
}

// GetUnlockRequests returns the user's pending unlock requests. The index of
// a request is its unlock id.
func (e *Engine) GetUnlockRequests(user ids.ShortID) ([]unlock.Request, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	queue, err := e.state.GetUnlockQueue(user)
	if err != nil {
		return nil, err
	}
	return queue.Requests, nil
}

// GetWeightImbalances compares every agent's stake with its target share of
// totalPooled.
func (e *Engine) GetWeightImbalances(ctx context.Context, totalPooled *uint256.Int) (*allocation.Report, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	totalWeight, agents, err := e.getAgents(ctx)
	if err != nil {
		return nil, err
	}
	stakes, err := e.getStakes(ctx, agents)
	if err != nil {
		return nil, err
	}
	return allocation.Imbalances(agents, totalWeight, stakes, totalPooled)
}
