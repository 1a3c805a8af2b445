// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"errors"
	"net/http"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/vault/vault"

	avajson "github.com/luxfi/utils/json"
	json "github.com/luxfi/vault/utils/json"
)

var errMissingAmount = errors.New("missing amount")

// Service is the JSON-RPC surface of a vault.
//
// The caller of every mutating method is taken from its arguments. The
// service is meant for development networks where the host chain does not
// authenticate requests.
type Service struct {
	log    log.Logger
	engine *vault.Engine
}

func NewService(log log.Logger, engine *vault.Engine) *Service {
	return &Service{
		log:    log,
		engine: engine,
	}
}

func (s *Service) called(method string) {
	s.log.Debug("API called",
		log.String("service", Name),
		log.String("method", method),
	)
}

type EmptyReply struct{}

type StakeArgs struct {
	Caller ids.ShortID  `json:"caller"`
	Amount json.Uint256 `json:"amount"`
	// Referral is optional
	Referral ids.ShortID `json:"referral"`
}

type SharesReply struct {
	Shares json.Uint256 `json:"shares"`
}

// Stake deposits the base asset and mints shares to the caller. A non-empty
// referral is recorded with the stake.
func (s *Service) Stake(r *http.Request, args *StakeArgs, reply *SharesReply) error {
	s.called("stake")

	var (
		shares *uint256.Int
		err    error
	)
	if args.Referral == ids.ShortEmpty {
		shares, err = s.engine.Stake(r.Context(), args.Caller, args.Amount.Int())
	} else {
		shares, err = s.engine.StakeWithReferral(r.Context(), args.Caller, args.Referral, args.Amount.Int())
	}
	if err != nil {
		return err
	}
	reply.Shares = json.NewUint256(shares)
	return nil
}

type RequestUnlockArgs struct {
	Caller ids.ShortID  `json:"caller"`
	Shares json.Uint256 `json:"shares"`
}

type RequestUnlockReply struct {
	UnlockID avajson.Uint64 `json:"unlockID"`
}

func (s *Service) RequestUnlock(r *http.Request, args *RequestUnlockArgs, reply *RequestUnlockReply) error {
	s.called("requestUnlock")

	unlockID, err := s.engine.RequestUnlock(r.Context(), args.Caller, args.Shares.Int())
	reply.UnlockID = avajson.Uint64(unlockID)
	return err
}

type RedeemArgs struct {
	User     ids.ShortID    `json:"user"`
	UnlockID avajson.Uint64 `json:"unlockID"`
	// Withdraw first sweeps unbonded funds from every agent
	Withdraw bool `json:"withdraw"`
}

func (s *Service) Redeem(r *http.Request, args *RedeemArgs, _ *EmptyReply) error {
	s.called("redeem")

	if args.Withdraw {
		return s.engine.RedeemWithWithdraw(r.Context(), args.User, uint64(args.UnlockID))
	}
	return s.engine.Redeem(r.Context(), args.User, uint64(args.UnlockID))
}

func (s *Service) DelegateWithdrawUnbonded(r *http.Request, _ *struct{}, _ *EmptyReply) error {
	s.called("delegateWithdrawUnbonded")

	return s.engine.DelegateWithdrawUnbonded(r.Context())
}

type CallerArgs struct {
	Caller ids.ShortID `json:"caller"`
}

type CompoundReply struct {
	Incentive json.Uint256 `json:"incentive"`
}

func (s *Service) Compound(r *http.Request, args *CallerArgs, reply *CompoundReply) error {
	s.called("compound")

	incentive, err := s.engine.Compound(r.Context(), args.Caller)
	if err != nil {
		return err
	}
	reply.Incentive = json.NewUint256(incentive)
	return nil
}

func (s *Service) WithdrawFees(r *http.Request, args *CallerArgs, reply *SharesReply) error {
	s.called("withdrawFees")

	shares, err := s.engine.WithdrawFees(r.Context(), args.Caller)
	if err != nil {
		return err
	}
	reply.Shares = json.NewUint256(shares)
	return nil
}

type AdjustPercentageArgs struct {
	Caller ids.ShortID `json:"caller"`
	// Percentage is in basis points
	Percentage json.Uint16 `json:"percentage"`
}

func (s *Service) AdjustFee(r *http.Request, args *AdjustPercentageArgs, _ *EmptyReply) error {
	s.called("adjustFee")

	return s.engine.AdjustFee(r.Context(), args.Caller, uint16(args.Percentage))
}

func (s *Service) AdjustIncentive(r *http.Request, args *AdjustPercentageArgs, _ *EmptyReply) error {
	s.called("adjustIncentive")

	return s.engine.AdjustIncentive(r.Context(), args.Caller, uint16(args.Percentage))
}

type TransferRoleArgs struct {
	Caller     ids.ShortID `json:"caller"`
	NewAccount ids.ShortID `json:"newAccount"`
}

func (s *Service) TransferRoleAdjustFee(r *http.Request, args *TransferRoleArgs, _ *EmptyReply) error {
	s.called("transferRoleAdjustFee")

	return s.engine.TransferRoleAdjustFee(r.Context(), args.Caller, args.NewAccount)
}

func (s *Service) TransferRoleFeeTo(r *http.Request, args *TransferRoleArgs, _ *EmptyReply) error {
	s.called("transferRoleFeeTo")

	return s.engine.TransferRoleFeeTo(r.Context(), args.Caller, args.NewAccount)
}

func (s *Service) TransferRoleSetCode(r *http.Request, args *TransferRoleArgs, _ *EmptyReply) error {
	s.called("transferRoleSetCode")

	return s.engine.TransferRoleSetCode(r.Context(), args.Caller, args.NewAccount)
}

type SetCodeArgs struct {
	Caller   ids.ShortID `json:"caller"`
	CodeHash ids.ID      `json:"codeHash"`
}

func (s *Service) SetCode(r *http.Request, args *SetCodeArgs, _ *EmptyReply) error {
	s.called("setCode")

	return s.engine.SetCode(r.Context(), args.Caller, args.CodeHash)
}

func (s *Service) DisableSetCode(r *http.Request, args *CallerArgs, _ *EmptyReply) error {
	s.called("disableSetCode")

	return s.engine.DisableSetCode(r.Context(), args.Caller)
}

type GetVaultReply struct {
	Account             ids.ShortID    `json:"account"`
	ShareToken          ids.ShortID    `json:"shareToken"`
	Registry            ids.ShortID    `json:"registry"`
	MinStake            json.Uint256   `json:"minStake"`
	TotalPooled         json.Uint256   `json:"totalPooled"`
	TotalShares         json.Uint256   `json:"totalShares"`
	TotalSharesMinted   json.Uint256   `json:"totalSharesMinted"`
	VirtualShares       json.Uint256   `json:"virtualShares"`
	Rate                json.Uint256   `json:"rate"`
	FeePercentage       json.Uint16    `json:"feePercentage"`
	IncentivePercentage json.Uint16    `json:"incentivePercentage"`
	CooldownPeriod      avajson.Uint64 `json:"cooldownPeriod"`
	PendingUnlocks      avajson.Uint64 `json:"pendingUnlocks"`
	RoleAdjustFee       ids.ShortID    `json:"roleAdjustFee"`
	RoleFeeTo           ids.ShortID    `json:"roleFeeTo"`
	RoleSetCode         ids.ShortID    `json:"roleSetCode"`
	SetCodeEnabled      bool           `json:"setCodeEnabled"`
	CodeHash            ids.ID         `json:"codeHash"`
}

// GetVault returns the vault's configuration and totals.
func (s *Service) GetVault(_ *http.Request, _ *struct{}, reply *GetVaultReply) error {
	s.called("getVault")

	e := s.engine
	totalShares, err := e.GetTotalShares()
	if err != nil {
		return err
	}
	virtualShares, err := e.GetCurrentVirtualShares()
	if err != nil {
		return err
	}
	rate, err := e.GetRate()
	if err != nil {
		return err
	}

	reply.Account = e.Account()
	reply.ShareToken = e.GetShareTokenContract()
	reply.Registry = e.GetRegistryContract()
	reply.MinStake = json.NewUint256(e.GetMinStake())
	reply.TotalPooled = json.NewUint256(e.GetTotalPooled())
	reply.TotalShares = json.NewUint256(totalShares)
	reply.TotalSharesMinted = json.NewUint256(e.GetTotalSharesMinted())
	reply.VirtualShares = json.NewUint256(virtualShares)
	reply.Rate = json.NewUint256(rate)
	reply.FeePercentage = json.Uint16(e.GetFeePercentage())
	reply.IncentivePercentage = json.Uint16(e.GetIncentivePercentage())
	reply.CooldownPeriod = avajson.Uint64(e.GetCooldownPeriod())
	reply.PendingUnlocks = avajson.Uint64(e.GetPendingUnlocks())
	reply.RoleAdjustFee = e.GetRoleAdjustFee()
	reply.RoleFeeTo = e.GetRoleFeeTo()
	reply.RoleSetCode, reply.SetCodeEnabled = e.GetRoleSetCode()
	reply.CodeHash = e.GetCodeHash()
	return nil
}

type AmountArgs struct {
	Amount *json.Uint256 `json:"amount"`
}

type AmountReply struct {
	Amount json.Uint256 `json:"amount"`
}

// GetSharesFromAzero converts base asset into shares at the current ratio.
func (s *Service) GetSharesFromAzero(_ *http.Request, args *AmountArgs, reply *AmountReply) error {
	s.called("getSharesFromAzero")

	if args.Amount == nil {
		return errMissingAmount
	}
	shares, err := s.engine.GetSharesFromAzero(args.Amount.Int())
	if err != nil {
		return err
	}
	reply.Amount = json.NewUint256(shares)
	return nil
}

// GetAzeroFromShares converts shares into base asset at the current ratio.
func (s *Service) GetAzeroFromShares(_ *http.Request, args *AmountArgs, reply *AmountReply) error {
	s.called("getAzeroFromShares")

	if args.Amount == nil {
		return errMissingAmount
	}
	azero, err := s.engine.GetAzeroFromShares(args.Amount.Int())
	if err != nil {
		return err
	}
	reply.Amount = json.NewUint256(azero)
	return nil
}

type GetUnlockRequestsArgs struct {
	User ids.ShortID `json:"user"`
}

type UnlockRequest struct {
	UnlockID     avajson.Uint64 `json:"unlockID"`
	CreationTime avajson.Uint64 `json:"creationTime"`
	ReadyAt      avajson.Uint64 `json:"readyAt"`
	Azero        json.Uint256   `json:"azero"`
}

type GetUnlockRequestsReply struct {
	Requests []UnlockRequest `json:"requests"`
}

func (s *Service) GetUnlockRequests(_ *http.Request, args *GetUnlockRequestsArgs, reply *GetUnlockRequestsReply) error {
	s.called("getUnlockRequests")

	requests, err := s.engine.GetUnlockRequests(args.User)
	if err != nil {
		return err
	}
	cooldown := s.engine.GetCooldownPeriod()

	reply.Requests = make([]UnlockRequest, len(requests))
	for i, request := range requests {
		reply.Requests[i] = UnlockRequest{
			UnlockID:     avajson.Uint64(i),
			CreationTime: avajson.Uint64(request.CreationTime),
			ReadyAt:      avajson.Uint64(request.ReadyAt(cooldown)),
			Azero:        json.NewUint256(&request.Azero),
		}
	}
	return nil
}

type AgentImbalance struct {
	Address ids.ShortID    `json:"address"`
	Weight  avajson.Uint64 `json:"weight"`
	Stake   json.Uint256   `json:"stake"`
	// Imbalance is stake minus target in base 10. Positive values mark an
	// over-allocated agent.
	Imbalance string `json:"imbalance"`
}

type GetWeightImbalancesReply struct {
	TotalWeight avajson.Uint64   `json:"totalWeight"`
	PosDiff     json.Uint256     `json:"posDiff"`
	NegDiff     json.Uint256     `json:"negDiff"`
	Agents      []AgentImbalance `json:"agents"`
}

// GetWeightImbalances reports every agent's distance from its weighted share
// of amount, or of the pool when amount is omitted.
func (s *Service) GetWeightImbalances(r *http.Request, args *AmountArgs, reply *GetWeightImbalancesReply) error {
	s.called("getWeightImbalances")

	totalPooled := s.engine.GetTotalPooled()
	if args.Amount != nil {
		totalPooled = args.Amount.Int()
	}
	report, err := s.engine.GetWeightImbalances(r.Context(), totalPooled)
	if err != nil {
		return err
	}

	reply.TotalWeight = avajson.Uint64(report.TotalWeight)
	reply.PosDiff = json.NewUint256(report.PosDiff)
	reply.NegDiff = json.NewUint256(report.NegDiff)
	reply.Agents = make([]AgentImbalance, len(report.Agents))
	for i, agent := range report.Agents {
		reply.Agents[i] = AgentImbalance{
			Address:   agent.Address,
			Weight:    avajson.Uint64(agent.Weight),
			Stake:     json.NewUint256(report.Stakes[i]),
			Imbalance: report.Imbalances[i].String(),
		}
	}
	return nil
}
