// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package devnet

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	avajson "github.com/luxfi/utils/json"
	json "github.com/luxfi/vault/utils/json"
)

// ServiceName is the RPC service name of the devnet controls.
const ServiceName = "devnet"

// Service drives the in-memory network: funding accounts, managing agents,
// paying rewards and moving time.
type Service struct {
	log    log.Logger
	devnet *Devnet

	// lock guards devnet.Agents
	lock sync.Mutex
}

func NewService(logger log.Logger, devnet *Devnet) *Service {
	return &Service{
		log:    logger,
		devnet: devnet,
	}
}

func (s *Service) called(method string) {
	s.log.Debug("API called",
		log.String("service", ServiceName),
		log.String("method", method),
	)
}

type EmptyReply struct{}

type AccountAmountArgs struct {
	Account ids.ShortID  `json:"account"`
	Amount  json.Uint256 `json:"amount"`
}

// Fund credits an account with the base asset.
func (s *Service) Fund(_ *http.Request, args *AccountAmountArgs, _ *EmptyReply) error {
	s.called("fund")

	s.devnet.Network.Fund(args.Account, args.Amount.Int())
	return nil
}

// Approve lets the vault take shares from an account.
func (s *Service) Approve(_ *http.Request, args *AccountAmountArgs, _ *EmptyReply) error {
	s.called("approve")

	s.devnet.Network.Token().Approve(args.Account, s.devnet.Network.VaultAccount(), args.Amount.Int())
	return nil
}

// AddRewards credits an agent with rewards for the next compound.
func (s *Service) AddRewards(_ *http.Request, args *AccountAmountArgs, _ *EmptyReply) error {
	s.called("addRewards")

	return s.devnet.Network.AddRewards(args.Account, args.Amount.Int())
}

type AgentArgs struct {
	Agent  ids.ShortID    `json:"agent"`
	Weight avajson.Uint64 `json:"weight"`
}

func (s *Service) AddAgent(_ *http.Request, args *AgentArgs, _ *EmptyReply) error {
	s.called("addAgent")

	s.lock.Lock()
	defer s.lock.Unlock()

	return s.devnet.AddAgent(args.Agent, uint64(args.Weight))
}

func (s *Service) UpdateAgent(_ *http.Request, args *AgentArgs, _ *EmptyReply) error {
	s.called("updateAgent")

	return s.devnet.Network.UpdateAgent(args.Agent, uint64(args.Weight))
}

func (s *Service) RemoveAgent(_ *http.Request, args *AgentArgs, _ *EmptyReply) error {
	s.called("removeAgent")

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.devnet.Network.RemoveAgent(args.Agent); err != nil {
		return err
	}
	s.devnet.Agents = slices.DeleteFunc(s.devnet.Agents, func(agent ids.ShortID) bool {
		return agent == args.Agent
	})
	return nil
}

type AdvanceTimeArgs struct {
	// Milliseconds to move the clock forward
	Milliseconds avajson.Uint64 `json:"milliseconds"`
}

type TimeReply struct {
	// Time is the unix millisecond time after the move
	Time avajson.Uint64 `json:"time"`
}

// AdvanceTime moves the network clock forward.
func (s *Service) AdvanceTime(_ *http.Request, args *AdvanceTimeArgs, reply *TimeReply) error {
	s.called("advanceTime")

	s.devnet.Clock.Advance(time.Duration(args.Milliseconds) * time.Millisecond)
	reply.Time = avajson.Uint64(s.devnet.Clock.UnixMilli())
	return nil
}

type GetBalanceArgs struct {
	Account ids.ShortID `json:"account"`
}

type GetBalanceReply struct {
	Balance json.Uint256 `json:"balance"`
	Shares  json.Uint256 `json:"shares"`
}

// GetBalance returns the base asset and shares held by an account.
func (s *Service) GetBalance(r *http.Request, args *GetBalanceArgs, reply *GetBalanceReply) error {
	s.called("getBalance")

	shares, err := s.devnet.Network.Token().BalanceOf(r.Context(), args.Account)
	if err != nil {
		return err
	}
	reply.Balance = json.NewUint256(s.devnet.Network.Balance(args.Account))
	reply.Shares = json.NewUint256(shares)
	return nil
}

type GetDevnetReply struct {
	Time   avajson.Uint64 `json:"time"`
	Vault  ids.ShortID    `json:"vault"`
	Admin  ids.ShortID    `json:"admin"`
	Agents []ids.ShortID  `json:"agents"`
}

func (s *Service) GetDevnet(_ *http.Request, _ *struct{}, reply *GetDevnetReply) error {
	s.called("getDevnet")

	s.lock.Lock()
	defer s.lock.Unlock()

	reply.Time = avajson.Uint64(s.devnet.Clock.UnixMilli())
	reply.Vault = s.devnet.Network.VaultAccount()
	reply.Admin = s.devnet.Admin
	reply.Agents = slices.Clone(s.devnet.Agents)
	return nil
}
