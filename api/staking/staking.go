// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking exposes stake submission, withdrawal and position
// queries.
package staking

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/techhy-ecosystem/tokenomics/api/restutil"
	"github.com/techhy-ecosystem/tokenomics/engine"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

type StakeRequest struct {
	Owner  thy.Address `json:"owner"`
	Amount uint64      `json:"amount"`
}

type StakeResponse struct {
	Owner          thy.Address `json:"owner"`
	Principal      uint64      `json:"principal"`
	Tier           string      `json:"tier"`
	StakeTimestamp uint64      `json:"stakeTimestamp"`
	AccruedReward  uint64      `json:"accruedReward"`
	TotalReward    uint64      `json:"totalReward,omitempty"`
}

type UnstakeResponse struct {
	Principal uint64 `json:"principal"`
	Reward    uint64 `json:"reward"`
}

type ConfigResponse struct {
	Authority      thy.Address `json:"authority"`
	RewardRatesBps []uint32    `json:"rewardRatesBps"`
	TotalStaked    uint64      `json:"totalStaked"`
	StakersCount   uint64      `json:"stakersCount"`
}

type Staking struct {
	engine *engine.Engine
}

func New(e *engine.Engine) *Staking {
	return &Staking{engine: e}
}

func (s *Staking) handleStake(w http.ResponseWriter, req *http.Request) error {
	var body StakeRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	rec, err := s.engine.Stake(body.Owner, body.Amount)
	if err != nil {
		return restutil.DomainError(err)
	}
	return restutil.WriteJSON(w, &StakeResponse{
		Owner:          rec.Owner,
		Principal:      rec.Principal,
		Tier:           rec.Tier.String(),
		StakeTimestamp: rec.StakeTimestamp,
		AccruedReward:  rec.AccruedReward,
	})
}

func (s *Staking) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	addr, err := thy.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	rec, totalReward, err := s.engine.StakeOf(addr)
	if err != nil {
		return restutil.DomainError(err)
	}
	return restutil.WriteJSON(w, &StakeResponse{
		Owner:          rec.Owner,
		Principal:      rec.Principal,
		Tier:           rec.Tier.String(),
		StakeTimestamp: rec.StakeTimestamp,
		AccruedReward:  rec.AccruedReward,
		TotalReward:    totalReward,
	})
}

func (s *Staking) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	addr, err := thy.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	principal, reward, err := s.engine.Unstake(addr)
	if err != nil {
		return restutil.DomainError(err)
	}
	return restutil.WriteJSON(w, &UnstakeResponse{Principal: principal, Reward: reward})
}

func (s *Staking) handleGetConfig(w http.ResponseWriter, _ *http.Request) error {
	cfg, err := s.engine.StakingConfig()
	if err != nil {
		return restutil.DomainError(err)
	}
	return restutil.WriteJSON(w, &ConfigResponse{
		Authority:      cfg.Authority,
		RewardRatesBps: cfg.RewardRatesBps[:],
		TotalStaked:    cfg.TotalStaked,
		StakersCount:   cfg.StakersCount,
	})
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/stakes").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleStake))
	sub.Path("/stakes/{address}").
		Methods(http.MethodGet).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetStake))
	sub.Path("/stakes/{address}").
		Methods(http.MethodDelete).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleUnstake))
	sub.Path("/config").
		Methods(http.MethodGet).
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetConfig))
}
