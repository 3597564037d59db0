// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/techhy-ecosystem/tokenomics/engine/burnlock"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

type BurnLockRequest struct {
	Owner  thy.Address `json:"owner"`
	Amount uint64      `json:"amount"`
}

type BurnLockResponse struct {
	LockedDelta uint64 `json:"lockedDelta"`
	VGMinted    uint64 `json:"vgMinted"`
	Tier        string `json:"tier"`
}

type UserRecord struct {
	Owner       thy.Address `json:"owner"`
	LockedValue uint64      `json:"lockedValue"`
	VGMinted    uint64      `json:"vgMinted"`
	VCBurned    uint64      `json:"vcBurned"`
	Tier        string      `json:"tier"`
	LastUpdate  uint64      `json:"lastUpdate"`
}

type GlobalState struct {
	Authority        thy.Address `json:"authority"`
	VCMint           thy.Address `json:"vcMint"`
	VGMint           thy.Address `json:"vgMint"`
	TotalLockedValue uint64      `json:"totalLockedValue"`
	TotalVGMinted    uint64      `json:"totalVgMinted"`
	TotalVCBurned    uint64      `json:"totalVcBurned"`
}

type StatisticsResponse struct {
	User   *UserRecord  `json:"user"`
	Global *GlobalState `json:"global"`
}

func convertUser(u *burnlock.UserRecord) *UserRecord {
	return &UserRecord{
		Owner:       u.Owner,
		LockedValue: u.LockedValue,
		VGMinted:    u.VGMinted,
		VCBurned:    u.VCBurned,
		Tier:        u.Tier.String(),
		LastUpdate:  u.LastUpdate,
	}
}

func convertGlobal(g *burnlock.GlobalState) *GlobalState {
	return &GlobalState{
		Authority:        g.Authority,
		VCMint:           g.VCMint,
		VGMint:           g.VGMint,
		TotalLockedValue: g.TotalLockedValue,
		TotalVGMinted:    g.TotalVGMinted,
		TotalVCBurned:    g.TotalVCBurned,
	}
}
