// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accounts exposes token balances and supply counters.
package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/techhy-ecosystem/tokenomics/api/restutil"
	"github.com/techhy-ecosystem/tokenomics/engine"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

type BalanceResponse struct {
	Owner   thy.Address `json:"owner"`
	Mint    thy.Address `json:"mint"`
	Balance uint64      `json:"balance"`
}

type TokenResponse struct {
	Mint        thy.Address `json:"mint"`
	TotalSupply uint64      `json:"totalSupply"`
	TotalBurned uint64      `json:"totalBurned"`
}

type Accounts struct {
	engine *engine.Engine
}

func New(e *engine.Engine) *Accounts {
	return &Accounts{engine: e}
}

func mintAddress(symbol string) (thy.Address, error) {
	switch symbol {
	case "vc":
		return thy.VCMintAddress, nil
	case "vg":
		return thy.VGMintAddress, nil
	default:
		return thy.ParseAddress(symbol)
	}
}

func (a *Accounts) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	mint, err := mintAddress(mux.Vars(req)["token"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "token"))
	}
	supply, burned, err := a.engine.TokenInfo(mint)
	if err != nil {
		return restutil.DomainError(err)
	}
	return restutil.WriteJSON(w, &TokenResponse{
		Mint:        mint,
		TotalSupply: supply,
		TotalBurned: burned,
	})
}

func (a *Accounts) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	vars := mux.Vars(req)
	mint, err := mintAddress(vars["token"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "token"))
	}
	owner, err := thy.ParseAddress(vars["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	balance, err := a.engine.Balance(mint, owner)
	if err != nil {
		return restutil.DomainError(err)
	}
	return restutil.WriteJSON(w, &BalanceResponse{
		Owner:   owner,
		Mint:    mint,
		Balance: balance,
	})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/{token}").
		Methods(http.MethodGet).
		HandlerFunc(restutil.WrapHandlerFunc(a.handleGetToken))
	sub.Path("/{token}/{address}").
		Methods(http.MethodGet).
		HandlerFunc(restutil.WrapHandlerFunc(a.handleGetBalance))
}
