// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package taxcfg exposes the transfer tax configuration and its
// authority-gated updates.
package taxcfg

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/techhy-ecosystem/tokenomics/api/restutil"
	"github.com/techhy-ecosystem/tokenomics/engine"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

type ConfigResponse struct {
	Authority     thy.Address `json:"authority"`
	RateBps       uint32      `json:"rateBps"`
	DAOShareBps   uint32      `json:"daoShareBps"`
	DAOWallet     thy.Address `json:"daoWallet"`
	FeePoolWallet thy.Address `json:"feePoolWallet"`
}

type UpdateRequest struct {
	Caller thy.Address `json:"caller"`
	Value  uint32      `json:"value"`
}

type TaxCfg struct {
	engine *engine.Engine
}

func New(e *engine.Engine) *TaxCfg {
	return &TaxCfg{engine: e}
}

func (t *TaxCfg) handleGet(w http.ResponseWriter, _ *http.Request) error {
	cfg, err := t.engine.TaxConfig()
	if err != nil {
		return restutil.DomainError(err)
	}
	return restutil.WriteJSON(w, &ConfigResponse{
		Authority:     cfg.Authority,
		RateBps:       cfg.RateBps,
		DAOShareBps:   cfg.DAOShareBps,
		DAOWallet:     cfg.DAOWallet,
		FeePoolWallet: cfg.FeePoolWallet,
	})
}

func (t *TaxCfg) handleSetRate(w http.ResponseWriter, req *http.Request) error {
	var body UpdateRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := t.engine.SetTaxRate(body.Caller, body.Value); err != nil {
		return restutil.DomainError(err)
	}
	return t.handleGet(w, req)
}

func (t *TaxCfg) handleSetShares(w http.ResponseWriter, req *http.Request) error {
	var body UpdateRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := t.engine.SetTaxShares(body.Caller, body.Value); err != nil {
		return restutil.DomainError(err)
	}
	return t.handleGet(w, req)
}

func (t *TaxCfg) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		HandlerFunc(restutil.WrapHandlerFunc(t.handleGet))
	sub.Path("/rate").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(t.handleSetRate))
	sub.Path("/shares").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(t.handleSetShares))
}
