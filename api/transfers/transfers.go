// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package transfers exposes taxed governance-token transfers.
package transfers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/techhy-ecosystem/tokenomics/api/restutil"
	"github.com/techhy-ecosystem/tokenomics/engine"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

type TransferRequest struct {
	Sender    thy.Address `json:"sender"`
	Recipient thy.Address `json:"recipient"`
	Amount    uint64      `json:"amount"`
}

type TransferResponse struct {
	Net          uint64 `json:"net"`
	DAOShare     uint64 `json:"daoShare"`
	FeePoolShare uint64 `json:"feePoolShare"`
}

type Transfers struct {
	engine *engine.Engine
}

func New(e *engine.Engine) *Transfers {
	return &Transfers{engine: e}
}

func (t *Transfers) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	var body TransferRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	split, err := t.engine.TransferWithTax(body.Sender, body.Recipient, body.Amount)
	if err != nil {
		return restutil.DomainError(err)
	}
	return restutil.WriteJSON(w, &TransferResponse{
		Net:          split.Net,
		DAOShare:     split.DAOShare,
		FeePoolShare: split.FeePoolShare,
	})
}

func (t *Transfers) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(t.handleTransfer))
}
