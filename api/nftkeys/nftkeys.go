// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package nftkeys exposes tier-gated fee-key issuance.
package nftkeys

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/techhy-ecosystem/tokenomics/api/restutil"
	"github.com/techhy-ecosystem/tokenomics/engine"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

type FeeKeyRequest struct {
	Owner thy.Address `json:"owner"`
}

type FeeKeyResponse struct {
	ID uint64 `json:"id"`
}

type NFTKeys struct {
	engine *engine.Engine
}

func New(e *engine.Engine) *NFTKeys {
	return &NFTKeys{engine: e}
}

func (n *NFTKeys) handleCreate(w http.ResponseWriter, req *http.Request) error {
	var body FeeKeyRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	id, err := n.engine.CreateNFTFeeKey(body.Owner)
	if err != nil {
		return restutil.DomainError(err)
	}
	return restutil.WriteJSON(w, &FeeKeyResponse{ID: uint64(id)})
}

func (n *NFTKeys) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/feekeys").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(n.handleCreate))
}
