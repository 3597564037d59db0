// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger exposes the conversion ledger: burn-and-lock
// submission, per-user records and the global aggregates.
package ledger

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/techhy-ecosystem/tokenomics/api/restutil"
	"github.com/techhy-ecosystem/tokenomics/engine"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

type Ledger struct {
	engine *engine.Engine
}

func New(e *engine.Engine) *Ledger {
	return &Ledger{engine: e}
}

func (l *Ledger) handleBurnLock(w http.ResponseWriter, req *http.Request) error {
	var body BurnLockRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	res, err := l.engine.BurnAndLock(body.Owner, body.Amount)
	if err != nil {
		return restutil.DomainError(err)
	}
	return restutil.WriteJSON(w, &BurnLockResponse{
		LockedDelta: res.LockedDelta,
		VGMinted:    res.VGDelta,
		Tier:        res.Tier.String(),
	})
}

func (l *Ledger) handleGetGlobal(w http.ResponseWriter, _ *http.Request) error {
	global, err := l.engine.GlobalStatistics()
	if err != nil {
		return restutil.DomainError(err)
	}
	return restutil.WriteJSON(w, convertGlobal(&global))
}

func (l *Ledger) handleGetUser(w http.ResponseWriter, req *http.Request) error {
	addr, err := thy.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	user, global, err := l.engine.Statistics(addr)
	if err != nil {
		return restutil.DomainError(err)
	}
	return restutil.WriteJSON(w, &StatisticsResponse{
		User:   convertUser(&user),
		Global: convertGlobal(&global),
	})
}

func (l *Ledger) Mount(root *mux.Router) {
	root.Path("/burnlock").
		Methods(http.MethodPost).
		HandlerFunc(restutil.WrapHandlerFunc(l.handleBurnLock))

	sub := root.PathPrefix("/ledger").Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		HandlerFunc(restutil.WrapHandlerFunc(l.handleGetGlobal))
	sub.Path("/users/{address}").
		Methods(http.MethodGet).
		HandlerFunc(restutil.WrapHandlerFunc(l.handleGetUser))
}
