// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package events exposes the recorded operation history.
package events

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/techhy-ecosystem/tokenomics/api/restutil"
	"github.com/techhy-ecosystem/tokenomics/engine"
	"github.com/techhy-ecosystem/tokenomics/eventdb"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

const defaultLimit = 100

type Event struct {
	Sequence     uint64       `json:"sequence"`
	Kind         string       `json:"kind"`
	Timestamp    uint64       `json:"timestamp"`
	Owner        thy.Address  `json:"owner"`
	Counterparty *thy.Address `json:"counterparty,omitempty"`
	Amount       uint64       `json:"amount"`
	Minted       uint64       `json:"minted,omitempty"`
	Tax          uint64       `json:"tax,omitempty"`
}

type Events struct {
	engine *engine.Engine
}

func New(e *engine.Engine) *Events {
	return &Events{engine: e}
}

func parseFilter(req *http.Request) (*eventdb.Filter, error) {
	query := req.URL.Query()
	filter := &eventdb.Filter{Limit: defaultLimit}

	if v := query.Get("kind"); v != "" {
		kind := eventdb.Kind(v)
		filter.Kind = &kind
	}
	if v := query.Get("owner"); v != "" {
		owner, err := thy.ParseAddress(v)
		if err != nil {
			return nil, errors.WithMessage(err, "owner")
		}
		filter.Owner = &owner
	}
	for key, dst := range map[string]**uint64{"from": &filter.FromTime, "to": &filter.ToTime} {
		if v := query.Get(key); v != "" {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return nil, errors.WithMessage(err, key)
			}
			*dst = &n
		}
	}
	if v := query.Get("order"); v == string(eventdb.DESC) {
		filter.Order = eventdb.DESC
	}
	for key, dst := range map[string]*uint64{"offset": &filter.Offset, "limit": &filter.Limit} {
		if v := query.Get(key); v != "" {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return nil, errors.WithMessage(err, key)
			}
			*dst = n
		}
	}
	return filter, nil
}

func (e *Events) handleList(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseFilter(req)
	if err != nil {
		return restutil.BadRequest(err)
	}
	recorded, err := e.engine.Events(req.Context(), filter)
	if err != nil {
		return err
	}
	out := make([]*Event, 0, len(recorded))
	for _, ev := range recorded {
		out = append(out, &Event{
			Sequence:     ev.Sequence,
			Kind:         string(ev.Kind),
			Timestamp:    ev.Timestamp,
			Owner:        ev.Owner,
			Counterparty: ev.Counterparty,
			Amount:       ev.Amount,
			Minted:       ev.Minted,
			Tax:          ev.Tax,
		})
	}
	return restutil.WriteJSON(w, out)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		HandlerFunc(restutil.WrapHandlerFunc(e.handleList))
}
