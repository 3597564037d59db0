// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api assembles the HTTP interface of the tokenomics engine.
package api

import (
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/techhy-ecosystem/tokenomics/api/accounts"
	"github.com/techhy-ecosystem/tokenomics/api/events"
	"github.com/techhy-ecosystem/tokenomics/api/ledger"
	"github.com/techhy-ecosystem/tokenomics/api/nftkeys"
	"github.com/techhy-ecosystem/tokenomics/api/staking"
	"github.com/techhy-ecosystem/tokenomics/api/taxcfg"
	"github.com/techhy-ecosystem/tokenomics/api/transfers"
	"github.com/techhy-ecosystem/tokenomics/engine"
	"github.com/techhy-ecosystem/tokenomics/log"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	PprofOn         bool
	EnableReqLogger bool
	EnableMetrics   bool
}

// New returns the api handler.
func New(e *engine.Engine, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	ledger.New(e).Mount(router)
	transfers.New(e).Mount(router, "/transfers")
	staking.New(e).Mount(router, "/staking")
	nftkeys.New(e).Mount(router, "/nft")
	accounts.New(e).Mount(router, "/accounts")
	events.New(e).Mount(router, "/events")
	taxcfg.New(e).Mount(router, "/tax")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = requestLoggerHandler(handler)
	}
	return handler.ServeHTTP
}
