// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/techhy-ecosystem/tokenomics/api"
	"github.com/techhy-ecosystem/tokenomics/co"
	"github.com/techhy-ecosystem/tokenomics/engine"
	"github.com/techhy-ecosystem/tokenomics/genesis"
	"github.com/techhy-ecosystem/tokenomics/log"
	"github.com/techhy-ecosystem/tokenomics/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "TechHY",
		Usage:     "TECH HY tokenomics service",
		Copyright: "2025 TECH HY <https://techhy.me/>",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			apiAddrFlag,
			apiCorsFlag,
			oracleRatioFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableAPILogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			pprofFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)
	cfg := selectGenesis(ctx)
	instanceDir := makeInstanceDir(ctx)

	lp, err := parseOracleRatio(ctx.String(oracleRatioFlag.Name))
	if err != nil {
		fatalf("parse -%s: %v", oracleRatioFlag.Name, err)
	}

	mainDB := openMainDB(instanceDir)
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	eventDB := openEventDB(instanceDir)
	defer func() { logger.Info("closing event database..."); eventDB.Close() }()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		logger.Info("metrics server started", "url", url)
		defer closeFunc()
	}

	eng, err := engine.New(mainDB, cfg, engine.Options{
		Oracle:  lp,
		EventDB: eventDB,
	})
	if err != nil {
		fatalf("open engine: %v", err)
	}

	handler := api.New(eng, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	apiURL, apiClose := startAPIServer(ctx.String(apiAddrFlag.Name), handler)
	defer func() { logger.Info("stopping API server..."); apiClose() }()

	printStartupMessage(cfg, instanceDir, apiURL)

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	sig := <-exit
	logger.Info("exit signal received", "signal", sig)
	return nil
}

func startAPIServer(addr string, handler http.Handler) (string, func()) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatalf("listen API addr [%v]: %v", addr, err)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		goes.Wait()
	}
}

func startMetricsServer(addr string) (string, func()) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatalf("listen metrics addr [%v]: %v", addr, err)
	}
	router := http.NewServeMux()
	router.Handle("/metrics", metrics.HTTPHandler())
	srv := &http.Server{Handler: router, ReadHeaderTimeout: time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/metrics", func() {
		srv.Close()
		goes.Wait()
	}
}

func printStartupMessage(cfg genesis.Config, dataDir, apiURL string) {
	fmt.Printf(`Starting %v
    Authority    [ %v ]
    Treasury     [ %v ]
    Tax          [ %v bps, DAO share %v bps ]
    Instance dir [ %v ]
    API portal   [ %v ]
`,
		"TechHY "+fullVersion(),
		cfg.Authority,
		cfg.Treasury,
		cfg.TaxRateBps,
		cfg.DAOShareBps,
		dataDir,
		apiURL)
}
