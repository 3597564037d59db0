// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/techhy-ecosystem/tokenomics/eventdb"
	"github.com/techhy-ecosystem/tokenomics/genesis"
	"github.com/techhy-ecosystem/tokenomics/log"
	"github.com/techhy-ecosystem/tokenomics/lvldb"
	"github.com/techhy-ecosystem/tokenomics/oracle"
)

func fatal(args ...interface{}) {
	fmt.Fprint(os.Stderr, "Fatal: ")
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func fatalf(format string, args ...interface{}) {
	fatal(fmt.Sprintf(format, args...))
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "TechHY")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "TechHY")
	default:
		return filepath.Join(home, ".techhy")
	}
}

func initLogger(ctx *cli.Context) {
	lvl, err := log.ParseLevel(ctx.String(verbosityFlag.Name))
	if err != nil {
		fatalf("parse verbosity: %v", err)
	}
	if ctx.Bool(jsonLogsFlag.Name) {
		log.SetDefault(log.JSONHandler(os.Stderr, lvl))
		return
	}
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	log.SetDefault(log.NewTerminalHandler(os.Stderr, lvl, useColor))
}

func selectGenesis(ctx *cli.Context) genesis.Config {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.Default()
	}
	cfg, err := genesis.FromYAMLFile(path)
	if err != nil {
		fatalf("load genesis at '%v': %v", path, err)
	}
	return cfg
}

func parseOracleRatio(s string) (*oracle.FixedRatio, error) {
	num, den, found := strings.Cut(s, "/")
	if !found {
		return nil, errors.New("want <num>/<den>")
	}
	n, err := strconv.ParseUint(strings.TrimSpace(num), 10, 64)
	if err != nil {
		return nil, errors.WithMessage(err, "numerator")
	}
	d, err := strconv.ParseUint(strings.TrimSpace(den), 10, 64)
	if err != nil {
		return nil, errors.WithMessage(err, "denominator")
	}
	return oracle.NewFixedRatio(n, d)
}

func makeInstanceDir(ctx *cli.Context) string {
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		fatalf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		fatalf("create data dir at '%v': %v", dir, err)
	}
	return dir
}

func openMainDB(dataDir string) *lvldb.LevelDB {
	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{})
	if err != nil {
		fatalf("open main database at '%v': %v", dir, err)
	}
	return db
}

func openEventDB(dataDir string) *eventdb.EventDB {
	path := filepath.Join(dataDir, "events.db")
	db, err := eventdb.New(path)
	if err != nil {
		fatalf("open event database at '%v': %v", path, err)
	}
	return db
}
