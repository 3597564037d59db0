// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techhy-ecosystem/tokenomics/engine"
	"github.com/techhy-ecosystem/tokenomics/eventdb"
	"github.com/techhy-ecosystem/tokenomics/genesis"
	"github.com/techhy-ecosystem/tokenomics/lvldb"
	"github.com/techhy-ecosystem/tokenomics/oracle"
	"github.com/techhy-ecosystem/tokenomics/thy"
)

var alice = thy.MustParseAddress("0x00000000000000000000000000000000000000a1")

type testServer struct {
	*httptest.Server
	cfg genesis.Config
}

func newTestServer(t *testing.T) *testServer {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	events, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { events.Close() })

	lp, err := oracle.NewFixedRatio(1, 1)
	require.NoError(t, err)

	clock := uint64(0)
	cfg := genesis.Default()
	e, err := engine.New(db, cfg, engine.Options{
		Oracle:  lp,
		EventDB: events,
		Now:     func() uint64 { clock++; return clock },
	})
	require.NoError(t, err)

	// fund alice with VC out of the treasury via burn-free transfer:
	// the API has no plain VC transfer, seed directly through a taxed
	// path is not possible either, so run one burnlock for the
	// treasury and a VG transfer to give alice both tokens.
	srv := httptest.NewServer(New(e, Options{AllowedOrigins: "*"}))
	t.Cleanup(srv.Close)

	ts := &testServer{srv, cfg}
	ts.postOK(t, "/burnlock", map[string]any{
		"owner":  cfg.Treasury,
		"amount": 100_000 * thy.BaseUnit,
	})
	ts.postOK(t, "/transfers", map[string]any{
		"sender":    cfg.Treasury,
		"recipient": alice,
		"amount":    50_000 * thy.BaseUnit,
	})
	return ts
}

func (s *testServer) post(t *testing.T, path string, body any) (int, []byte) {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(s.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer res.Body.Close()
	payload, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, payload
}

func (s *testServer) postOK(t *testing.T, path string, body any) []byte {
	code, payload := s.post(t, path, body)
	require.Equal(t, http.StatusOK, code, "POST %s: %s", path, payload)
	return payload
}

func (s *testServer) get(t *testing.T, path string) (int, []byte) {
	res, err := http.Get(s.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	payload, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, payload
}

func (s *testServer) getOK(t *testing.T, path string, v any) {
	code, payload := s.get(t, path)
	require.Equal(t, http.StatusOK, code, "GET %s: %s", path, payload)
	require.NoError(t, json.Unmarshal(payload, v))
}

func TestLedgerRoutes(t *testing.T) {
	srv := newTestServer(t)

	var global struct {
		TotalVCBurned uint64 `json:"totalVcBurned"`
	}
	srv.getOK(t, "/ledger", &global)
	assert.Equal(t, 100_000*thy.BaseUnit, global.TotalVCBurned)

	var stats struct {
		User struct {
			LockedValue uint64 `json:"lockedValue"`
			Tier        string `json:"tier"`
		} `json:"user"`
	}
	srv.getOK(t, fmt.Sprintf("/ledger/users/%s", srv.cfg.Treasury), &stats)
	assert.Equal(t, 100_000*thy.BaseUnit, stats.User.LockedValue)
	assert.Equal(t, "Gold", stats.User.Tier)

	// unknown user responds 404
	code, _ := srv.get(t, fmt.Sprintf("/ledger/users/%s", alice))
	assert.Equal(t, http.StatusNotFound, code)

	// zero amount responds 400
	code, _ = srv.post(t, "/burnlock", map[string]any{"owner": alice, "amount": 0})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestTransferRoute(t *testing.T) {
	srv := newTestServer(t)
	bob := thy.MustParseAddress("0x00000000000000000000000000000000000000b0")

	var split struct {
		Net          uint64 `json:"net"`
		DAOShare     uint64 `json:"daoShare"`
		FeePoolShare uint64 `json:"feePoolShare"`
	}
	payload := srv.postOK(t, "/transfers", map[string]any{
		"sender":    alice,
		"recipient": bob,
		"amount":    100 * thy.BaseUnit,
	})
	require.NoError(t, json.Unmarshal(payload, &split))
	assert.Equal(t, 90*thy.BaseUnit, split.Net)
	assert.Equal(t, 5*thy.BaseUnit, split.DAOShare)
	assert.Equal(t, 5*thy.BaseUnit, split.FeePoolShare)

	// over-balance transfer responds 400
	code, _ := srv.post(t, "/transfers", map[string]any{
		"sender":    bob,
		"recipient": alice,
		"amount":    1_000_000 * thy.BaseUnit,
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStakingRoutes(t *testing.T) {
	srv := newTestServer(t)

	var rec struct {
		Principal uint64 `json:"principal"`
		Tier      string `json:"tier"`
	}
	payload := srv.postOK(t, "/staking/stakes", map[string]any{
		"owner":  alice,
		"amount": 10_000 * thy.BaseUnit,
	})
	require.NoError(t, json.Unmarshal(payload, &rec))
	assert.Equal(t, 10_000*thy.BaseUnit, rec.Principal)
	assert.Equal(t, "Silver", rec.Tier)

	srv.getOK(t, fmt.Sprintf("/staking/stakes/%s", alice), &rec)
	assert.Equal(t, 10_000*thy.BaseUnit, rec.Principal)

	var cfg struct {
		TotalStaked  uint64 `json:"totalStaked"`
		StakersCount uint64 `json:"stakersCount"`
	}
	srv.getOK(t, "/staking/config", &cfg)
	assert.Equal(t, 10_000*thy.BaseUnit, cfg.TotalStaked)
	assert.Equal(t, uint64(1), cfg.StakersCount)

	// withdraw
	req, err := http.NewRequest(http.MethodDelete,
		srv.URL+fmt.Sprintf("/staking/stakes/%s", alice), nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	srv.getOK(t, "/staking/config", &cfg)
	assert.Equal(t, uint64(0), cfg.StakersCount)
}

func TestNFTAndAccountsRoutes(t *testing.T) {
	srv := newTestServer(t)

	// alice has no locked value yet
	code, _ := srv.post(t, "/nft/feekeys", map[string]any{"owner": alice})
	assert.Equal(t, http.StatusForbidden, code)

	var key struct {
		ID uint64 `json:"id"`
	}
	payload := srv.postOK(t, "/nft/feekeys", map[string]any{"owner": srv.cfg.Treasury})
	require.NoError(t, json.Unmarshal(payload, &key))
	assert.Equal(t, uint64(1), key.ID)

	var balance struct {
		Balance uint64 `json:"balance"`
	}
	srv.getOK(t, fmt.Sprintf("/accounts/vg/%s", alice), &balance)
	assert.Equal(t, 45_000*thy.BaseUnit, balance.Balance)

	var token struct {
		TotalSupply uint64 `json:"totalSupply"`
		TotalBurned uint64 `json:"totalBurned"`
	}
	srv.getOK(t, "/accounts/vc", &token)
	assert.Equal(t, thy.VCTotalSupply-100_000*thy.BaseUnit, token.TotalSupply)
	assert.Equal(t, 100_000*thy.BaseUnit, token.TotalBurned)
}

func TestEventsAndTaxRoutes(t *testing.T) {
	srv := newTestServer(t)

	var events []struct {
		Kind  string `json:"kind"`
		Owner string `json:"owner"`
	}
	srv.getOK(t, "/events?order=desc&limit=1", &events)
	require.Len(t, events, 1)
	assert.Equal(t, "transfer", events[0].Kind)

	srv.getOK(t, "/events?kind=burnlock", &events)
	require.Len(t, events, 1)

	var taxCfg struct {
		RateBps uint32 `json:"rateBps"`
	}
	srv.getOK(t, "/tax", &taxCfg)
	assert.Equal(t, thy.DefaultTaxRateBps, taxCfg.RateBps)

	// non-authority update responds 403
	code, _ := srv.post(t, "/tax/rate", map[string]any{"caller": alice, "value": 100})
	assert.Equal(t, http.StatusForbidden, code)

	payload := srv.postOK(t, "/tax/rate", map[string]any{
		"caller": srv.cfg.Authority,
		"value":  250,
	})
	require.NoError(t, json.Unmarshal(payload, &taxCfg))
	assert.Equal(t, uint32(250), taxCfg.RateBps)
}
