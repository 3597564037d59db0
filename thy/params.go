// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thy

// Constants of the tokenomics protocol.
const (
	// Decimals decimal places of both VC and VG tokens.
	Decimals = 9

	// BaseUnit amount of base units per whole token.
	BaseUnit uint64 = 1e9

	// VCTotalSupply fixed VC supply minted at genesis, in base units.
	// The mint authority is revoked right after the genesis mint.
	VCTotalSupply uint64 = 5_000_000_000 * BaseUnit

	// BpsDenominator denominator of basis point rates.
	BpsDenominator uint64 = 10_000

	// SecondsPerYear time base of staking reward rates.
	SecondsPerYear uint64 = 365 * 24 * 3600
)

// Default VG transfer tax configuration.
const (
	// DefaultTaxRateBps tax charged on every VG transfer.
	DefaultTaxRateBps uint32 = 1000
	// DefaultDAOShareBps share of the tax routed to the DAO treasury.
	DefaultDAOShareBps uint32 = 5000
	// DefaultFeePoolShareBps share of the tax routed to the fee pool.
	DefaultFeePoolShareBps uint32 = 5000
)

// Tier thresholds over locked value or staked principal, in base units.
// Boundaries are inclusive on the lower bound.
var (
	BronzeThreshold   = 1_000 * BaseUnit
	SilverThreshold   = 10_000 * BaseUnit
	GoldThreshold     = 100_000 * BaseUnit
	PlatinumThreshold = 1_000_000 * BaseUnit
)

// DefaultRewardRatesBps annual staking reward rate per tier, in basis points.
// Index is the tier (0-4); the base rate is 5% and rises with the tier.
var DefaultRewardRatesBps = [5]uint32{500, 600, 700, 850, 1000}

// Well-known engine namespace addresses. Each engine stores its slots
// under its own address, like a contract account.
var (
	VCMintAddress       = BytesToAddress([]byte("vc-token"))
	VGMintAddress       = BytesToAddress([]byte("vg-token"))
	TaxEngineAddress    = BytesToAddress([]byte("tax-engine"))
	LedgerAddress       = BytesToAddress([]byte("ledger"))
	StakingVaultAddress = BytesToAddress([]byte("staking-vault"))
)
