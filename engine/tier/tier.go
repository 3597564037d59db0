// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tier classifies accumulated locked value or staked principal
// into discrete tiers. The same threshold table gates NFT fee key
// eligibility and selects staking reward rates.
package tier

import "github.com/techhy-ecosystem/tokenomics/thy"

// Tier discrete user classification derived from an accumulated quantity.
type Tier uint8

const (
	None Tier = iota
	Bronze
	Silver
	Gold
	Platinum
)

// Count number of tiers, including None.
const Count = int(Platinum) + 1

func (t Tier) String() string {
	switch t {
	case None:
		return "none"
	case Bronze:
		return "bronze"
	case Silver:
		return "silver"
	case Gold:
		return "gold"
	case Platinum:
		return "platinum"
	default:
		return "unknown"
	}
}

// Classify maps a quantity in base units to its tier. Boundaries are
// inclusive on the lower bound, exclusive on the upper bound.
func Classify(quantity uint64) Tier {
	switch {
	case quantity >= thy.PlatinumThreshold:
		return Platinum
	case quantity >= thy.GoldThreshold:
		return Gold
	case quantity >= thy.SilverThreshold:
		return Silver
	case quantity >= thy.BronzeThreshold:
		return Bronze
	default:
		return None
	}
}
