package auction

import (
	"github.com/shopspring/decimal"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
)

// resolution is the outcome of proxy resolution, kept for event publication.
type resolution struct {
	becameLeader     bool
	previousLeaderID string
}

// resolveProxy applies one accepted bid to the auction snapshot in place.
// Pure computation on the snapshot: the caller owns persistence.
//
// A challenger whose ceiling strictly exceeds the current leader's ceiling
// takes the lead at the smallest price that beats the displaced ceiling.
// Otherwise the leader defends: the displayed price rises automatically to
// the smallest value that still beats the challenger's ceiling. A tie on
// ceilings falls into the second case, so the earlier bid keeps the lead.
func resolveProxy(a *entity.Auction, bidderID, anonID string, amount, maxProxy, increment decimal.Decimal) resolution {
	res := resolution{previousLeaderID: a.CurrentBidderID}

	if !a.HasLeader() || maxProxy.GreaterThan(a.HighestMaxProxyPerM3) {
		displacedCeiling := a.StartingPricePerM3
		if a.HasLeader() {
			displacedCeiling = a.HighestMaxProxyPerM3
		}

		a.SecondHighestPricePerM3 = displacedCeiling
		a.CurrentPricePerM3 = decimal.Min(
			maxProxy,
			decimal.Max(displacedCeiling.Add(increment), amount),
		)
		a.HighestMaxProxyPerM3 = maxProxy
		a.CurrentBidderID = bidderID
		a.CurrentBidderAnonymousID = anonID
		res.becameLeader = true
	} else {
		a.CurrentPricePerM3 = decimal.Min(a.HighestMaxProxyPerM3, maxProxy.Add(increment))
		a.SecondHighestPricePerM3 = maxProxy
	}

	a.BidCount++
	a.RecomputeProjectedValue()

	return res
}
