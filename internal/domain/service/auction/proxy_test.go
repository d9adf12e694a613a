package auction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/value"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestAuction() *entity.Auction {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	a := &entity.Auction{
		ID:                      "lot-1",
		OwnerID:                 "seller-1",
		Status:                  entity.StatusActive,
		DominantSpecies:         value.SpeciesBeech, // increment 5
		VolumeM3:                dec("50"),
		StartingPricePerM3:      dec("100"),
		CurrentPricePerM3:       dec("100"),
		SecondHighestPricePerM3: dec("100"),
		HighestMaxProxyPerM3:    dec("100"),
		StartTime:               start,
		EndTime:                 end,
		OriginalEndTime:         end,
		ActivityWindowCutoff:    end.Add(-15 * time.Minute),
		AnonymitySalt:           "salt",
		Version:                 1,
	}
	a.RecomputeProjectedValue()
	return a
}

func TestResolveProxy_FirstBid(t *testing.T) {
	rq := require.New(t)
	a := newTestAuction()
	inc := value.MinIncrement(a.DominantSpecies)

	res := resolveProxy(a, "buyer-a", "anon-a", dec("105"), dec("150"), inc)

	rq.True(res.becameLeader)
	rq.Empty(res.previousLeaderID)
	rq.Equal("buyer-a", a.CurrentBidderID)
	rq.Equal("105", a.CurrentPricePerM3.String())
	rq.Equal("100", a.SecondHighestPricePerM3.String())
	rq.Equal("150", a.HighestMaxProxyPerM3.String())
	rq.Equal(1, a.BidCount)
	rq.Equal("5250", a.ProjectedTotalValue.String())
}

func TestResolveProxy_ChallengerBelowCeiling(t *testing.T) {
	rq := require.New(t)
	a := newTestAuction()
	inc := value.MinIncrement(a.DominantSpecies)

	resolveProxy(a, "buyer-a", "anon-a", dec("105"), dec("150"), inc)
	res := resolveProxy(a, "buyer-b", "anon-b", dec("110"), dec("130"), inc)

	// The leader defends: the displayed price rises just above the
	// challenger's ceiling.
	rq.False(res.becameLeader)
	rq.Equal("buyer-a", res.previousLeaderID)
	rq.Equal("buyer-a", a.CurrentBidderID)
	rq.Equal("135", a.CurrentPricePerM3.String())
	rq.Equal("130", a.SecondHighestPricePerM3.String())
	rq.Equal("150", a.HighestMaxProxyPerM3.String())
	rq.Equal(2, a.BidCount)
}

func TestResolveProxy_ChallengerAboveCeiling(t *testing.T) {
	rq := require.New(t)
	a := newTestAuction()
	inc := value.MinIncrement(a.DominantSpecies)

	resolveProxy(a, "buyer-a", "anon-a", dec("105"), dec("150"), inc)
	resolveProxy(a, "buyer-b", "anon-b", dec("110"), dec("130"), inc)
	res := resolveProxy(a, "buyer-c", "anon-c", dec("140"), dec("200"), inc)

	rq.True(res.becameLeader)
	rq.Equal("buyer-a", res.previousLeaderID)
	rq.Equal("buyer-c", a.CurrentBidderID)
	rq.Equal("anon-c", a.CurrentBidderAnonymousID)
	// Displaced ceiling plus one increment.
	rq.Equal("155", a.CurrentPricePerM3.String())
	rq.Equal("150", a.SecondHighestPricePerM3.String())
	rq.Equal("200", a.HighestMaxProxyPerM3.String())
	rq.Equal(3, a.BidCount)
}

func TestResolveProxy_DisplayedAmountAboveStep(t *testing.T) {
	rq := require.New(t)
	a := newTestAuction()
	inc := value.MinIncrement(a.DominantSpecies)

	resolveProxy(a, "buyer-a", "anon-a", dec("105"), dec("150"), inc)
	// Challenger displays more than the minimal step over the displaced
	// ceiling: the displayed amount wins.
	res := resolveProxy(a, "buyer-b", "anon-b", dec("170"), dec("220"), inc)

	rq.True(res.becameLeader)
	rq.Equal("170", a.CurrentPricePerM3.String())
	rq.Equal("150", a.SecondHighestPricePerM3.String())
}

func TestResolveProxy_TieKeepsEarlierLeader(t *testing.T) {
	rq := require.New(t)
	a := newTestAuction()
	inc := value.MinIncrement(a.DominantSpecies)

	resolveProxy(a, "buyer-a", "anon-a", dec("105"), dec("150"), inc)
	res := resolveProxy(a, "buyer-b", "anon-b", dec("110"), dec("150"), inc)

	rq.False(res.becameLeader)
	rq.Equal("buyer-a", a.CurrentBidderID)
	// Both ceilings exhausted: price lands on the shared ceiling.
	rq.Equal("150", a.CurrentPricePerM3.String())
	rq.Equal("150", a.SecondHighestPricePerM3.String())
}

func TestResolveProxy_Invariants(t *testing.T) {
	rq := require.New(t)
	a := newTestAuction()
	inc := value.MinIncrement(a.DominantSpecies)

	bids := []struct {
		bidder, amount, maxProxy string
	}{
		{"buyer-a", "105", "150"},
		{"buyer-b", "110", "130"},
		{"buyer-c", "140", "200"},
		{"buyer-b", "160", "210"},
		{"buyer-a", "215", "215"},
	}

	prev := a.CurrentPricePerM3
	for _, b := range bids {
		resolveProxy(a, b.bidder, "anon-"+b.bidder, dec(b.amount), dec(b.maxProxy), inc)

		rq.True(a.CurrentPricePerM3.GreaterThanOrEqual(a.StartingPricePerM3))
		rq.True(a.SecondHighestPricePerM3.LessThanOrEqual(a.CurrentPricePerM3))
		rq.True(a.CurrentPricePerM3.LessThanOrEqual(a.HighestMaxProxyPerM3))
		rq.True(a.CurrentPricePerM3.GreaterThanOrEqual(prev), "price must never drop")
		rq.True(a.ProjectedTotalValue.Equal(a.CurrentPricePerM3.Mul(a.VolumeM3)))
		prev = a.CurrentPricePerM3
	}

	rq.Equal(len(bids), a.BidCount)
	// buyer-a holds the highest ceiling after the last bid.
	rq.Equal("buyer-a", a.CurrentBidderID)
}

func TestResolveProxy_Deterministic(t *testing.T) {
	rq := require.New(t)

	run := func() *entity.Auction {
		a := newTestAuction()
		inc := value.MinIncrement(a.DominantSpecies)
		resolveProxy(a, "buyer-a", "anon-a", dec("105"), dec("150"), inc)
		resolveProxy(a, "buyer-b", "anon-b", dec("110"), dec("130"), inc)
		resolveProxy(a, "buyer-c", "anon-c", dec("140"), dec("200"), inc)
		return a
	}

	first, second := run(), run()
	rq.Equal(first.CurrentBidderID, second.CurrentBidderID)
	rq.True(first.CurrentPricePerM3.Equal(second.CurrentPricePerM3))
	rq.True(first.HighestMaxProxyPerM3.Equal(second.HighestMaxProxyPerM3))
	rq.Equal(first.BidCount, second.BidCount)
}
