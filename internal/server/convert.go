package server

import (
	"github.com/shopspring/decimal"

	"git.appkode.ru/pub/go/failure"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
	service "github.com/Silvador/romanian-forest-auction-sub000/internal/domain/service/auction"
	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/value"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/errcodes"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/lox"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/rest"
)

func newRESTAuction(a *entity.Auction) rest.Auction {
	return rest.Auction{
		ID:                       a.ID,
		OwnerID:                  a.OwnerID,
		Status:                   a.Status.String(),
		DominantSpecies:          a.DominantSpecies.String(),
		VolumeM3:                 a.VolumeM3.String(),
		StartingPricePerM3:       a.StartingPricePerM3.String(),
		CurrentPricePerM3:        a.CurrentPricePerM3.String(),
		SecondHighestPricePerM3:  a.SecondHighestPricePerM3.String(),
		ProjectedTotalValue:      a.ProjectedTotalValue.String(),
		CurrentBidderAnonymousID: a.CurrentBidderAnonymousID,
		BidCount:                 a.BidCount,
		StartTime:                a.StartTime,
		EndTime:                  a.EndTime,
		SoftCloseActive:          a.SoftCloseActive,
	}
}

func newRESTBids(bids []*entity.Bid) []rest.Bid {
	return lox.Map(bids, func(b *entity.Bid) rest.Bid {
		return rest.Bid{
			BidderAnonymousID: b.BidderAnonymousID,
			AmountPerM3:       b.AmountPerM3.String(),
			IsProxyBid:        b.IsProxyBid,
			PlacedAt:          b.PlacedAt,
		}
	})
}

func newRESTBidOutcome(o *service.BidOutcome) rest.BidOutcome {
	return rest.BidOutcome{
		BidID:                   o.BidID,
		AuctionID:               o.AuctionID,
		BidderAnonymousID:       o.BidderAnonymousID,
		BecameLeader:            o.BecameLeader,
		CurrentPricePerM3:       o.CurrentPricePerM3.String(),
		SecondHighestPricePerM3: o.SecondHighestPricePerM3.String(),
		BidCount:                o.BidCount,
		EndTime:                 o.EndTime,
		SoftCloseExtended:       o.SoftCloseExtended,
	}
}

func newDomainSubmitBid(auctionID string, r rest.PlaceBidRequest) (service.SubmitBidRequest, error) {
	amount, err := parseMoney("amountPerM3", r.AmountPerM3)
	if err != nil {
		return service.SubmitBidRequest{}, err
	}

	maxProxy, err := parseMoney("maxProxyPerM3", r.MaxProxyPerM3)
	if err != nil {
		return service.SubmitBidRequest{}, err
	}

	return service.SubmitBidRequest{
		AuctionID:     auctionID,
		BidderID:      r.BidderID,
		DisplayName:   r.DisplayName,
		AmountPerM3:   amount,
		MaxProxyPerM3: maxProxy,
	}, nil
}

func newDomainCreateAuction(r rest.CreateAuctionRequest) (service.CreateAuctionRequest, error) {
	volume, err := parseMoney("volumeM3", r.VolumeM3)
	if err != nil {
		return service.CreateAuctionRequest{}, err
	}

	startingPrice, err := parseMoney("startingPricePerM3", r.StartingPricePerM3)
	if err != nil {
		return service.CreateAuctionRequest{}, err
	}

	return service.CreateAuctionRequest{
		OwnerID:            r.OwnerID,
		DominantSpecies:    value.Species(r.DominantSpecies),
		VolumeM3:           volume,
		StartingPricePerM3: startingPrice,
		StartTime:          r.StartTime,
		EndTime:            r.EndTime,
	}, nil
}

func parseMoney(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, failure.NewInvalidArgumentError(
			"decimal.NewFromString("+field+"): "+err.Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Field "+field+" is not a valid decimal."),
		)
	}

	return d, nil
}
