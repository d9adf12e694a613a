package auction

import (
	"fmt"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/shopspring/decimal"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/errcodes"
)

// validateBid performs the stateless checks on a single incoming bid against
// the auction snapshot. Side-effect free; the first failing check wins.
func validateBid(a *entity.Auction, req SubmitBidRequest, increment decimal.Decimal, now time.Time) error {
	if req.BidderID == "" {
		return failure.NewInvalidArgumentError(
			"bidder id is empty",
			failure.WithCode(errcodes.InvalidBidderID),
			failure.WithDescription("A bidder is required."),
		)
	}

	if !req.AmountPerM3.IsPositive() {
		return failure.NewInvalidArgumentError(
			"bid amount must be positive",
			failure.WithCode(errcodes.InvalidBidAmount),
			failure.WithDescription("The bid amount per m³ must be greater than zero."),
		)
	}

	if a.Status != entity.StatusActive {
		return failure.NewUnprocessableEntityError(
			fmt.Sprintf("auction is %s, not active", a.Status),
			failure.WithCode(errcodes.AuctionNotActive),
			failure.WithDescription("Bids are only accepted on active auctions."),
		)
	}

	if now.Before(a.StartTime) {
		return failure.NewInvalidArgumentError(
			"auction has not started",
			failure.WithCode(errcodes.AuctionNotStarted),
			failure.WithDescription("The auction has not started yet."),
		)
	}

	if !now.Before(a.EndTime) {
		return failure.NewInvalidArgumentError(
			"auction already past its end time",
			failure.WithCode(errcodes.AuctionAlreadyEnded),
			failure.WithDescription("The auction has already ended."),
		)
	}

	if req.BidderID == a.OwnerID {
		return failure.NewInvalidArgumentError(
			"owner cannot bid on own lot",
			failure.WithCode(errcodes.OwnerCannotBid),
			failure.WithDescription("Sellers cannot bid on their own lots."),
		)
	}

	if req.MaxProxyPerM3.LessThan(req.AmountPerM3) {
		return failure.NewInvalidArgumentError(
			"max proxy below bid amount",
			failure.WithCode(errcodes.ProxyBelowBidAmount),
			failure.WithDescription("The proxy ceiling must be at least the bid amount."),
		)
	}

	if req.AmountPerM3.LessThanOrEqual(a.CurrentPricePerM3) {
		return failure.NewInvalidArgumentError(
			"bid does not exceed current price",
			failure.WithCode(errcodes.BidNotAboveCurrent),
			failure.WithDescription("The bid must exceed the current price."),
		)
	}

	if req.AmountPerM3.LessThan(a.CurrentPricePerM3.Add(increment)) {
		return failure.NewInvalidArgumentError(
			fmt.Sprintf("bid below current price plus the %s RON/m³ minimum step", increment),
			failure.WithCode(errcodes.BidBelowMinimumStep),
			failure.WithDescription("The bid is below the minimum increment for this lot."),
		)
	}

	return nil
}
