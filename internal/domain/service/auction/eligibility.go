package auction

import (
	"git.appkode.ru/pub/go/failure"

	"github.com/Silvador/romanian-forest-auction-sub000/pkg/errcodes"
)

// checkEligibility applies the activity gate inside the closing window:
// a bidder with no accepted bids on this auction may not start bidding once
// the activity window has been reached. Bidders already participating may
// keep raising without restriction.
func checkEligibility(priorBids int) error {
	if priorBids > 0 {
		return nil
	}

	return failure.NewForbiddenError(
		"bidder did not participate before the activity window",
		failure.WithCode(errcodes.BidderNotEligible),
		failure.WithDescription("Only bidders active before the closing window may bid now."),
	)
}
