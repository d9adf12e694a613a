package auction

import (
	"context"
	"fmt"

	"git.appkode.ru/pub/go/failure"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/errcodes"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/logx"
)

// Transition records one lifecycle step applied by a tick.
type Transition struct {
	AuctionID         string
	From              entity.Status
	To                entity.Status
	WinnerID          string
	WinnerAnonymousID string
}

// TickLifecycle scans auctions whose lifecycle boundary has passed and
// advances each at most once. Ticks are safe to re-run redundantly: an
// auction already past a transition point is simply re-observed. A failure
// on one auction never aborts the scan; the next tick retries it.
func (s *AuctionService) TickLifecycle(ctx context.Context) ([]Transition, error) {
	now := s.clock.Now()

	due, err := s.auctions.ListDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("auctions.ListDue: %w", err)
	}

	applied := make([]Transition, 0, len(due))

	for _, a := range due {
		tr, err := s.advanceAuction(ctx, a)
		if err != nil {
			if failure.IsConflictError(err) {
				// A concurrent bid or tick won the version race; the next
				// tick re-reads and settles it.
				logger(ctx).Debug("lifecycle transition lost version race", "auction_id", a.ID)
				continue
			}
			logger(ctx).Error("lifecycle transition failed", "auction_id", a.ID, logx.Error(err))
			continue
		}
		if tr != nil {
			applied = append(applied, *tr)
		}
	}

	return applied, nil
}

func (s *AuctionService) advanceAuction(ctx context.Context, a *entity.Auction) (*Transition, error) {
	now := s.clock.Now()

	var to entity.Status

	switch a.Status {
	case entity.StatusUpcoming:
		if now.Before(a.StartTime) {
			return nil, nil
		}
		to = entity.StatusActive
	case entity.StatusActive:
		if now.Before(a.EndTime) {
			return nil, nil
		}
		if a.BidCount > 0 {
			to = entity.StatusSold
		} else {
			to = entity.StatusEnded
		}
	default:
		// Terminal or draft: nothing for the engine to do.
		return nil, nil
	}

	tr := Transition{AuctionID: a.ID, From: a.Status, To: to}

	expectedVersion := a.Version
	a.Status = to
	a.UpdatedAt = now

	if err := s.auctions.Update(ctx, a, expectedVersion); err != nil {
		return nil, err
	}

	lifecycleTransitions.WithLabelValues(to.String()).Inc()

	if to == entity.StatusSold || to == entity.StatusEnded {
		payload := AuctionEndedPayload{AuctionID: a.ID}
		if to == entity.StatusSold {
			tr.WinnerID = a.CurrentBidderID
			tr.WinnerAnonymousID = a.CurrentBidderAnonymousID
			payload.WinnerID = a.CurrentBidderID
			payload.WinnerAnonymousID = a.CurrentBidderAnonymousID
		}
		s.publish(ctx, TopicAuction(a.ID), Event{Event: EventAuctionEnded, Data: payload})

		if to == entity.StatusSold {
			s.publish(ctx, TopicUser(a.CurrentBidderID), Event{
				Event: EventNotification,
				Data: NotificationPayload{
					Type:      "auction_won",
					Title:     "You won the auction",
					Message:   "You won lot " + a.ID + " at " + a.CurrentPricePerM3.String() + " RON/m³.",
					AuctionID: a.ID,
				},
			})
		}
	}

	logger(ctx).Info("auction transitioned",
		"auction_id", a.ID, "from", tr.From.String(), "to", tr.To.String())

	return &tr, nil
}

// PublishAuction hands a drafted lot over to the engine: draft → upcoming.
// Only the owner may publish.
func (s *AuctionService) PublishAuction(ctx context.Context, auctionID, actorID string) error {
	return s.transitionByActor(ctx, auctionID, actorID, entity.StatusUpcoming)
}

// CancelAuction is the explicit external action moving any non-terminal
// auction to cancelled. Only the owner may cancel.
func (s *AuctionService) CancelAuction(ctx context.Context, auctionID, actorID string) error {
	return s.transitionByActor(ctx, auctionID, actorID, entity.StatusCancelled)
}

func (s *AuctionService) transitionByActor(ctx context.Context, auctionID, actorID string, to entity.Status) error {
	for attempt := 0; attempt < s.maxCommitRetries; attempt++ {
		a, err := s.auctions.GetByID(ctx, auctionID)
		if err != nil {
			return err
		}

		if actorID != a.OwnerID {
			return failure.NewForbiddenError(
				"only the owner may change the auction",
				failure.WithCode(errcodes.Forbidden),
				failure.WithDescription("Only the lot owner may do this."),
			)
		}

		if !a.Status.CanTransitionTo(to) {
			return failure.NewUnprocessableEntityError(
				fmt.Sprintf("cannot transition auction from %s to %s", a.Status, to),
				failure.WithCode(errcodes.InvalidStatusTransition),
				failure.WithDescription("The auction is not in a state allowing this."),
			)
		}

		expectedVersion := a.Version
		from := a.Status
		a.Status = to
		a.UpdatedAt = s.clock.Now()

		err = s.auctions.Update(ctx, a, expectedVersion)
		if failure.IsConflictError(err) {
			continue
		}
		if err != nil {
			return err
		}

		lifecycleTransitions.WithLabelValues(to.String()).Inc()

		if to == entity.StatusCancelled {
			s.publish(ctx, TopicAuction(a.ID), Event{
				Event: EventAuctionEnded,
				Data:  AuctionEndedPayload{AuctionID: a.ID},
			})
		}

		logger(ctx).Info("auction transitioned by owner",
			"auction_id", a.ID, "from", from.String(), "to", to.String())

		return nil
	}

	return failure.NewConflictError(
		"auction transition retry budget exhausted",
		failure.WithCode(errcodes.Conflict),
		failure.WithDescription("The auction is busy, please retry."),
	)
}
