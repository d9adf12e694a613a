package auction

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/logx"
)

const (
	EventAuctionUpdated   = "auction.updated"
	EventAuctionSoftClose = "auction.softClose"
	EventAuctionEnded     = "auction.ended"
	EventNotification     = "notification"

	TopicGlobalFeed = "feed:global"
)

func TopicAuction(auctionID string) string { return "auction:" + auctionID }
func TopicUser(userID string) string       { return "user:" + userID }

// Event is the envelope published to the push channel.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type AuctionUpdatedPayload struct {
	AuctionID                string          `json:"auctionId"`
	CurrentPricePerM3        decimal.Decimal `json:"currentPricePerM3"`
	CurrentBidderAnonymousID string          `json:"currentBidderAnonymousId"`
	BidCount                 int             `json:"bidCount"`
	EndTime                  time.Time       `json:"endTime"`
	ProjectedTotalValue      decimal.Decimal `json:"projectedTotalValue"`
	SoftCloseActive          bool            `json:"softCloseActive"`
	SecondHighestPricePerM3  decimal.Decimal `json:"secondHighestPricePerM3"`
}

type SoftClosePayload struct {
	AuctionID  string    `json:"auctionId"`
	NewEndTime time.Time `json:"newEndTime"`
	Message    string    `json:"message"`
}

type NotificationPayload struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	AuctionID string `json:"auctionId"`
}

type AuctionEndedPayload struct {
	AuctionID         string `json:"auctionId"`
	WinnerID          string `json:"winnerId,omitempty"`
	WinnerAnonymousID string `json:"winnerAnonymousId,omitempty"`
}

// publish pushes one event and logs failures: the commit has already
// landed, so a dead push channel must not fail the call.
func (s *AuctionService) publish(ctx context.Context, topic string, event Event) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		logger(ctx).Error("event publish failed",
			"topic", topic, "event", event.Event, logx.Error(err))
	}
}

func (s *AuctionService) publishBidEvents(
	ctx context.Context,
	a *entity.Auction,
	res resolution,
	displayName string,
	softCloseExtended bool,
) {
	updated := Event{
		Event: EventAuctionUpdated,
		Data: AuctionUpdatedPayload{
			AuctionID:                a.ID,
			CurrentPricePerM3:        a.CurrentPricePerM3,
			CurrentBidderAnonymousID: a.CurrentBidderAnonymousID,
			BidCount:                 a.BidCount,
			EndTime:                  a.EndTime,
			ProjectedTotalValue:      a.ProjectedTotalValue,
			SoftCloseActive:          a.SoftCloseActive,
			SecondHighestPricePerM3:  a.SecondHighestPricePerM3,
		},
	}
	s.publish(ctx, TopicAuction(a.ID), updated)
	s.publish(ctx, TopicGlobalFeed, updated)

	if softCloseExtended {
		s.publish(ctx, TopicAuction(a.ID), Event{
			Event: EventAuctionSoftClose,
			Data: SoftClosePayload{
				AuctionID:  a.ID,
				NewEndTime: a.EndTime,
				Message:    "A late bid extended the auction.",
			},
		})
	}

	if res.becameLeader && res.previousLeaderID != "" {
		s.publish(ctx, TopicUser(res.previousLeaderID), Event{
			Event: EventNotification,
			Data: NotificationPayload{
				Type:      "outbid",
				Title:     "You have been outbid",
				Message:   "Another bidder outbid you on lot " + a.ID + ".",
				AuctionID: a.ID,
			},
		})
	}

	bidder := displayName
	if bidder == "" {
		bidder = "A bidder"
	}
	s.publish(ctx, TopicUser(a.OwnerID), Event{
		Event: EventNotification,
		Data: NotificationPayload{
			Type:      "new_bid",
			Title:     "New bid on your lot",
			Message:   bidder + " raised lot " + a.ID + " to " + a.CurrentPricePerM3.String() + " RON/m³.",
			AuctionID: a.ID,
		},
	})
}
