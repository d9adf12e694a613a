package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is an accepted bid record. Bids are append-only: they are written by
// the commit coordinator together with the auction patch and never mutated
// or deleted afterwards.
type Bid struct {
	ID                string          `json:"id" db:"id"`
	AuctionID         string          `json:"auction_id" db:"auction_id"`
	BidderID          string          `json:"bidder_id" db:"bidder_id"`
	BidderAnonymousID string          `json:"bidder_anonymous_id" db:"bidder_anonymous_id"`
	AmountPerM3       decimal.Decimal `json:"amount_per_m3" db:"amount_per_m3"`
	MaxProxyPerM3     decimal.Decimal `json:"max_proxy_per_m3" db:"max_proxy_per_m3"`
	IsProxyBid        bool            `json:"is_proxy_bid" db:"is_proxy_bid"`
	PlacedAt          time.Time       `json:"placed_at" db:"placed_at"`
}
