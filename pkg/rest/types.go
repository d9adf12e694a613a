// Wire types of the HTTP adapter. Money travels as decimal strings.
package rest

import "time"

type CreateAuctionRequest struct {
	OwnerID            string    `json:"ownerId" validate:"required"`
	DominantSpecies    string    `json:"dominantSpecies" validate:"required"`
	VolumeM3           string    `json:"volumeM3" validate:"required"`
	StartingPricePerM3 string    `json:"startingPricePerM3" validate:"required"`
	StartTime          time.Time `json:"startTime" validate:"required"`
	EndTime            time.Time `json:"endTime" validate:"required"`
}

type PlaceBidRequest struct {
	BidderID      string `json:"bidderId" validate:"required"`
	DisplayName   string `json:"displayName"`
	AmountPerM3   string `json:"amountPerM3" validate:"required"`
	MaxProxyPerM3 string `json:"maxProxyPerM3" validate:"required"`
}

type TransitionRequest struct {
	ActorID string `json:"actorId" validate:"required"`
}

// Auction is the public, anonymized snapshot of a lot.
type Auction struct {
	ID                       string    `json:"id"`
	OwnerID                  string    `json:"ownerId"`
	Status                   string    `json:"status"`
	DominantSpecies          string    `json:"dominantSpecies"`
	VolumeM3                 string    `json:"volumeM3"`
	StartingPricePerM3       string    `json:"startingPricePerM3"`
	CurrentPricePerM3        string    `json:"currentPricePerM3"`
	SecondHighestPricePerM3  string    `json:"secondHighestPricePerM3"`
	ProjectedTotalValue      string    `json:"projectedTotalValue"`
	CurrentBidderAnonymousID string    `json:"currentBidderAnonymousId"`
	BidCount                 int       `json:"bidCount"`
	StartTime                time.Time `json:"startTime"`
	EndTime                  time.Time `json:"endTime"`
	SoftCloseActive          bool      `json:"softCloseActive"`
}

type BidOutcome struct {
	BidID                   string    `json:"bidId"`
	AuctionID               string    `json:"auctionId"`
	BidderAnonymousID       string    `json:"bidderAnonymousId"`
	BecameLeader            bool      `json:"becameLeader"`
	CurrentPricePerM3       string    `json:"currentPricePerM3"`
	SecondHighestPricePerM3 string    `json:"secondHighestPricePerM3"`
	BidCount                int       `json:"bidCount"`
	EndTime                 time.Time `json:"endTime"`
	SoftCloseExtended       bool      `json:"softCloseExtended"`
}

// Bid is the anonymized view of one accepted bid.
type Bid struct {
	BidderAnonymousID string    `json:"bidderAnonymousId"`
	AmountPerM3       string    `json:"amountPerM3"`
	IsProxyBid        bool      `json:"isProxyBid"`
	PlacedAt          time.Time `json:"placedAt"`
}

// Error is the error response model.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type ErrorCode string
