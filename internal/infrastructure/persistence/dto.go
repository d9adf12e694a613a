package persistence

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/value"
)

// auctionSchema maps one row of the auctions table.
type auctionSchema struct {
	ID      string `db:"id"`
	OwnerID string `db:"owner_id"`
	Status  string `db:"status"`

	DominantSpecies string          `db:"dominant_species"`
	VolumeM3        decimal.Decimal `db:"volume_m3"`

	StartingPricePerM3      decimal.Decimal `db:"starting_price_per_m3"`
	CurrentPricePerM3       decimal.Decimal `db:"current_price_per_m3"`
	SecondHighestPricePerM3 decimal.Decimal `db:"second_highest_price_per_m3"`
	HighestMaxProxyPerM3    decimal.Decimal `db:"highest_max_proxy_per_m3"`
	ProjectedTotalValue     decimal.Decimal `db:"projected_total_value"`

	CurrentBidderID          string `db:"current_bidder_id"`
	CurrentBidderAnonymousID string `db:"current_bidder_anonymous_id"`
	BidCount                 int    `db:"bid_count"`

	StartTime            time.Time `db:"start_time"`
	EndTime              time.Time `db:"end_time"`
	OriginalEndTime      time.Time `db:"original_end_time"`
	ActivityWindowCutoff time.Time `db:"activity_window_cutoff"`
	SoftCloseActive      bool      `db:"soft_close_active"`

	AnonymitySalt string `db:"anonymity_salt"`

	Version   int64     `db:"version"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (s *auctionSchema) toDomain() *entity.Auction {
	return &entity.Auction{
		ID:                       s.ID,
		OwnerID:                  s.OwnerID,
		Status:                   entity.Status(s.Status),
		DominantSpecies:          value.Species(s.DominantSpecies),
		VolumeM3:                 s.VolumeM3,
		StartingPricePerM3:       s.StartingPricePerM3,
		CurrentPricePerM3:        s.CurrentPricePerM3,
		SecondHighestPricePerM3:  s.SecondHighestPricePerM3,
		HighestMaxProxyPerM3:     s.HighestMaxProxyPerM3,
		ProjectedTotalValue:      s.ProjectedTotalValue,
		CurrentBidderID:          s.CurrentBidderID,
		CurrentBidderAnonymousID: s.CurrentBidderAnonymousID,
		BidCount:                 s.BidCount,
		StartTime:                s.StartTime,
		EndTime:                  s.EndTime,
		OriginalEndTime:          s.OriginalEndTime,
		ActivityWindowCutoff:     s.ActivityWindowCutoff,
		SoftCloseActive:          s.SoftCloseActive,
		AnonymitySalt:            s.AnonymitySalt,
		Version:                  s.Version,
		UpdatedAt:                s.UpdatedAt,
	}
}

func fromAuction(a *entity.Auction) map[string]any {
	return map[string]any{
		"id":                          a.ID,
		"owner_id":                    a.OwnerID,
		"status":                      a.Status.String(),
		"dominant_species":            a.DominantSpecies.String(),
		"volume_m3":                   a.VolumeM3,
		"starting_price_per_m3":       a.StartingPricePerM3,
		"current_price_per_m3":        a.CurrentPricePerM3,
		"second_highest_price_per_m3": a.SecondHighestPricePerM3,
		"highest_max_proxy_per_m3":    a.HighestMaxProxyPerM3,
		"projected_total_value":       a.ProjectedTotalValue,
		"current_bidder_id":           a.CurrentBidderID,
		"current_bidder_anonymous_id": a.CurrentBidderAnonymousID,
		"bid_count":                   a.BidCount,
		"start_time":                  a.StartTime,
		"end_time":                    a.EndTime,
		"original_end_time":           a.OriginalEndTime,
		"activity_window_cutoff":      a.ActivityWindowCutoff,
		"soft_close_active":           a.SoftCloseActive,
		"anonymity_salt":              a.AnonymitySalt,
		"updated_at":                  a.UpdatedAt,
	}
}

// bidSchema maps one row of the bids table.
type bidSchema struct {
	ID                string          `db:"id"`
	AuctionID         string          `db:"auction_id"`
	BidderID          string          `db:"bidder_id"`
	BidderAnonymousID string          `db:"bidder_anonymous_id"`
	AmountPerM3       decimal.Decimal `db:"amount_per_m3"`
	MaxProxyPerM3     decimal.Decimal `db:"max_proxy_per_m3"`
	IsProxyBid        bool            `db:"is_proxy_bid"`
	PlacedAt          time.Time       `db:"placed_at"`
}

func (s *bidSchema) toDomain() *entity.Bid {
	return &entity.Bid{
		ID:                s.ID,
		AuctionID:         s.AuctionID,
		BidderID:          s.BidderID,
		BidderAnonymousID: s.BidderAnonymousID,
		AmountPerM3:       s.AmountPerM3,
		MaxProxyPerM3:     s.MaxProxyPerM3,
		IsProxyBid:        s.IsProxyBid,
		PlacedAt:          s.PlacedAt,
	}
}
