package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/value"
)

// Auction is a timber lot under auction. The engine owns the document from
// the moment it leaves draft until it reaches a terminal status. Version is
// the optimistic-concurrency token: every committed mutation bumps it, and
// every conditional write is keyed on the version that was read.
type Auction struct {
	ID      string `json:"id" db:"id"`
	OwnerID string `json:"owner_id" db:"owner_id"`
	Status  Status `json:"status" db:"status"`

	DominantSpecies value.Species   `json:"dominant_species" db:"dominant_species"`
	VolumeM3        decimal.Decimal `json:"volume_m3" db:"volume_m3"`

	StartingPricePerM3      decimal.Decimal `json:"starting_price_per_m3" db:"starting_price_per_m3"`
	CurrentPricePerM3       decimal.Decimal `json:"current_price_per_m3" db:"current_price_per_m3"`
	SecondHighestPricePerM3 decimal.Decimal `json:"second_highest_price_per_m3" db:"second_highest_price_per_m3"`
	HighestMaxProxyPerM3    decimal.Decimal `json:"highest_max_proxy_per_m3" db:"highest_max_proxy_per_m3"`
	ProjectedTotalValue     decimal.Decimal `json:"projected_total_value" db:"projected_total_value"`

	CurrentBidderID          string `json:"current_bidder_id" db:"current_bidder_id"`
	CurrentBidderAnonymousID string `json:"current_bidder_anonymous_id" db:"current_bidder_anonymous_id"`
	BidCount                 int    `json:"bid_count" db:"bid_count"`

	StartTime             time.Time `json:"start_time" db:"start_time"`
	EndTime               time.Time `json:"end_time" db:"end_time"`
	OriginalEndTime       time.Time `json:"original_end_time" db:"original_end_time"`
	ActivityWindowCutoff  time.Time `json:"activity_window_cutoff" db:"activity_window_cutoff"`
	SoftCloseActive       bool      `json:"soft_close_active" db:"soft_close_active"`

	// AnonymitySalt feeds the deterministic anonymous bidder ID. Set once
	// at creation, never changed.
	AnonymitySalt string `json:"-" db:"anonymity_salt"`

	Version   int64     `json:"version" db:"version"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasLeader reports whether any bid has been accepted so far.
func (a *Auction) HasLeader() bool {
	return a.CurrentBidderID != ""
}

// RecomputeProjectedValue refreshes the projected total after a price change.
func (a *Auction) RecomputeProjectedValue() {
	a.ProjectedTotalValue = a.CurrentPricePerM3.Mul(a.VolumeM3)
}

// InActivityWindow reports whether now has reached the closing window in
// which only previously participating bidders may bid. The cutoff itself
// is inside the window.
func (a *Auction) InActivityWindow(now time.Time) bool {
	return !now.Before(a.ActivityWindowCutoff)
}
