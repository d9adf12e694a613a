package auction

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/rs/xid"
	"github.com/shopspring/decimal"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/value"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/errcodes"
)

type CreateAuctionRequest struct {
	OwnerID            string
	DominantSpecies    value.Species
	VolumeM3           decimal.Decimal
	StartingPricePerM3 decimal.Decimal
	StartTime          time.Time
	EndTime            time.Time
}

// CreateAuction lists a new lot in draft. The engine computes the fields it
// will later depend on: the activity-window cutoff and the anonymity salt.
func (s *AuctionService) CreateAuction(ctx context.Context, req CreateAuctionRequest) (*entity.Auction, error) {
	if req.OwnerID == "" {
		return nil, failure.NewInvalidArgumentError(
			"owner id is empty",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("An owner is required."),
		)
	}

	if !req.VolumeM3.IsPositive() {
		return nil, failure.NewInvalidArgumentError(
			"volume must be positive",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("The lot volume must be greater than zero."),
		)
	}

	if !req.StartingPricePerM3.IsPositive() {
		return nil, failure.NewInvalidArgumentError(
			"starting price must be positive",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("The starting price must be greater than zero."),
		)
	}

	if !req.EndTime.After(req.StartTime) {
		return nil, failure.NewInvalidArgumentError(
			"end time not after start time",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("The auction must end after it starts."),
		)
	}

	now := s.clock.Now()

	a := &entity.Auction{
		ID:                      xid.New().String(),
		OwnerID:                 req.OwnerID,
		Status:                  entity.StatusDraft,
		DominantSpecies:         req.DominantSpecies,
		VolumeM3:                req.VolumeM3,
		StartingPricePerM3:      req.StartingPricePerM3,
		CurrentPricePerM3:       req.StartingPricePerM3,
		SecondHighestPricePerM3: req.StartingPricePerM3,
		HighestMaxProxyPerM3:    req.StartingPricePerM3,
		StartTime:               req.StartTime,
		EndTime:                 req.EndTime,
		OriginalEndTime:         req.EndTime,
		ActivityWindowCutoff:    req.EndTime.Add(-s.activityWindow),
		AnonymitySalt:           newAnonymitySalt(),
		Version:                 1,
		UpdatedAt:               now,
	}
	a.RecomputeProjectedValue()

	if err := s.auctions.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func newAnonymitySalt() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
