package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain"
	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/errcodes"
)

// BidRepository reads the append-only bid log. Writes go exclusively
// through AuctionRepository.CommitBid so a bid can never land without its
// auction patch.
type BidRepository struct {
	db *sqlx.DB
}

func NewBidRepository(db *sqlx.DB) *BidRepository {
	return &BidRepository{db: db}
}

// CountByBidder returns how many accepted bids the bidder has on the auction.
func (r *BidRepository) CountByBidder(ctx context.Context, auctionID, bidderID string) (int, error) {
	query := `SELECT count(*) FROM bids WHERE auction_id = $1 AND bidder_id = $2`

	var count int
	if err := r.db.GetContext(ctx, &count, query, auctionID, bidderID); err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to count bids")
	}

	return count, nil
}

// ListByAuction returns the auction's bids in placement order.
func (r *BidRepository) ListByAuction(ctx context.Context, auctionID string) ([]*entity.Bid, error) {
	query := `
		SELECT id, auction_id, bidder_id, bidder_anonymous_id,
		       amount_per_m3, max_proxy_per_m3, is_proxy_bid, placed_at
		FROM bids
		WHERE auction_id = $1
		ORDER BY placed_at, id`

	var schemas []bidSchema
	if err := r.db.SelectContext(ctx, &schemas, query, auctionID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list bids")
	}

	bids := make([]*entity.Bid, 0, len(schemas))
	for i := range schemas {
		bids = append(bids, schemas[i].toDomain())
	}

	return bids, nil
}
