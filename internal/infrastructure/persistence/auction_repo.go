package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/jmoiron/sqlx"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain"
	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/errcodes"
)

const auctionColumns = `
	id, owner_id, status, dominant_species, volume_m3,
	starting_price_per_m3, current_price_per_m3, second_highest_price_per_m3,
	highest_max_proxy_per_m3, projected_total_value,
	current_bidder_id, current_bidder_anonymous_id, bid_count,
	start_time, end_time, original_end_time, activity_window_cutoff,
	soft_close_active, anonymity_salt, version, updated_at`

// The conditional UPDATE is the only write path for a live auction: it is
// keyed on the version the caller read and bumps it, so two writers racing
// on the same snapshot can never both succeed.
const auctionUpdateQuery = `
	UPDATE auctions SET
		status = :status,
		current_price_per_m3 = :current_price_per_m3,
		second_highest_price_per_m3 = :second_highest_price_per_m3,
		highest_max_proxy_per_m3 = :highest_max_proxy_per_m3,
		projected_total_value = :projected_total_value,
		current_bidder_id = :current_bidder_id,
		current_bidder_anonymous_id = :current_bidder_anonymous_id,
		bid_count = :bid_count,
		end_time = :end_time,
		soft_close_active = :soft_close_active,
		version = version + 1,
		updated_at = :updated_at
	WHERE id = :id AND version = :expected_version`

type AuctionRepository struct {
	db *sqlx.DB
}

func NewAuctionRepository(db *sqlx.DB) *AuctionRepository {
	return &AuctionRepository{db: db}
}

func (r *AuctionRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}
	return nil
}

// Create inserts a freshly listed auction at version 1.
func (r *AuctionRepository) Create(ctx context.Context, a *entity.Auction) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		params := fromAuction(a)
		if a.UpdatedAt.IsZero() {
			params["updated_at"] = time.Now().UTC()
		}

		query := `
			INSERT INTO auctions (
				id, owner_id, status, dominant_species, volume_m3,
				starting_price_per_m3, current_price_per_m3, second_highest_price_per_m3,
				highest_max_proxy_per_m3, projected_total_value,
				current_bidder_id, current_bidder_anonymous_id, bid_count,
				start_time, end_time, original_end_time, activity_window_cutoff,
				soft_close_active, anonymity_salt, version, updated_at
			) VALUES (
				:id, :owner_id, :status, :dominant_species, :volume_m3,
				:starting_price_per_m3, :current_price_per_m3, :second_highest_price_per_m3,
				:highest_max_proxy_per_m3, :projected_total_value,
				:current_bidder_id, :current_bidder_anonymous_id, :bid_count,
				:start_time, :end_time, :original_end_time, :activity_window_cutoff,
				:soft_close_active, :anonymity_salt, 1, :updated_at
			)`

		if _, err := tx.NamedExecContext(ctx, query, params); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert auction")
		}
		return nil
	})
}

// GetByID returns the auction snapshot including its version token.
func (r *AuctionRepository) GetByID(ctx context.Context, id string) (*entity.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1`

	var schema auctionSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, failure.NewNotFoundError(
				"auction not found",
				failure.WithCode(errcodes.AuctionNotFound),
				failure.WithDescription("The auction does not exist."),
			)
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get auction")
	}

	return schema.toDomain(), nil
}

// Update applies the auction patch conditionally on expectedVersion.
func (r *AuctionRepository) Update(ctx context.Context, a *entity.Auction, expectedVersion int64) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.updateTx(ctx, tx, a, expectedVersion); err != nil {
			return err
		}
		a.Version = expectedVersion + 1
		return nil
	})
}

// CommitBid applies the auction patch and appends the bid record in one
// transaction: either both land or neither does.
func (r *AuctionRepository) CommitBid(ctx context.Context, a *entity.Auction, expectedVersion int64, bid *entity.Bid) error {
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.updateTx(ctx, tx, a, expectedVersion); err != nil {
			return err
		}

		query := `
			INSERT INTO bids (
				id, auction_id, bidder_id, bidder_anonymous_id,
				amount_per_m3, max_proxy_per_m3, is_proxy_bid, placed_at
			) VALUES (
				:id, :auction_id, :bidder_id, :bidder_anonymous_id,
				:amount_per_m3, :max_proxy_per_m3, :is_proxy_bid, :placed_at
			)`

		params := map[string]any{
			"id":                  bid.ID,
			"auction_id":          bid.AuctionID,
			"bidder_id":           bid.BidderID,
			"bidder_anonymous_id": bid.BidderAnonymousID,
			"amount_per_m3":       bid.AmountPerM3,
			"max_proxy_per_m3":    bid.MaxProxyPerM3,
			"is_proxy_bid":        bid.IsProxyBid,
			"placed_at":           bid.PlacedAt,
		}

		if _, err := tx.NamedExecContext(ctx, query, params); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert bid")
		}
		return nil
	})
	if err != nil {
		return err
	}

	a.Version = expectedVersion + 1
	return nil
}

// ListDue returns non-terminal auctions whose next lifecycle boundary has
// passed at now.
func (r *AuctionRepository) ListDue(ctx context.Context, now time.Time) ([]*entity.Auction, error) {
	query := `
		SELECT ` + auctionColumns + `
		FROM auctions
		WHERE (status = 'upcoming' AND start_time <= $1)
		   OR (status = 'active' AND end_time <= $1)
		ORDER BY end_time`

	var schemas []auctionSchema
	if err := r.db.SelectContext(ctx, &schemas, query, now); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list due auctions")
	}

	auctions := make([]*entity.Auction, 0, len(schemas))
	for i := range schemas {
		auctions = append(auctions, schemas[i].toDomain())
	}

	return auctions, nil
}

func (r *AuctionRepository) updateTx(ctx context.Context, tx *sqlx.Tx, a *entity.Auction, expectedVersion int64) error {
	params := fromAuction(a)
	params["expected_version"] = expectedVersion

	res, err := tx.NamedExecContext(ctx, auctionUpdateQuery, params)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to update auction")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	if rows == 0 {
		// The row was there when the snapshot was read; zero rows means the
		// version moved underneath us.
		return failure.NewConflictError(
			fmt.Sprintf("auction %s version %d is stale", a.ID, expectedVersion),
			failure.WithCode(errcodes.Conflict),
			failure.WithDescription("The auction changed concurrently."),
		)
	}

	return nil
}
