package auction

import (
	"context"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/patrickmn/go-cache"
	"github.com/rs/xid"
	"github.com/shopspring/decimal"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/value"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/errcodes"
)

const (
	defaultSoftCloseWindow    = 5 * time.Minute
	defaultSoftCloseExtension = 5 * time.Minute
	defaultActivityWindow     = 15 * time.Minute
	defaultCommitRetries      = 5

	anonIDCacheTTL = time.Hour
)

// Clock abstracts time so soft-close and lifecycle behavior are testable
// without real time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// AuctionStore is the transactional auction document store. Update and
// CommitBid are conditional writes keyed on the version the caller read;
// a version mismatch surfaces as a conflict error and leaves the document
// unchanged.
type AuctionStore interface {
	Create(ctx context.Context, a *entity.Auction) error
	GetByID(ctx context.Context, id string) (*entity.Auction, error)
	Update(ctx context.Context, a *entity.Auction, expectedVersion int64) error
	// CommitBid persists the auction patch and appends the bid record
	// atomically: either both land or neither does.
	CommitBid(ctx context.Context, a *entity.Auction, expectedVersion int64, bid *entity.Bid) error
	// ListDue returns non-terminal auctions whose next lifecycle boundary
	// (start or end) has passed.
	ListDue(ctx context.Context, now time.Time) ([]*entity.Auction, error)
}

// BidStore reads the append-only bid log.
type BidStore interface {
	CountByBidder(ctx context.Context, auctionID, bidderID string) (int, error)
	ListByAuction(ctx context.Context, auctionID string) ([]*entity.Bid, error)
}

// EventPublisher pushes engine events to interested channels. Publishing is
// best effort: a failed publish never rolls back a committed bid.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event Event) error
}

// AuctionService is the bid resolution and lifecycle engine. All operations
// are synchronous request/response calls safe for any number of concurrent
// callers; per-auction serialization comes entirely from the store's
// optimistic-concurrency primitive.
type AuctionService struct {
	auctions  AuctionStore
	bids      BidStore
	publisher EventPublisher
	clock     Clock

	softCloseWindow    time.Duration
	softCloseExtension time.Duration
	activityWindow     time.Duration
	maxCommitRetries   int

	anonIDs *cache.Cache
}

func NewAuctionService(
	auctions AuctionStore,
	bids BidStore,
	publisher EventPublisher,
) *AuctionService {
	return &AuctionService{
		auctions:           auctions,
		bids:               bids,
		publisher:          publisher,
		clock:              realClock{},
		softCloseWindow:    defaultSoftCloseWindow,
		softCloseExtension: defaultSoftCloseExtension,
		activityWindow:     defaultActivityWindow,
		maxCommitRetries:   defaultCommitRetries,
		anonIDs:            cache.New(anonIDCacheTTL, 10*time.Minute),
	}
}

func (s *AuctionService) WithSoftClose(window, extension time.Duration) *AuctionService {
	s.softCloseWindow = window
	s.softCloseExtension = extension
	return s
}

func (s *AuctionService) WithActivityWindow(window time.Duration) *AuctionService {
	s.activityWindow = window
	return s
}

func (s *AuctionService) WithCommitRetries(n int) *AuctionService {
	if n > 0 {
		s.maxCommitRetries = n
	}
	return s
}

func (s *AuctionService) WithClock(clock Clock) *AuctionService {
	s.clock = clock
	return s
}

// SubmitBidRequest is the input of SubmitBid. DisplayName is only used in
// the owner notification; other participants see the anonymous ID.
type SubmitBidRequest struct {
	AuctionID     string
	BidderID      string
	DisplayName   string
	AmountPerM3   decimal.Decimal
	MaxProxyPerM3 decimal.Decimal
}

// BidOutcome describes what a successfully committed bid did to the auction.
type BidOutcome struct {
	BidID                   string
	AuctionID               string
	BidderAnonymousID       string
	BecameLeader            bool
	CurrentPricePerM3       decimal.Decimal
	SecondHighestPricePerM3 decimal.Decimal
	BidCount                int
	EndTime                 time.Time
	SoftCloseExtended       bool
}

// SubmitBid runs the full bid pipeline against a fresh snapshot and attempts
// one conditional commit. A lost optimistic-concurrency race restarts the
// whole pipeline from scratch, up to the retry budget.
func (s *AuctionService) SubmitBid(ctx context.Context, req SubmitBidRequest) (*BidOutcome, error) {
	for attempt := 0; attempt < s.maxCommitRetries; attempt++ {
		outcome, err := s.trySubmitBid(ctx, req)
		if err != nil {
			if failure.IsConflictError(err) {
				commitConflicts.Inc()
				logger(ctx).Debug("bid commit conflict, retrying",
					"auction_id", req.AuctionID, "attempt", attempt+1)
				continue
			}
			return nil, err
		}
		return outcome, nil
	}

	return nil, failure.NewConflictError(
		"bid commit retry budget exhausted",
		failure.WithCode(errcodes.BidCommitConflict),
		failure.WithDescription("The auction is receiving many concurrent bids, please retry."),
	)
}

func (s *AuctionService) trySubmitBid(ctx context.Context, req SubmitBidRequest) (*BidOutcome, error) {
	now := s.clock.Now()

	a, err := s.auctions.GetByID(ctx, req.AuctionID)
	if err != nil {
		return nil, err
	}
	expectedVersion := a.Version

	increment := value.MinIncrement(a.DominantSpecies)

	if err := validateBid(a, req, increment, now); err != nil {
		bidsRejected.WithLabelValues(failure.Code(err).String()).Inc()
		return nil, err
	}

	// The gate only needs the bid log once the closing window has started.
	if a.InActivityWindow(now) {
		prior, err := s.bids.CountByBidder(ctx, req.AuctionID, req.BidderID)
		if err != nil {
			return nil, err
		}
		if err := checkEligibility(prior); err != nil {
			bidsRejected.WithLabelValues(failure.Code(err).String()).Inc()
			return nil, err
		}
	}

	anonID := s.anonymousIDFor(a, req.BidderID)
	res := resolveProxy(a, req.BidderID, anonID, req.AmountPerM3, req.MaxProxyPerM3, increment)
	extended := applySoftClose(a, now, s.softCloseWindow, s.softCloseExtension)
	a.UpdatedAt = now

	bid := &entity.Bid{
		ID:                xid.New().String(),
		AuctionID:         a.ID,
		BidderID:          req.BidderID,
		BidderAnonymousID: anonID,
		AmountPerM3:       req.AmountPerM3,
		MaxProxyPerM3:     req.MaxProxyPerM3,
		IsProxyBid:        req.MaxProxyPerM3.GreaterThan(req.AmountPerM3),
		PlacedAt:          now,
	}

	if err := s.auctions.CommitBid(ctx, a, expectedVersion, bid); err != nil {
		return nil, err
	}

	bidsAccepted.Inc()
	s.publishBidEvents(ctx, a, res, req.DisplayName, extended)

	return &BidOutcome{
		BidID:                   bid.ID,
		AuctionID:               a.ID,
		BidderAnonymousID:       anonID,
		BecameLeader:            res.becameLeader,
		CurrentPricePerM3:       a.CurrentPricePerM3,
		SecondHighestPricePerM3: a.SecondHighestPricePerM3,
		BidCount:                a.BidCount,
		EndTime:                 a.EndTime,
		SoftCloseExtended:       extended,
	}, nil
}

// GetAuction returns the current snapshot.
func (s *AuctionService) GetAuction(ctx context.Context, auctionID string) (*entity.Auction, error) {
	return s.auctions.GetByID(ctx, auctionID)
}

// ListBids returns the append-only bid log of one auction.
func (s *AuctionService) ListBids(ctx context.Context, auctionID string) ([]*entity.Bid, error) {
	return s.bids.ListByAuction(ctx, auctionID)
}
