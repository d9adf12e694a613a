package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
	auction "github.com/Silvador/romanian-forest-auction-sub000/internal/domain/service/auction"
	"github.com/Silvador/romanian-forest-auction-sub000/internal/server"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/errcodes"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/httpx"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/rest"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/tests"
)

// memoryStore backs the engine for the end-to-end flow without Postgres. It
// keeps the same conditional-write contract as the real repository.
type memoryStore struct {
	mu       sync.Mutex
	auctions map[string]*entity.Auction
	bids     map[string][]*entity.Bid
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		auctions: make(map[string]*entity.Auction),
		bids:     make(map[string][]*entity.Bid),
	}
}

func (s *memoryStore) Create(_ context.Context, a *entity.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.auctions[a.ID] = &cp
	return nil
}

func (s *memoryStore) GetByID(_ context.Context, id string) (*entity.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[id]
	if !ok {
		return nil, failure.NewNotFoundError("auction not found", failure.WithCode(errcodes.AuctionNotFound))
	}
	cp := *a
	return &cp, nil
}

func (s *memoryStore) Update(_ context.Context, a *entity.Auction, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeLocked(a, expectedVersion)
}

func (s *memoryStore) CommitBid(_ context.Context, a *entity.Auction, expectedVersion int64, bid *entity.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storeLocked(a, expectedVersion); err != nil {
		return err
	}

	cp := *bid
	s.bids[bid.AuctionID] = append(s.bids[bid.AuctionID], &cp)
	return nil
}

func (s *memoryStore) storeLocked(a *entity.Auction, expectedVersion int64) error {
	stored, ok := s.auctions[a.ID]
	if !ok || stored.Version != expectedVersion {
		return failure.NewConflictError("version mismatch", failure.WithCode(errcodes.Conflict))
	}

	cp := *a
	cp.Version = expectedVersion + 1
	s.auctions[a.ID] = &cp
	a.Version = cp.Version
	return nil
}

func (s *memoryStore) ListDue(_ context.Context, now time.Time) ([]*entity.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*entity.Auction
	for _, a := range s.auctions {
		switch {
		case a.Status == entity.StatusUpcoming && !now.Before(a.StartTime),
			a.Status == entity.StatusActive && !now.Before(a.EndTime):
			cp := *a
			due = append(due, &cp)
		}
	}
	return due, nil
}

func (s *memoryStore) CountByBidder(_ context.Context, auctionID, bidderID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, b := range s.bids[auctionID] {
		if b.BidderID == bidderID {
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) ListByAuction(_ context.Context, auctionID string) ([]*entity.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Bid(nil), s.bids[auctionID]...), nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, auction.Event) error { return nil }

// Drives a full lot lifecycle through the HTTP surface: list, publish,
// activate, bid war, read back the anonymized state.
func TestAuctionFlow(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := newMemoryStore()
	svc := auction.NewAuctionService(store, store, nopPublisher{})

	router := chi.NewRouter()
	server.NewServer(server.NewAuctionServer(svc)).RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	client := tests.NewAPIClient(srv.URL, &http.Client{
		Transport: httpx.NewLoggingRoundTripper(http.DefaultTransport),
	})

	now := time.Now().UTC()

	// List a lot.
	var created rest.Auction
	resp, err := client.Post(ctx, "/v1/auctions", nil, rest.CreateAuctionRequest{
		OwnerID:            "seller-1",
		DominantSpecies:    "oak",
		VolumeM3:           "120",
		StartingPricePerM3: "250",
		StartTime:          now.Add(-time.Minute),
		EndTime:            now.Add(time.Hour),
	}, &created, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)
	rq.Equal("draft", created.Status)
	rq.Equal("30000", created.ProjectedTotalValue)

	// Publish it, then let the engine tick it into active.
	resp, err = client.Post(ctx, "/v1/auctions/"+created.ID+"/publish", nil,
		rest.TransitionRequest{ActorID: "seller-1"}, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	applied, err := svc.TickLifecycle(ctx)
	rq.NoError(err)
	rq.Len(applied, 1)
	rq.Equal(entity.StatusActive, applied[0].To)

	// Two buyers fight over it. Oak moves in steps of 10.
	var first rest.BidOutcome
	resp, err = client.Post(ctx, "/v1/auctions/"+created.ID+"/bids", nil, rest.PlaceBidRequest{
		BidderID:      "buyer-a",
		AmountPerM3:   "260",
		MaxProxyPerM3: "320",
	}, &first, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.True(first.BecameLeader)
	rq.Equal("260", first.CurrentPricePerM3)

	var second rest.BidOutcome
	resp, err = client.Post(ctx, "/v1/auctions/"+created.ID+"/bids", nil, rest.PlaceBidRequest{
		BidderID:      "buyer-b",
		AmountPerM3:   "270",
		MaxProxyPerM3: "300",
	}, &second, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	// buyer-a's proxy defends the lead.
	rq.False(second.BecameLeader)
	rq.Equal("310", second.CurrentPricePerM3)
	rq.Equal("300", second.SecondHighestPricePerM3)

	// A bid under the minimum step is rejected with a typed code.
	var restErr rest.Error
	resp, err = client.Post(ctx, "/v1/auctions/"+created.ID+"/bids", nil, rest.PlaceBidRequest{
		BidderID:      "buyer-c",
		AmountPerM3:   "315",
		MaxProxyPerM3: "400",
	}, nil, &restErr)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode(errcodes.BidBelowMinimumStep.String()), restErr.Code)

	// The public snapshot never leaks real bidder identities.
	var snapshot rest.Auction
	resp, err = client.Get(ctx, "/v1/auctions/"+created.ID, nil, &snapshot, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("310", snapshot.CurrentPricePerM3)
	rq.Equal(2, snapshot.BidCount)
	rq.NotEmpty(snapshot.CurrentBidderAnonymousID)
	rq.NotContains(snapshot.CurrentBidderAnonymousID, "buyer")

	var bidLog []rest.Bid
	resp, err = client.Get(ctx, "/v1/auctions/"+created.ID+"/bids", nil, &bidLog, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(bidLog, 2)
	for _, b := range bidLog {
		rq.NotContains(b.BidderAnonymousID, "buyer")
	}
}
