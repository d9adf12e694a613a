package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
	service "github.com/Silvador/romanian-forest-auction-sub000/internal/domain/service/auction"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/errcodes"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/rest"
)

type fakeAuctionService struct {
	createAuction  func(ctx context.Context, req service.CreateAuctionRequest) (*entity.Auction, error)
	getAuction     func(ctx context.Context, auctionID string) (*entity.Auction, error)
	listBids       func(ctx context.Context, auctionID string) ([]*entity.Bid, error)
	submitBid      func(ctx context.Context, req service.SubmitBidRequest) (*service.BidOutcome, error)
	publishAuction func(ctx context.Context, auctionID, actorID string) error
	cancelAuction  func(ctx context.Context, auctionID, actorID string) error
}

func (f *fakeAuctionService) CreateAuction(ctx context.Context, req service.CreateAuctionRequest) (*entity.Auction, error) {
	return f.createAuction(ctx, req)
}

func (f *fakeAuctionService) GetAuction(ctx context.Context, auctionID string) (*entity.Auction, error) {
	return f.getAuction(ctx, auctionID)
}

func (f *fakeAuctionService) ListBids(ctx context.Context, auctionID string) ([]*entity.Bid, error) {
	return f.listBids(ctx, auctionID)
}

func (f *fakeAuctionService) SubmitBid(ctx context.Context, req service.SubmitBidRequest) (*service.BidOutcome, error) {
	return f.submitBid(ctx, req)
}

func (f *fakeAuctionService) PublishAuction(ctx context.Context, auctionID, actorID string) error {
	return f.publishAuction(ctx, auctionID, actorID)
}

func (f *fakeAuctionService) CancelAuction(ctx context.Context, auctionID, actorID string) error {
	return f.cancelAuction(ctx, auctionID, actorID)
}

func newTestServer(t *testing.T, svc *fakeAuctionService) *httptest.Server {
	t.Helper()

	router := chi.NewRouter()
	NewServer(NewAuctionServer(svc)).RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	rq := require.New(t)

	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := jsoniter.Marshal(body)
		rq.NoError(err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, reader)
	rq.NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	rq.NoError(err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func decodeInto(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, jsoniter.NewDecoder(resp.Body).Decode(out))
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPostV1AuctionBid(t *testing.T) {
	rq := require.New(t)

	endTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("accepted bid", func(t *testing.T) {
		var got service.SubmitBidRequest

		srv := newTestServer(t, &fakeAuctionService{
			submitBid: func(_ context.Context, req service.SubmitBidRequest) (*service.BidOutcome, error) {
				got = req
				return &service.BidOutcome{
					BidID:                   "bid-1",
					AuctionID:               req.AuctionID,
					BidderAnonymousID:       "bidder-0a1b2c3d",
					BecameLeader:            true,
					CurrentPricePerM3:       req.AmountPerM3,
					SecondHighestPricePerM3: req.AmountPerM3,
					BidCount:                1,
					EndTime:                 endTime,
				}, nil
			},
		})

		resp := doJSON(t, http.MethodPost, srv.URL+"/v1/auctions/lot-1/bids", rest.PlaceBidRequest{
			BidderID:      "buyer-a",
			AmountPerM3:   "105",
			MaxProxyPerM3: "150.50",
		})
		rq.Equal(http.StatusOK, resp.StatusCode)

		rq.Equal("lot-1", got.AuctionID)
		rq.Equal("buyer-a", got.BidderID)
		rq.Equal("105", got.AmountPerM3.String())
		rq.Equal("150.5", got.MaxProxyPerM3.String())

		var outcome rest.BidOutcome
		decodeInto(t, resp, &outcome)
		rq.Equal("bid-1", outcome.BidID)
		rq.True(outcome.BecameLeader)
		rq.Equal("105", outcome.CurrentPricePerM3)
	})

	t.Run("malformed amount is a 400", func(t *testing.T) {
		srv := newTestServer(t, &fakeAuctionService{})

		resp := doJSON(t, http.MethodPost, srv.URL+"/v1/auctions/lot-1/bids", rest.PlaceBidRequest{
			BidderID:      "buyer-a",
			AmountPerM3:   "not-a-number",
			MaxProxyPerM3: "150",
		})
		rq.Equal(http.StatusBadRequest, resp.StatusCode)

		var body rest.Error
		decodeInto(t, resp, &body)
		rq.Equal(rest.ErrorCode(errcodes.ValidationError.String()), body.Code)
	})

	t.Run("missing bidder is a 400", func(t *testing.T) {
		srv := newTestServer(t, &fakeAuctionService{})

		resp := doJSON(t, http.MethodPost, srv.URL+"/v1/auctions/lot-1/bids", rest.PlaceBidRequest{
			AmountPerM3:   "105",
			MaxProxyPerM3: "150",
		})
		rq.Equal(http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("lost race maps to 409", func(t *testing.T) {
		srv := newTestServer(t, &fakeAuctionService{
			submitBid: func(context.Context, service.SubmitBidRequest) (*service.BidOutcome, error) {
				return nil, failure.NewConflictError(
					"bid commit retry budget exhausted",
					failure.WithCode(errcodes.BidCommitConflict),
				)
			},
		})

		resp := doJSON(t, http.MethodPost, srv.URL+"/v1/auctions/lot-1/bids", rest.PlaceBidRequest{
			BidderID:      "buyer-a",
			AmountPerM3:   "105",
			MaxProxyPerM3: "150",
		})
		rq.Equal(http.StatusConflict, resp.StatusCode)

		var body rest.Error
		decodeInto(t, resp, &body)
		rq.Equal(rest.ErrorCode(errcodes.BidCommitConflict.String()), body.Code)
	})

	t.Run("ended auction maps to 422", func(t *testing.T) {
		srv := newTestServer(t, &fakeAuctionService{
			submitBid: func(context.Context, service.SubmitBidRequest) (*service.BidOutcome, error) {
				return nil, failure.NewUnprocessableEntityError(
					"auction already ended",
					failure.WithCode(errcodes.AuctionAlreadyEnded),
				)
			},
		})

		resp := doJSON(t, http.MethodPost, srv.URL+"/v1/auctions/lot-1/bids", rest.PlaceBidRequest{
			BidderID:      "buyer-a",
			AmountPerM3:   "105",
			MaxProxyPerM3: "150",
		})
		rq.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestGetV1Auction(t *testing.T) {
	rq := require.New(t)

	t.Run("found", func(t *testing.T) {
		srv := newTestServer(t, &fakeAuctionService{
			getAuction: func(_ context.Context, auctionID string) (*entity.Auction, error) {
				return &entity.Auction{
					ID:                       auctionID,
					OwnerID:                  "seller-1",
					Status:                   entity.StatusActive,
					DominantSpecies:          "oak",
					CurrentBidderAnonymousID: "bidder-0a1b2c3d",
					BidCount:                 2,
				}, nil
			},
		})

		resp := doJSON(t, http.MethodGet, srv.URL+"/v1/auctions/lot-1", nil)
		rq.Equal(http.StatusOK, resp.StatusCode)

		var a rest.Auction
		decodeInto(t, resp, &a)
		rq.Equal("lot-1", a.ID)
		rq.Equal("active", a.Status)
		rq.Equal("bidder-0a1b2c3d", a.CurrentBidderAnonymousID)
	})

	t.Run("unknown lot maps to 404", func(t *testing.T) {
		srv := newTestServer(t, &fakeAuctionService{
			getAuction: func(context.Context, string) (*entity.Auction, error) {
				return nil, failure.NewNotFoundError(
					"auction not found",
					failure.WithCode(errcodes.AuctionNotFound),
				)
			},
		})

		resp := doJSON(t, http.MethodGet, srv.URL+"/v1/auctions/missing", nil)
		rq.Equal(http.StatusNotFound, resp.StatusCode)
	})
}

func TestPostV1AuctionTransitions(t *testing.T) {
	rq := require.New(t)

	t.Run("publish", func(t *testing.T) {
		var gotAuction, gotActor string

		srv := newTestServer(t, &fakeAuctionService{
			publishAuction: func(_ context.Context, auctionID, actorID string) error {
				gotAuction, gotActor = auctionID, actorID
				return nil
			},
		})

		resp := doJSON(t, http.MethodPost, srv.URL+"/v1/auctions/lot-1/publish", rest.TransitionRequest{ActorID: "seller-1"})
		rq.Equal(http.StatusOK, resp.StatusCode)
		rq.Equal("lot-1", gotAuction)
		rq.Equal("seller-1", gotActor)
	})

	t.Run("cancel by non-owner maps to 403", func(t *testing.T) {
		srv := newTestServer(t, &fakeAuctionService{
			cancelAuction: func(context.Context, string, string) error {
				return failure.NewForbiddenError(
					"only the owner may change the auction",
					failure.WithCode(errcodes.Forbidden),
				)
			},
		})

		resp := doJSON(t, http.MethodPost, srv.URL+"/v1/auctions/lot-1/cancel", rest.TransitionRequest{ActorID: "stranger"})
		rq.Equal(http.StatusForbidden, resp.StatusCode)
	})
}

func TestGetV1AuctionBids(t *testing.T) {
	rq := require.New(t)

	placedAt := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	srv := newTestServer(t, &fakeAuctionService{
		listBids: func(_ context.Context, auctionID string) ([]*entity.Bid, error) {
			return []*entity.Bid{
				{
					AuctionID:         auctionID,
					BidderID:          "buyer-a",
					BidderAnonymousID: "bidder-0a1b2c3d",
					AmountPerM3:       mustDecimal("105"),
					IsProxyBid:        true,
					PlacedAt:          placedAt,
				},
			}, nil
		},
	})

	resp := doJSON(t, http.MethodGet, srv.URL+"/v1/auctions/lot-1/bids", nil)
	rq.Equal(http.StatusOK, resp.StatusCode)

	var bids []rest.Bid
	decodeInto(t, resp, &bids)
	rq.Len(bids, 1)
	rq.Equal("bidder-0a1b2c3d", bids[0].BidderAnonymousID)
	rq.Equal("105", bids[0].AmountPerM3)
	rq.True(bids[0].IsProxyBid)
}
