package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
	service "github.com/Silvador/romanian-forest-auction-sub000/internal/domain/service/auction"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/httpx/reply"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/httpx/req"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/rest"
)

type auctionService interface {
	CreateAuction(ctx context.Context, req service.CreateAuctionRequest) (*entity.Auction, error)
	GetAuction(ctx context.Context, auctionID string) (*entity.Auction, error)
	ListBids(ctx context.Context, auctionID string) ([]*entity.Bid, error)
	SubmitBid(ctx context.Context, req service.SubmitBidRequest) (*service.BidOutcome, error)
	PublishAuction(ctx context.Context, auctionID, actorID string) error
	CancelAuction(ctx context.Context, auctionID, actorID string) error
}

type AuctionServer struct {
	auctionService auctionService
}

func NewAuctionServer(auctionService auctionService) AuctionServer {
	return AuctionServer{
		auctionService: auctionService,
	}
}

func (s AuctionServer) postV1Auction(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CreateAuctionRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	createReq, err := newDomainCreateAuction(request)
	if err != nil {
		return err
	}

	a, err := s.auctionService.CreateAuction(ctx, createReq)
	if err != nil {
		return fmt.Errorf("auctionService.CreateAuction: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTAuction(a))

	return nil
}

func (s AuctionServer) getV1Auction(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	a, err := s.auctionService.GetAuction(ctx, r.PathValue("auctionID"))
	if err != nil {
		return fmt.Errorf("auctionService.GetAuction: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAuction(a))

	return nil
}

func (s AuctionServer) getV1AuctionBids(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	bids, err := s.auctionService.ListBids(ctx, r.PathValue("auctionID"))
	if err != nil {
		return fmt.Errorf("auctionService.ListBids: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBids(bids))

	return nil
}

func (s AuctionServer) postV1AuctionBid(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.PlaceBidRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	submitReq, err := newDomainSubmitBid(r.PathValue("auctionID"), request)
	if err != nil {
		return err
	}

	outcome, err := s.auctionService.SubmitBid(ctx, submitReq)
	if err != nil {
		return fmt.Errorf("auctionService.SubmitBid: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBidOutcome(outcome))

	return nil
}

func (s AuctionServer) postV1AuctionPublish(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.TransitionRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.auctionService.PublishAuction(ctx, r.PathValue("auctionID"), request.ActorID); err != nil {
		return fmt.Errorf("auctionService.PublishAuction: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s AuctionServer) postV1AuctionCancel(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.TransitionRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.auctionService.CancelAuction(ctx, r.PathValue("auctionID"), request.ActorID); err != nil {
		return fmt.Errorf("auctionService.CancelAuction: %w", err)
	}

	reply.OK(w)

	return nil
}
