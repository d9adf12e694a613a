package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Silvador/romanian-forest-auction-sub000/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/auctions", func(r chi.Router) {
				r.Post("/", handler(s.postV1Auction))
				r.Get("/{auctionID}", handler(s.getV1Auction))
				r.Get("/{auctionID}/bids", handler(s.getV1AuctionBids))
				r.Post("/{auctionID}/bids", handler(s.postV1AuctionBid))
				r.Post("/{auctionID}/publish", handler(s.postV1AuctionPublish))
				r.Post("/{auctionID}/cancel", handler(s.postV1AuctionCancel))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
