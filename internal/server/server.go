package server

// Server bundles the entity-specific HTTP servers. The engine only has the
// auction surface; the wider marketplace mounts its own alongside.
type Server struct {
	AuctionServer
}

func NewServer(
	auctionServer AuctionServer,
) Server {
	return Server{
		AuctionServer: auctionServer,
	}
}
