package auction

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/patrickmn/go-cache"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
)

// anonymousBidderID derives a per-auction pseudonym for a bidder. It is a
// pure function of (salt, auctionID, bidderID): the same bidder gets the
// same pseudonym within one auction and an unrelated one in any other.
func anonymousBidderID(salt, auctionID, bidderID string) string {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(auctionID))
	mac.Write([]byte{0})
	mac.Write([]byte(bidderID))
	sum := mac.Sum(nil)

	return "bidder-" + hex.EncodeToString(sum[:4])
}

// anonymousIDFor resolves the pseudonym through a small cache so repeat
// bidders do not pay the HMAC on every bid.
func (s *AuctionService) anonymousIDFor(a *entity.Auction, bidderID string) string {
	key := a.ID + "/" + bidderID

	if cached, ok := s.anonIDs.Get(key); ok {
		return cached.(string)
	}

	salt := a.AnonymitySalt
	if salt == "" {
		salt = a.ID
	}

	id := anonymousBidderID(salt, a.ID, bidderID)
	s.anonIDs.Set(key, id, cache.DefaultExpiration)

	return id
}
