package auction

import (
	"time"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/entity"
)

// applySoftClose extends the auction end when a bid lands inside the
// soft-close window. The end time only ever grows; every in-window bid
// pushes it out again, so the auction finalizes only after a quiet period
// of at least the window length. Reports whether an extension happened.
func applySoftClose(a *entity.Auction, now time.Time, window, extension time.Duration) bool {
	if a.EndTime.Sub(now) > window {
		return false
	}

	newEnd := now.Add(extension)
	if !newEnd.After(a.EndTime) {
		return false
	}

	a.EndTime = newEnd
	a.SoftCloseActive = true

	return true
}
