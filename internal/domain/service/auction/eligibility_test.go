package auction

import (
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"github.com/Silvador/romanian-forest-auction-sub000/pkg/errcodes"
)

func TestCheckEligibility(t *testing.T) {
	rq := require.New(t)

	t.Run("newcomer is rejected", func(*testing.T) {
		err := checkEligibility(0)
		rq.Error(err)
		rq.True(failure.IsForbiddenError(err))
		rq.Equal(errcodes.BidderNotEligible, failure.Code(err))
	})

	t.Run("prior participant may raise", func(*testing.T) {
		rq.NoError(checkEligibility(1))
		rq.NoError(checkEligibility(7))
	})
}
