package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinIncrement(t *testing.T) {
	rq := require.New(t)

	rq.Equal("10", MinIncrement(SpeciesOak).String())
	rq.Equal("5", MinIncrement(SpeciesBeech).String())
	rq.Equal("5", MinIncrement(SpeciesMixed).String())
	rq.Equal("3", MinIncrement(SpeciesPine).String())

	rq.True(MinIncrement("walnut").Equal(DefaultMinIncrement))
	rq.True(MinIncrement("").Equal(DefaultMinIncrement))
}
