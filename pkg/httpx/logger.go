package httpx

import "github.com/Silvador/romanian-forest-auction-sub000/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
