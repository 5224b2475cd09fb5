package handler

import (
	"github.com/labstack/echo/v4"

	xhttp "MarketPulse/pkg/http"
)

// Root aggregates route groups into the single handler the server mounts.
type Root struct {
	groups []xhttp.Handler
}

var _ xhttp.Handler = (*Root)(nil)

// NewRoot combines handlers; nil entries are skipped.
func NewRoot(groups ...xhttp.Handler) *Root {
	r := &Root{}
	for _, g := range groups {
		if g != nil {
			r.groups = append(r.groups, g)
		}
	}
	return r
}

// RegisterRoutes registers every group's routes.
func (r *Root) RegisterRoutes(e *echo.Echo) {
	for _, g := range r.groups {
		g.RegisterRoutes(e)
	}
}
