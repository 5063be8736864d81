package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studytrack/core/analytics"
)

type analyticsApi struct {
	svc *analytics.Service
}

func registerAnalyticsAPI(g *echo.Group, svc *analytics.Service) {
	api := analyticsApi{svc: svc}

	g.GET("", api.retrieve)
}

// retrieve aggregates the snapshot on every request.
func (api *analyticsApi) retrieve(ctx echo.Context) error {
	tnt, err := tenant(ctx)
	if err != nil {
		return err
	}
	snap, err := api.svc.Snapshot(ctx.Request().Context(), tnt)
	if err != nil {
		return errors.Wrap(err, "aggregating analytics")
	}
	return ctx.JSON(http.StatusOK, snap)
}
