package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studytrack/core/profile"
)

type profileApi struct {
	svc *profile.Service
}

func registerProfileAPI(g *echo.Group, svc *profile.Service) {
	api := profileApi{svc: svc}

	g.GET("/profile", api.retrieve)
	g.PUT("/profile", api.update)
}

func (api *profileApi) retrieve(ctx echo.Context) error {
	tnt, err := tenant(ctx)
	if err != nil {
		return err
	}
	p, err := api.svc.Get(ctx.Request().Context(), tnt)
	if err != nil {
		return errors.Wrap(err, "getting profile")
	}
	return ctx.JSON(http.StatusOK, profileResponse{Profile: p})
}

func (api *profileApi) update(ctx echo.Context) error {
	tnt, err := tenant(ctx)
	if err != nil {
		return err
	}
	var data profile.UpdateProfile
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfile")
	}

	p, err := api.svc.Update(ctx.Request().Context(), tnt, data)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	return ctx.JSON(http.StatusOK, profileResponse{Profile: p})
}
