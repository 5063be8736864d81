package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studytrack/core/subject"
)

type subjectApi struct {
	svc *subject.Service
}

func registerSubjectAPI(g *echo.Group, svc *subject.Service) {
	api := subjectApi{svc: svc}

	g.GET("", api.query)
	g.POST("", api.create)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

func (api *subjectApi) query(ctx echo.Context) error {
	tnt, err := tenant(ctx)
	if err != nil {
		return err
	}
	subjs, err := api.svc.List(ctx.Request().Context(), tnt)
	if err != nil {
		return errors.Wrap(err, "listing subjects")
	}
	if subjs == nil {
		subjs = []subject.Subject{}
	}
	return ctx.JSON(http.StatusOK, subjectsResponse{Subjects: subjs})
}

func (api *subjectApi) create(ctx echo.Context) error {
	tnt, err := tenant(ctx)
	if err != nil {
		return err
	}
	var data subject.NewSubject
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}

	subj, err := api.svc.Create(ctx.Request().Context(), tnt, data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusOK, subjectResponse{Subject: subj})
}

func (api *subjectApi) update(ctx echo.Context) error {
	tnt, err := tenant(ctx)
	if err != nil {
		return err
	}
	var data subject.UpdateSubject
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubject")
	}

	subj, err := api.svc.Update(ctx.Request().Context(), tnt, ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating subject")
	}
	return ctx.JSON(http.StatusOK, subjectResponse{Subject: subj})
}

func (api *subjectApi) destroy(ctx echo.Context) error {
	tnt, err := tenant(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), tnt, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	return ctx.JSON(http.StatusOK, successResponse{Success: true})
}
