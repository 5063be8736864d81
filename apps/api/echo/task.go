package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studytrack/core/task"
)

type taskApi struct {
	svc *task.Service
}

func registerTaskAPI(g *echo.Group, svc *task.Service) {
	api := taskApi{svc: svc}

	g.GET("", api.query)
	g.POST("", api.create)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

func (api *taskApi) query(ctx echo.Context) error {
	tnt, err := tenant(ctx)
	if err != nil {
		return err
	}
	tasks, err := api.svc.List(ctx.Request().Context(), tnt)
	if err != nil {
		return errors.Wrap(err, "listing tasks")
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return ctx.JSON(http.StatusOK, tasksResponse{Tasks: tasks})
}

func (api *taskApi) create(ctx echo.Context) error {
	tnt, err := tenant(ctx)
	if err != nil {
		return err
	}
	var data task.NewTask
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}

	t, err := api.svc.Create(ctx.Request().Context(), tnt, data)
	if err != nil {
		return errors.Wrap(err, "creating task")
	}
	return ctx.JSON(http.StatusOK, taskResponse{Task: t})
}

func (api *taskApi) update(ctx echo.Context) error {
	tnt, err := tenant(ctx)
	if err != nil {
		return err
	}
	var data task.UpdateTask
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTask")
	}

	t, err := api.svc.Update(ctx.Request().Context(), tnt, ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating task")
	}
	return ctx.JSON(http.StatusOK, taskResponse{Task: t})
}

func (api *taskApi) destroy(ctx echo.Context) error {
	tnt, err := tenant(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), tnt, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting task")
	}
	return ctx.JSON(http.StatusOK, successResponse{Success: true})
}
