package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/report"
)

var errClassNotFoundInCtx = errors.New("class object not found in echo.Context")

type (
	classAPI struct {
		svc      *class.Service
		reports  *report.Service
		validate *validator.Validate
	}

	// ToggleStudentRequest selects or deselects one student on a class form.
	ToggleStudentRequest struct {
		Form      class.Form `json:"form"`
		StudentID int        `json:"student_id" validate:"required,min=1"`
	}
)

func registerClassAPI(g *echo.Group, svc *class.Service, reports *report.Service, validate *validator.Validate) {
	api := classAPI{svc: svc, reports: reports, validate: validate}

	cg := g.Group("/classes")
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.GET("/subjects", api.querySubjects)
	cg.GET("/form", api.newForm)
	cg.POST("/form/toggle-student", api.toggleStudent)

	// detail endpoints
	dg := cg.Group("/:id", objectMiddleware(func(ctx context.Context, id int) (interface{}, error) {
		return svc.GetByID(ctx, id)
	}))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/form", api.editForm)
	dg.GET("/roster", api.roster)
}

func contextClass(ctx echo.Context) (class.Class, error) {
	c, ok := ctx.Get(contextObjectKey).(class.Class)
	if !ok {
		return class.Class{}, errors.Wrap(errClassNotFoundInCtx, "retrieving object from context")
	}
	return c, nil
}

func (api *classAPI) bindPayload(ctx echo.Context) (class.Payload, error) {
	var form class.Form
	if err := ctx.Bind(&form); err != nil {
		return class.Payload{}, errors.Wrap(err, "binding to class.Form")
	}
	data, err := form.ToPayload()
	if err != nil {
		return class.Payload{}, err
	}
	if err := data.Validate(api.validate); err != nil {
		return class.Payload{}, err
	}
	return data, nil
}

// Handlers

func (api *classAPI) query(ctx echo.Context) error {
	filter := new(class.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []class.Class{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	classes, err := api.svc.Query(ctx.Request().Context(), *filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classAPI) querySubjects(ctx echo.Context) error {
	subjects, err := api.svc.Subjects(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *classAPI) create(ctx echo.Context) error {
	data, err := api.bindPayload(ctx)
	if err != nil {
		return err
	}
	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	if c == nil {
		return errNotSaved("class")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *classAPI) newForm(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, class.NewForm())
}

func (api *classAPI) toggleStudent(ctx echo.Context) error {
	var req ToggleStudentRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to ToggleStudentRequest")
	}
	if err := api.validate.Struct(req); err != nil {
		return err
	}
	form := req.Form
	form.ToggleStudent(req.StudentID)
	return ctx.JSON(http.StatusOK, form)
}

func (api *classAPI) retrieve(ctx echo.Context) error {
	c, err := contextClass(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *classAPI) editForm(ctx echo.Context) error {
	c, err := contextClass(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, class.ToForm(&c))
}

func (api *classAPI) roster(ctx echo.Context) error {
	c, err := contextClass(ctx)
	if err != nil {
		return err
	}
	roster, err := api.reports.Roster(ctx.Request().Context(), c.ID)
	if err != nil {
		return errors.Wrap(err, "loading roster")
	}
	return ctx.JSON(http.StatusOK, roster)
}

func (api *classAPI) update(ctx echo.Context) error {
	c, err := contextClass(ctx)
	if err != nil {
		return err
	}
	data, err := api.bindPayload(ctx)
	if err != nil {
		return err
	}
	updated, err := api.svc.Update(ctx.Request().Context(), c.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating class")
	}
	if updated == nil {
		return errNotSaved("class")
	}
	return ctx.JSON(http.StatusOK, updated)
}

func (api *classAPI) destroy(ctx echo.Context) error {
	c, err := contextClass(ctx)
	if err != nil {
		return err
	}
	ok, err := api.svc.Delete(ctx.Request().Context(), c.ID)
	if err != nil {
		return errors.Wrap(err, "deleting class")
	}
	if !ok {
		return errNotDeleted("class")
	}
	return ctx.NoContent(http.StatusNoContent)
}
