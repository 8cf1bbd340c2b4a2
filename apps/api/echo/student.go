package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/student"
)

var errStudentNotFoundInCtx = errors.New("student object not found in echo.Context")

type studentAPI struct {
	svc      *student.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, svc *student.Service, validate *validator.Validate) {
	api := studentAPI{svc: svc, validate: validate}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.GET("/form", api.newForm)

	// detail endpoints
	dg := sg.Group("/:id", objectMiddleware(func(ctx context.Context, id int) (interface{}, error) {
		return svc.GetByID(ctx, id)
	}))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/form", api.editForm)
}

func contextStudent(ctx echo.Context) (student.Student, error) {
	s, ok := ctx.Get(contextObjectKey).(student.Student)
	if !ok {
		return student.Student{}, errors.Wrap(errStudentNotFoundInCtx, "retrieving object from context")
	}
	return s, nil
}

func (api *studentAPI) bindPayload(ctx echo.Context) (student.Payload, error) {
	var form student.Form
	if err := ctx.Bind(&form); err != nil {
		return student.Payload{}, errors.Wrap(err, "binding to student.Form")
	}
	data, err := form.ToPayload()
	if err != nil {
		return student.Payload{}, err
	}
	if err := data.Validate(api.validate); err != nil {
		return student.Payload{}, err
	}
	return data, nil
}

// Handlers

func (api *studentAPI) query(ctx echo.Context) error {
	filter := new(student.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []student.Student{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	students, err := api.svc.Query(ctx.Request().Context(), *filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentAPI) create(ctx echo.Context) error {
	data, err := api.bindPayload(ctx)
	if err != nil {
		return err
	}
	s, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	if s == nil {
		return errNotSaved("student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *studentAPI) newForm(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, student.NewForm())
}

func (api *studentAPI) retrieve(ctx echo.Context) error {
	s, err := contextStudent(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentAPI) editForm(ctx echo.Context) error {
	s, err := contextStudent(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, student.ToForm(&s))
}

func (api *studentAPI) update(ctx echo.Context) error {
	s, err := contextStudent(ctx)
	if err != nil {
		return err
	}
	data, err := api.bindPayload(ctx)
	if err != nil {
		return err
	}
	updated, err := api.svc.Update(ctx.Request().Context(), s.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	if updated == nil {
		return errNotSaved("student")
	}
	return ctx.JSON(http.StatusOK, updated)
}

func (api *studentAPI) destroy(ctx echo.Context) error {
	s, err := contextStudent(ctx)
	if err != nil {
		return err
	}
	ok, err := api.svc.Delete(ctx.Request().Context(), s.ID)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if !ok {
		return errNotDeleted("student")
	}
	return ctx.NoContent(http.StatusNoContent)
}
