package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/teacher"
)

// Subject list edits
const (
	SubjectAdd    = "add"
	SubjectSet    = "set"
	SubjectRemove = "remove"
)

var errTeacherNotFoundInCtx = errors.New("teacher object not found in echo.Context")

type (
	teacherAPI struct {
		svc      *teacher.Service
		validate *validator.Validate
	}

	// SubjectEditRequest applies one edit to the subjects of a teacher form.
	SubjectEditRequest struct {
		Form  teacher.Form `json:"form"`
		Op    string       `json:"op" validate:"required,oneof=add set remove"`
		Index int          `json:"index"`
		Value string       `json:"value"`
	}
)

func registerTeacherAPI(g *echo.Group, svc *teacher.Service, validate *validator.Validate) {
	api := teacherAPI{svc: svc, validate: validate}

	tg := g.Group("/teachers")
	tg.GET("", api.query)
	tg.POST("", api.create)
	tg.GET("/departments", api.queryDepartments)
	tg.GET("/form", api.newForm)
	tg.POST("/form/subjects", api.editSubjects)

	// detail endpoints
	dg := tg.Group("/:id", objectMiddleware(func(ctx context.Context, id int) (interface{}, error) {
		return svc.GetByID(ctx, id)
	}))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/form", api.editForm)
}

func contextTeacher(ctx echo.Context) (teacher.Teacher, error) {
	t, ok := ctx.Get(contextObjectKey).(teacher.Teacher)
	if !ok {
		return teacher.Teacher{}, errors.Wrap(errTeacherNotFoundInCtx, "retrieving object from context")
	}
	return t, nil
}

func (api *teacherAPI) bindPayload(ctx echo.Context) (teacher.Payload, error) {
	var form teacher.Form
	if err := ctx.Bind(&form); err != nil {
		return teacher.Payload{}, errors.Wrap(err, "binding to teacher.Form")
	}
	data, err := form.ToPayload()
	if err != nil {
		return teacher.Payload{}, err
	}
	if err := data.Validate(api.validate); err != nil {
		return teacher.Payload{}, err
	}
	return data, nil
}

// Handlers

func (api *teacherAPI) query(ctx echo.Context) error {
	filter := new(teacher.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []teacher.Teacher{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	teachers, err := api.svc.Query(ctx.Request().Context(), *filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *teacherAPI) queryDepartments(ctx echo.Context) error {
	depts, err := api.svc.Departments(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying departments")
	}
	return ctx.JSON(http.StatusOK, depts)
}

func (api *teacherAPI) create(ctx echo.Context) error {
	data, err := api.bindPayload(ctx)
	if err != nil {
		return err
	}
	t, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	if t == nil {
		return errNotSaved("teacher")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *teacherAPI) newForm(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, teacher.NewForm())
}

func (api *teacherAPI) editSubjects(ctx echo.Context) error {
	var req SubjectEditRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to SubjectEditRequest")
	}
	if err := api.validate.Struct(req); err != nil {
		return err
	}

	form := req.Form
	if form.Subjects == nil {
		form.Subjects = []string{}
	}
	switch req.Op {
	case SubjectAdd:
		form.AddSubject()
	case SubjectSet:
		form.SetSubject(req.Index, req.Value)
	case SubjectRemove:
		form.RemoveSubject(req.Index)
	default:
		return core.NewValidationError(nil, core.FieldError{Field: "op", Error: "unknown subject edit"})
	}
	return ctx.JSON(http.StatusOK, form)
}

func (api *teacherAPI) retrieve(ctx echo.Context) error {
	t, err := contextTeacher(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teacherAPI) editForm(ctx echo.Context) error {
	t, err := contextTeacher(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, teacher.ToForm(&t))
}

func (api *teacherAPI) update(ctx echo.Context) error {
	t, err := contextTeacher(ctx)
	if err != nil {
		return err
	}
	data, err := api.bindPayload(ctx)
	if err != nil {
		return err
	}
	updated, err := api.svc.Update(ctx.Request().Context(), t.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	if updated == nil {
		return errNotSaved("teacher")
	}
	return ctx.JSON(http.StatusOK, updated)
}

func (api *teacherAPI) destroy(ctx echo.Context) error {
	t, err := contextTeacher(ctx)
	if err != nil {
		return err
	}
	ok, err := api.svc.Delete(ctx.Request().Context(), t.ID)
	if err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	if !ok {
		return errNotDeleted("teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}
