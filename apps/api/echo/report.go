package echoapi

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/report"
)

// ExportFilename is the attachment name of the exported workbook.
const ExportFilename = "school-report.xlsx"

type reportAPI struct {
	svc *report.Service
}

func registerReportAPI(g *echo.Group, svc *report.Service) {
	api := reportAPI{svc: svc}

	g.GET("/dashboard", api.dashboard)
	rg := g.Group("/reports")
	rg.GET("/overview", api.overview)
	rg.GET("/export", api.export)
}

func (api *reportAPI) dashboard(ctx echo.Context) error {
	d, err := api.svc.Dashboard(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading dashboard")
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *reportAPI) overview(ctx echo.Context) error {
	ov, err := api.svc.Overview(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading overview")
	}
	return ctx.JSON(http.StatusOK, ov)
}

func (api *reportAPI) export(ctx echo.Context) error {
	buf := new(bytes.Buffer)
	if err := api.svc.Export(ctx.Request().Context(), buf); err != nil {
		return errors.Wrap(err, "exporting report")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+ExportFilename+`"`)
	return ctx.Blob(http.StatusOK, report.ContentTypeXLSX, buf.Bytes())
}
