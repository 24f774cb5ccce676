package http

import (
	"bytes"
	"net/http"

	"github.com/geoattend/geoattend-backend-go/internal/domain/report"
	"github.com/geoattend/geoattend-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
	ExportXLSX(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func reportRequestFromURL(r *http.Request) report.ReportRequest {
	return report.ReportRequest{
		Type:  report.Type(chi.URLParam(r, "type")),
		Date:  r.URL.Query().Get("date"),
		Month: r.URL.Query().Get("month"),
	}
}

func reportFilename(req report.ReportRequest, ext string) string {
	name := "report_" + string(req.Type)
	switch {
	case req.Type.DayScoped() && req.Date != "":
		name += "_" + req.Date
	case !req.Type.DayScoped() && req.Month != "":
		name += "_" + req.Month
	}
	return name + ext
}

// Generate implements ReportHandler.
func (h *reportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	req := reportRequestFromURL(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportCSV implements ReportHandler.
func (h *reportHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	req := reportRequestFromURL(r)

	var buf bytes.Buffer
	if err := h.reportService.ExportCSV(r.Context(), req, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	writeDownload(w, "text/csv; charset=utf-8", reportFilename(req, ".csv"), buf.Bytes())
}

// ExportXLSX implements ReportHandler.
func (h *reportHandlerImpl) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	req := reportRequestFromURL(r)

	var buf bytes.Buffer
	if err := h.reportService.ExportXLSX(r.Context(), req, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	writeDownload(w, xlsxContentType, reportFilename(req, ".xlsx"), buf.Bytes())
}
