package report

import (
	"context"
	"io"
)

type ReportService interface {
	Generate(ctx context.Context, req ReportRequest) (Report, error)
	ExportCSV(ctx context.Context, req ReportRequest, w io.Writer) error
	ExportXLSX(ctx context.Context, req ReportRequest, w io.Writer) error
}
