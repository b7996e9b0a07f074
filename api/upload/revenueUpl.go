package upload

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"RevenueTracker/api/constants"
	"RevenueTracker/internal/config"
	"RevenueTracker/internal/logger"
	"RevenueTracker/internal/revenue"
	"RevenueTracker/internal/store"
	"RevenueTracker/internal/tabular"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Preferred sheet names in the weekly workbooks. The locator falls back to
// scanning every sheet when these are renamed upstream.
const (
	engagementSheet  = "DATA ENG LIST"
	revenueDaysSheet = "RevenueDays"
)

// Handler: UploadWeeklyReports
// Accepts the weekly engagement list (required) and revenue-days report
// (optional) plus the reporting date, runs the reconciliation pipeline and
// atomically replaces the date's stored rows.
func UploadWeeklyReports(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "Failed to parse multipart form", http.StatusBadRequest)
			return
		}

		reportDate, err := parseReportDate(r.FormValue("report_date"))
		if err != nil {
			http.Error(w, constants.ErrInvalidReportDate, http.StatusBadRequest)
			return
		}

		engTable, err := locateUploadedTable(r, "engagement",
			revenue.EngagementRequiredColumns, engagementSheet)
		if err != nil {
			http.Error(w, uploadErrorMessage(err), http.StatusBadRequest)
			return
		}

		// Revenue-days file is optional; a week without it still imports.
		daysTable, err := locateUploadedTable(r, "revenue_days",
			revenue.RevenueDaysRequiredColumns, revenueDaysSheet)
		if err != nil && !errors.Is(err, errNoFile) {
			http.Error(w, uploadErrorMessage(err), http.StatusBadRequest)
			return
		}

		pipeline := revenue.NewPipeline()
		result, err := pipeline.Run(ctx, revenue.Input{
			Engagement:  engTable,
			RevenueDays: daysTable,
			ReportDate:  reportDate,
		}, &store.PgHistory{Pool: pgxPool})
		if err != nil {
			http.Error(w, uploadErrorMessage(err), http.StatusBadRequest)
			return
		}

		batchID := uuid.New().String()
		if err := ReplaceEntries(ctx, pgxPool, reportDate, batchID, result.Rows); err != nil {
			http.Error(w, "Failed to store data: "+err.Error(), http.StatusInternalServerError)
			return
		}

		for _, warning := range result.Warnings {
			if logger.GlobalLogger != nil {
				logger.GlobalLogger.LogAudit("[Upload] " + warning)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":        true,
			"batch_id":       batchID,
			"report_date":    reportDate.Format("2006-01-02"),
			"periodo_fiscal": result.Rows[0].PeriodoFiscal,
			"inserted":       len(result.Rows),
			"warnings":       result.Warnings,
			"degraded":       result.Degraded,
			"revenue_days":   result.PartnerRevenueDays,
		})
	}
}

// Handler: GetReportingDates
func GetReportingDates(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hist := &store.PgHistory{Pool: pgxPool}
		dates, err := hist.ReportingDates(r.Context())
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": err.Error()})
			return
		}
		out := make([]string, 0, len(dates))
		for _, d := range dates {
			out = append(out, d.Format("2006-01-02"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "dates": out})
	}
}

var errNoFile = errors.New("file not provided")

// uploadErrorMessage maps ingestion failures to the user-facing message
// constants so the upload API speaks one vocabulary.
func uploadErrorMessage(err error) string {
	var schemaErr *tabular.SchemaNotFoundError
	switch {
	case errors.Is(err, errNoFile):
		return constants.ErrNoFilesUploaded
	case errors.Is(err, tabular.ErrUnsupportedType):
		return constants.ErrUnsupportedFile
	case errors.Is(err, revenue.ErrEmptyTable):
		return constants.ErrEmptyEngagement
	case errors.Is(err, revenue.ErrMissingDate):
		return constants.ErrInvalidReportDate
	case errors.As(err, &schemaErr):
		return constants.ErrSchemaNotFound + ": " + schemaErr.Error()
	}
	return err.Error()
}

// parseReportDate accepts an explicit YYYY-MM-DD value; an empty value
// defaults to today in the practice's timezone.
func parseReportDate(v string) (time.Time, error) {
	if v != "" {
		return time.Parse("2006-01-02", v)
	}
	loc, err := time.LoadLocation(config.DefaultTimeZone)
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}

func locateUploadedTable(r *http.Request, field string, required []string, preferredSheet string) (*tabular.Table, error) {
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, errNoFile
	}
	file, err := files[0].Open()
	if err != nil {
		return nil, err
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	sheets, err := tabular.ParseWorkbook(file, files[0].Filename)
	if err != nil {
		return nil, err
	}
	return tabular.Locate(sheets, required, config.MaxHeaderScanRows, preferredSheet)
}
