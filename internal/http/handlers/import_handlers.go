package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khanhvo/retail-backoffice/internal/importer"
)

const (
	importQueueKey  = "import:queue"
	importJobPrefix = "import:job:"
	importJobTTL    = 24 * time.Hour
)

// importJob is the unit of work pushed onto the Redis queue by the async
// endpoint and popped by the worker.
type importJob struct {
	JobID    string `json:"job_id"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Format   string `json:"format"`
	Encoding string `json:"encoding"`
}

// importJobStatus is the record stored under import:job:<id>.
type importJobStatus struct {
	Status    string           `json:"status"` // queued, running, done, failed
	Filename  string           `json:"filename"`
	Result    *importer.Result `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	UpdatedAt string           `json:"updated_at"`
}

// ImportProductsHandler godoc
// @Summary Bulk-import the product catalog from a spreadsheet export
// @Description Replaces the entire catalog with the uploaded file's contents in a single transaction
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV or JSON export"
// @Param format query string false "File format: csv or json (default: by extension)"
// @Param encoding query string false "Input encoding: utf-8 or windows-1258"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Unreadable or invalid file"
// @Failure 409 {string} string "Duplicate SKU in import set"
// @Router /products/import [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing import file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	format := importFormat(r.URL.Query().Get("format"), header.Filename)
	encoding := r.URL.Query().Get("encoding")

	result, err := runImport(r.Context(), file, format, encoding)
	if err != nil {
		if errors.Is(err, importer.ErrDuplicateSKU) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		logger.Error("import failed", zap.String("file", header.Filename), zap.Error(err))
		http.Error(w, "import failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	invalidateCatalogCache()
	writeJSON(w, http.StatusOK, ImportProductsResult{
		Products:    result.Products,
		Variants:    result.Variants,
		Conversions: result.Conversions,
		SkippedRows: result.SkippedRows,
		Warnings:    result.Warnings,
	})
}

// ImportProductsAsyncHandler godoc
// @Summary Queue a bulk catalog import for background processing
// @Description Stages the upload on disk and enqueues a job; poll the job endpoint for the outcome
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV or JSON export"
// @Param format query string false "File format: csv or json (default: by extension)"
// @Param encoding query string false "Input encoding: utf-8 or windows-1258"
// @Success 202 {object} ImportJobResponse
// @Failure 400 {string} string "Unreadable file"
// @Failure 503 {string} string "Queue unavailable"
// @Router /products/import/async [post]
func ImportProductsAsyncHandler(w http.ResponseWriter, r *http.Request) {
	if Rdb == nil {
		http.Error(w, "import queue unavailable", http.StatusServiceUnavailable)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing import file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := os.MkdirAll(importDir, 0755); err != nil {
		http.Error(w, "could not stage import file", http.StatusInternalServerError)
		return
	}

	jobID := uuid.NewString()
	staged := filepath.Join(importDir, jobID+filepath.Ext(header.Filename))
	dst, err := os.Create(staged)
	if err != nil {
		http.Error(w, "could not stage import file", http.StatusInternalServerError)
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(staged)
		http.Error(w, "could not stage import file", http.StatusInternalServerError)
		return
	}
	dst.Close()

	job := importJob{
		JobID:    jobID,
		Path:     staged,
		Filename: header.Filename,
		Format:   importFormat(r.URL.Query().Get("format"), header.Filename),
		Encoding: r.URL.Query().Get("encoding"),
	}
	payload, err := json.Marshal(job)
	if err != nil {
		http.Error(w, "could not enqueue import", http.StatusInternalServerError)
		return
	}

	setImportJobStatus(r.Context(), jobID, importJobStatus{Status: "queued", Filename: header.Filename})
	if err := Rdb.LPush(r.Context(), importQueueKey, payload).Err(); err != nil {
		os.Remove(staged)
		logger.Error("failed to enqueue import job", zap.String("job_id", jobID), zap.Error(err))
		http.Error(w, "could not enqueue import", http.StatusServiceUnavailable)
		return
	}

	logger.Info("import job queued", zap.String("job_id", jobID), zap.String("file", header.Filename))
	writeJSON(w, http.StatusAccepted, ImportJobResponse{
		JobID:   jobID,
		Message: "import queued",
	})
}

// ImportJobStatusHandler godoc
// @Summary Get the status of a queued import job
// @Tags import
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} importJobStatus
// @Failure 404 {string} string "Unknown or expired job"
// @Router /products/import/jobs/{id} [get]
func ImportJobStatusHandler(w http.ResponseWriter, r *http.Request) {
	if Rdb == nil {
		http.Error(w, "import queue unavailable", http.StatusServiceUnavailable)
		return
	}

	jobID := chi.URLParam(r, "id")
	data, err := Rdb.Get(r.Context(), importJobPrefix+jobID).Result()
	if err == redis.Nil {
		http.Error(w, "unknown or expired job", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "could not fetch job status", http.StatusInternalServerError)
		return
	}

	var status importJobStatus
	if err := json.Unmarshal([]byte(data), &status); err != nil {
		http.Error(w, "could not fetch job status", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// StartImportWorker consumes queued import jobs until ctx is cancelled. It is
// meant to run as a goroutine next to the HTTP server.
func StartImportWorker(ctx context.Context) {
	if Rdb == nil {
		return
	}
	logger.Info("import worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("import worker stopped")
			return
		default:
		}

		values, err := Rdb.BLPop(ctx, 5*time.Second, importQueueKey).Result()
		if err == redis.Nil || errors.Is(err, context.Canceled) {
			continue
		}
		if err != nil {
			logger.Warn("import queue pop failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if len(values) < 2 {
			continue
		}

		var job importJob
		if err := json.Unmarshal([]byte(values[1]), &job); err != nil {
			logger.Error("discarding malformed import job", zap.Error(err))
			continue
		}
		processImportJob(ctx, job)
	}
}

func processImportJob(ctx context.Context, job importJob) {
	setImportJobStatus(ctx, job.JobID, importJobStatus{Status: "running", Filename: job.Filename})
	defer os.Remove(job.Path)

	f, err := os.Open(job.Path)
	if err != nil {
		failImportJob(ctx, job, fmt.Errorf("open staged file: %w", err))
		return
	}
	defer f.Close()

	result, err := runImport(ctx, f, job.Format, job.Encoding)
	if err != nil {
		failImportJob(ctx, job, err)
		return
	}

	invalidateCatalogCache()
	setImportJobStatus(ctx, job.JobID, importJobStatus{
		Status:   "done",
		Filename: job.Filename,
		Result:   &result,
	})
	logger.Info("import job done",
		zap.String("job_id", job.JobID),
		zap.Int("products", result.Products),
		zap.Int("variants", result.Variants))
}

func failImportJob(ctx context.Context, job importJob, err error) {
	logger.Error("import job failed", zap.String("job_id", job.JobID), zap.Error(err))
	setImportJobStatus(ctx, job.JobID, importJobStatus{
		Status:   "failed",
		Filename: job.Filename,
		Error:    err.Error(),
	})
}

func setImportJobStatus(ctx context.Context, jobID string, status importJobStatus) {
	if Rdb == nil {
		return
	}
	status.UpdatedAt = time.Now().Format(time.RFC3339)
	data, err := json.Marshal(status)
	if err != nil {
		return
	}
	if err := Rdb.Set(ctx, importJobPrefix+jobID, data, importJobTTL).Err(); err != nil {
		logger.Warn("failed to store job status", zap.String("job_id", jobID), zap.Error(err))
	}
}

// runImport drives the whole pipeline over one uploaded file: parse,
// normalize, then hand the rows to the transactional replace.
func runImport(ctx context.Context, r io.Reader, format, encoding string) (importer.Result, error) {
	var (
		sheet importer.Sheet
		err   error
	)
	switch format {
	case "json":
		sheet, err = importer.ReadJSON(r)
	default:
		if strings.EqualFold(encoding, "windows-1258") {
			sheet, err = importer.ReadCSVWindows1258(r)
		} else {
			sheet, err = importer.ReadCSV(r)
		}
	}
	if err != nil {
		return importer.Result{}, err
	}
	for _, h := range sheet.Unknown {
		logger.Warn("ignoring unknown import column", zap.String("header", h))
	}

	rows := importer.NormalizeAll(sheet)
	return importer.NewExecutor(importStore, logger).Run(ctx, rows)
}

func importFormat(explicit, filename string) string {
	if explicit != "" {
		return strings.ToLower(explicit)
	}
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return "json"
	}
	return "csv"
}
