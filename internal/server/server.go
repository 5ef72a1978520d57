// Package server exposes the statement parsers over HTTP: upload a PDF,
// process it into transactions, and export the result as CSV or Excel.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"spendsense/statement-csv/internal/common"
	"spendsense/statement-csv/internal/excel"
	"spendsense/statement-csv/internal/logging"
	"spendsense/statement-csv/internal/models"
	"spendsense/statement-csv/internal/pdfextract"
	"spendsense/statement-csv/internal/stats"
	"spendsense/statement-csv/internal/unifiedparser"
)

// maxUploadBytes caps multipart uploads at 50 MiB.
const maxUploadBytes = 50 << 20

// session holds the parsed result of one uploaded statement.
type session struct {
	Transactions []models.Transaction
	Format       models.FormatType
	ProcessedAt  time.Time
}

// Server routes statement uploads through the unified parser and keeps
// per-upload results in memory until export.
type Server struct {
	log       logging.Logger
	extractor pdfextract.Extractor
	uploadDir string
	exportDir string

	mu       sync.RWMutex
	sessions map[string]*session
}

// Option configures a Server.
type Option func(*Server)

// WithExtractor overrides the PDF extractor, mainly for tests.
func WithExtractor(extractor pdfextract.Extractor) Option {
	return func(s *Server) {
		s.extractor = extractor
	}
}

// New creates a Server that stores uploads and exports under the given
// directories, creating them if needed.
func New(logger logging.Logger, uploadDir, exportDir string, opts ...Option) (*Server, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	for _, dir := range []string{uploadDir, exportDir} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}
	s := &Server{
		log:       logger,
		extractor: pdfextract.DefaultExtractor(),
		uploadDir: uploadDir,
		exportDir: exportDir,
		sessions:  make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Router builds the HTTP routing table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.HandleFunc("/api/upload", s.handleUpload).Methods("POST")
	router.HandleFunc("/api/process/{session_id}", s.handleProcess).Methods("POST")
	router.HandleFunc("/api/export/{session_id}", s.handleExport).Methods("POST")
	router.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	// Preflight requests match here so the CORS middleware can answer them.
	router.PathPrefix("/api/").Methods(http.MethodOptions).HandlerFunc(
		func(http.ResponseWriter, *http.Request) {})
	return router
}

// CleanupOldFiles removes upload and export files older than maxAge.
// Called once on startup so stale sessions do not accumulate on disk.
func (s *Server) CleanupOldFiles(maxAge time.Duration) {
	cutoff := time.Now().Add(-maxAge)
	for _, dir := range []string{s.uploadDir, s.exportDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.log.WithError(err).Warn("Failed to scan directory for cleanup")
			continue
		}
		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil || info.IsDir() {
				continue
			}
			if info.ModTime().Before(cutoff) {
				path := filepath.Join(dir, entry.Name())
				if err := os.Remove(path); err != nil {
					s.log.WithError(err).Warn("Failed to remove stale file",
						logging.Field{Key: logging.FieldFile, Value: path})
				}
			}
		}
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.log.WithError(err).Warn("Failed to close uploaded file")
		}
	}()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}

	sessionID := uuid.New().String()
	destPath := filepath.Join(s.uploadDir, sessionID+"_"+filepath.Base(header.Filename))

	dest, err := os.Create(destPath)
	if err != nil {
		s.log.WithError(err).Error("Failed to create upload file")
		writeError(w, http.StatusInternalServerError, "Failed to save file")
		return
	}
	if _, err := io.Copy(dest, file); err != nil {
		_ = dest.Close()
		_ = os.Remove(destPath)
		writeError(w, http.StatusInternalServerError, "Failed to save file")
		return
	}
	if err := dest.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save file")
		return
	}

	s.log.Info("Uploaded statement",
		logging.Field{Key: logging.FieldSessionID, Value: sessionID},
		logging.Field{Key: logging.FieldFile, Value: header.Filename})

	writeJSON(w, http.StatusOK, map[string]string{
		"session_id": sessionID,
		"filename":   header.Filename,
		"message":    "File uploaded successfully",
	})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["session_id"]
	if _, err := uuid.Parse(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	matches, err := filepath.Glob(filepath.Join(s.uploadDir, sessionID+"_*.pdf"))
	if err != nil || len(matches) == 0 {
		writeError(w, http.StatusNotFound, "PDF file not found for this session")
		return
	}
	pdfPath := matches[0]

	transactions, format := unifiedparser.ParseFile(pdfPath, s.extractor, pdfextract.DefaultYTolerance)
	if len(transactions) == 0 {
		writeError(w, http.StatusBadRequest, "Could not parse PDF. Please check the file format.")
		return
	}

	s.mu.Lock()
	s.sessions[sessionID] = &session{
		Transactions: transactions,
		Format:       format,
		ProcessedAt:  time.Now().UTC(),
	}
	s.mu.Unlock()

	summary := stats.Compute(transactions, format)

	s.log.Info("Processed statement",
		logging.Field{Key: logging.FieldSessionID, Value: sessionID},
		logging.Field{Key: logging.FieldFormat, Value: string(format)},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	writeJSON(w, http.StatusOK, processResponse{
		SessionID:        sessionID,
		FormatType:       string(format),
		TotalAmount:      summary.TotalAmount.InexactFloat64(),
		TransactionCount: summary.TransactionCount,
		Totals:           totalsJSON(summary),
		DateRange: dateRange{
			MinDate: summary.MinDate,
			MaxDate: summary.MaxDate,
		},
		Transactions: transactionsJSON(transactions),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["session_id"]

	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found or expired")
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	exportType := r.FormValue("export_type")
	includeSummary := r.FormValue("include_summary") != "false"

	switch exportType {
	case "excel":
		exportPath := filepath.Join(s.exportDir, sessionID+"_export.xlsx")
		if err := excel.WriteTransactions(sess.Transactions, exportPath, sess.Format, includeSummary); err != nil {
			s.log.WithError(err).Error("Excel export failed")
			writeError(w, http.StatusInternalServerError, "Failed to export data")
			return
		}
		serveFile(w, r, exportPath,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			fmt.Sprintf("spendsense_export_%s.xlsx", sessionID))
	case "csv":
		exportPath := filepath.Join(s.exportDir, sessionID+"_export.csv")
		if err := common.WriteTransactionsToCSV(sess.Transactions, exportPath); err != nil {
			s.log.WithError(err).Error("CSV export failed")
			writeError(w, http.StatusInternalServerError, "Failed to export data")
			return
		}
		serveFile(w, r, exportPath, "text/csv",
			fmt.Sprintf("spendsense_export_%s.csv", sessionID))
	default:
		writeError(w, http.StatusBadRequest, "Invalid export type. Use 'excel' or 'csv'")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "SpendSense Web API",
	})
}

func serveFile(w http.ResponseWriter, r *http.Request, path, contentType, downloadName string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	http.ServeFile(w, r, path)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
