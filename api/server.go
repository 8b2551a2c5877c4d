// Package api provides HTTP API capabilities for the hisaab engine.
// This is a capability module that can be enabled via the CLI or used
// programmatically.
package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/hisaabkit/hisaab/engine"
	"github.com/hisaabkit/hisaab/engine/common"
)

// Config holds the API server configuration
type Config struct {
	Port      string
	LogPrefix string
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	return Config{
		Port:      ":8080",
		LogPrefix: "API: ",
	}
}

// Server represents the HTTP API server
type Server struct {
	config Config
	mux    *http.ServeMux
}

// New creates a new API server with the given configuration
func New(cfg Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/extract", s.handleExtract)
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the http.Handler for the server.
// This allows the server to be used with custom http.Server configurations.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	log.Printf("%sStarting server on %s", s.config.LogPrefix, s.config.Port)
	return http.ListenAndServe(s.config.Port, s.mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleExtract accepts OCR text (raw body or multipart file upload) and
// returns the extracted records as JSON.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	log.Printf("%sReceived request from %s", s.config.LogPrefix, r.RemoteAddr)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	text, source, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(text) == "" {
		http.Error(w, "Empty document", http.StatusBadRequest)
		return
	}

	docType := r.FormValue("doc_type")
	if docType == "" {
		docType = r.URL.Query().Get("doc_type")
	}
	transactionsOnly := r.FormValue("transactions_only") == "true" || r.URL.Query().Get("transactions_only") == "true"
	summaryOnly := r.FormValue("summary_only") == "true" || r.URL.Query().Get("summary_only") == "true"

	result := engine.Process(source, text, docType)
	finalOutput := engine.CreateFinalOutput(result, transactionsOnly, summaryOnly)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(finalOutput)
}

// readDocument pulls the document text out of the request: a multipart
// "file" field (text dump or text-based PDF) or the raw request body.
func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (text, source string, ok bool) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "Could not parse multipart form: "+err.Error(), http.StatusBadRequest)
			return "", "", false
		}
		file, handler, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "Could not get uploaded file: "+err.Error(), http.StatusBadRequest)
			return "", "", false
		}
		defer file.Close()

		if strings.HasSuffix(strings.ToLower(handler.Filename), ".pdf") {
			rows, err := common.RowsFromPDFReader(file)
			if err != nil || len(rows) < 1 {
				http.Error(w, "Could not extract text from file", http.StatusBadRequest)
				return "", "", false
			}
			return strings.Join(rows, "\n"), handler.Filename, true
		}

		b, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "Could not read uploaded file: "+err.Error(), http.StatusBadRequest)
			return "", "", false
		}
		return string(b), handler.Filename, true
	}

	b, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Could not read request body: "+err.Error(), http.StatusBadRequest)
		return "", "", false
	}
	return string(b), "upload", true
}
