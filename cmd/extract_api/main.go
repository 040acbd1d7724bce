package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"marketplace-event-extractor/internal/config"
	"marketplace-event-extractor/internal/services"
)

// ExtractRequest is the POST body for an extraction request.
type ExtractRequest struct {
	URL string `json:"url"`
}

func main() {
	cfg := config.Parse()
	extractor := services.NewExtractor(cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/events/extract", handleExtract(extractor, cfg.MaxBodyBytes))
	mux.HandleFunc("/healthz", handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	log.Printf("Extract API listening on %s", addr)
	if err := http.ListenAndServe(addr, withCORS(mux)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// handleExtract serves both halves of the extract route: GET returns the
// capability descriptor, POST runs the pipeline. POST always answers 200
// with a draft body; failure travels in the draft's error field.
func handleExtract(extractor *services.Extractor, maxBodyBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			respondJSON(w, http.StatusOK, extractor.Capabilities())

		case http.MethodPost:
			var req ExtractRequest
			decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			if err := decoder.Decode(&req); err != nil {
				log.Printf("Invalid request body: %v", err)
				req.URL = ""
			}
			respondJSON(w, http.StatusOK, extractor.Extract(r.Context(), req.URL))

		default:
			respondJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		}
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response body: %v", err)
	}
}

// withCORS adds the permissive CORS headers the admin UI expects.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
