package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/hazyhaar/adei/pkg/analytics"
)

// NewRouter returns an http.Handler with all ADEI API routes.
func NewRouter(a *analytics.Analytics) http.Handler {
	mux := http.NewServeMux()
	h := &handler{ep: newEndpoints(a), analytics: a}

	mux.HandleFunc("GET /v1/health", h.handleHealth)
	mux.HandleFunc("GET /v1/leaderboard", h.get(h.ep.leaderboard))
	mux.HandleFunc("GET /v1/pillars/averages", h.get(h.ep.pillarAverages))
	mux.HandleFunc("GET /v1/pillars/{pillar}/ranking", h.handlePillarRanking)
	mux.HandleFunc("GET /v1/countries", h.get(h.ep.countries))
	mux.HandleFunc("GET /v1/countries/{name}", h.handleProfile)
	mux.HandleFunc("GET /v1/countries/{name}/extremes", h.handleExtremes)
	mux.HandleFunc("GET /v1/countries/{name}/peers", h.handlePeers)
	mux.HandleFunc("GET /v1/compare", h.handleCompare)
	mux.HandleFunc("GET /v1/correlations", h.get(h.ep.correlations))
	mux.HandleFunc("GET /v1/stats", h.get(h.ep.stats))
	mux.HandleFunc("GET /v1/regions", h.get(h.ep.regions))
	mux.HandleFunc("GET /v1/rankings", h.get(h.ep.rankings))
	mux.HandleFunc("GET /v1/map", h.get(h.ep.mapData))

	return cors(mux)
}

type handler struct {
	ep        *endpoints
	analytics *analytics.Analytics
}

// get adapts a request-less endpoint to an http.HandlerFunc.
func (h *handler) get(ep endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := ep(r.Context(), nil)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing country name")
		return
	}
	resp, err := h.ep.profile(r.Context(), &countryReq{Name: name})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p, ok := resp.(*analytics.Profile); ok && p.Main == nil {
		writeError(w, http.StatusNotFound, "unknown country: "+name)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleExtremes(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing country name")
		return
	}
	topN := 0
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "top must be an integer")
			return
		}
		topN = n
	}
	resp, err := h.ep.extremes(r.Context(), &extremesReq{Name: name, TopN: topN})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handlePeers(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing country name")
		return
	}
	resp, err := h.ep.peers(r.Context(), &countryReq{Name: name})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	names := splitList(r.URL.Query().Get("countries"))
	resp, err := h.ep.compare(r.Context(), &compareReq{Names: names})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handlePillarRanking(w http.ResponseWriter, r *http.Request) {
	label := r.PathValue("pillar")
	if _, err := resolvePillar(label); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	resp, err := h.ep.pillarRanking(r.Context(), &rankingReq{Pillar: label})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type healthResponse struct {
	Status    string `json:"status"`
	Countries int    `json:"countries"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	names, err := h.analytics.CountryList()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Countries: len(names)})
}

// --- helpers ---

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// cors is a simple CORS middleware for the dashboard client.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
