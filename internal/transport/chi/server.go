// Package chi implements the HTTP API on the chi router.
package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dishcovery/internal/domain"
	"github.com/kailas-cloud/dishcovery/internal/domain/geo"
	"github.com/kailas-cloud/dishcovery/internal/domain/search/filter"
	"github.com/kailas-cloud/dishcovery/internal/domain/search/page"
	discoveryuc "github.com/kailas-cloud/dishcovery/internal/usecase/discovery"
	healthuc "github.com/kailas-cloud/dishcovery/internal/usecase/health"
)

// DefaultMaxImageBytes caps multipart image uploads when the server is
// configured with zero.
const DefaultMaxImageBytes = 10 << 20

// Server exposes the discovery pipelines over HTTP.
type Server struct {
	discovery     *discoveryuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	maxImageBytes int64
}

// NewServer creates an HTTP API server.
func NewServer(
	discovery *discoveryuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
	maxImageBytes int64,
) *Server {
	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}
	return &Server{
		discovery:     discovery,
		health:        health,
		logger:        logger,
		maxImageBytes: maxImageBytes,
	}
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/restaurants-by-cuisine", s.SearchByCuisine)
	r.Get("/restaurant/{id}", s.GetRestaurant)
	r.Post("/api/analyze-image", s.AnalyzeImage)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// searchPageResponse is the text search response body.
type searchPageResponse struct {
	TotalResults int                       `json:"total_results"`
	CurrentPage  int                       `json:"current_page"`
	TotalPages   int                       `json:"total_pages"`
	Data         []domain.RestaurantRecord `json:"data"`
}

// imageSearchResponse is the image search response body.
type imageSearchResponse struct {
	Success     bool                      `json:"success"`
	SearchTags  []string                  `json:"searchTags,omitempty"`
	Result      []domain.RestaurantRecord `json:"result,omitempty"`
	TotalPages  int                       `json:"totalPages,omitempty"`
	CurrentPage int                       `json:"currentPage,omitempty"`
	Message     string                    `json:"message,omitempty"`
}

// SearchByCuisine handles GET /restaurants-by-cuisine.
func (s *Server) SearchByCuisine(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("cuisine") == "" {
		writeMessage(w, http.StatusBadRequest, "Cuisine query parameter is required.")
		return
	}

	spec, err := filter.Parse(q.Get("priceRange"), q.Get("rating"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid filter parameters")
		return
	}

	if !validCoordinates(q.Get("latitude"), q.Get("longitude")) {
		writeMessage(w, http.StatusBadRequest, "Invalid location parameters")
		return
	}

	query := discoveryuc.Query{
		Cuisine:       q.Get("cuisine"),
		Filter:        spec,
		Page:          parseIntDefault(q.Get("page"), 1),
		PageSize:      parseIntDefault(q.Get("limit"), 0),
		Latitude:      q.Get("latitude"),
		Longitude:     q.Get("longitude"),
		MaxDistanceKm: parseFloatDefault(q.Get("maxDistance"), 0),
	}

	result, err := s.discovery.SearchByCuisine(r.Context(), query)
	if err != nil {
		s.handleSearchError(w, err)
		return
	}

	if result.IsEmpty() {
		writeMessage(w, http.StatusNotFound, result.NoResultsReason())
		return
	}

	writeJSON(w, http.StatusOK, pageToResponse(result))
}

// GetRestaurant handles GET /restaurant/{id}. Responds with the full
// stored document, passthrough fields included.
func (s *Server) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.discovery.FindRestaurant(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRestaurantNotFound) {
			writeMessage(w, http.StatusNotFound, "Restaurant not found")
			return
		}
		s.logger.Error("restaurant lookup failed", zap.String("id", id), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rec.Raw)
}

// AnalyzeImage handles POST /api/analyze-image. Filters are parsed
// before the upload is read so bad parameters fail fast.
func (s *Server) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	spec, err := filter.Parse(q.Get("priceRange"), q.Get("rating"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, imageSearchResponse{
			Success: false,
			Message: "Invalid filter parameters",
		})
		return
	}

	if !validCoordinates(q.Get("latitude"), q.Get("longitude")) {
		writeJSON(w, http.StatusBadRequest, imageSearchResponse{
			Success: false,
			Message: "Invalid location parameters",
		})
		return
	}

	image, ok := s.readImage(w, r)
	if !ok {
		return
	}

	query := discoveryuc.Query{
		Filter:        spec,
		Page:          parseIntDefault(q.Get("page"), 1),
		PageSize:      parseIntDefault(q.Get("limit"), 0),
		Latitude:      q.Get("latitude"),
		Longitude:     q.Get("longitude"),
		MaxDistanceKm: parseFloatDefault(q.Get("maxDistance"), 0),
	}

	result, err := s.discovery.SearchByImage(r.Context(), image, query)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrClassifierUnavailable) {
			status = http.StatusBadGateway
		}
		s.logger.Error("image search failed", zap.Error(err))
		writeJSON(w, status, imageSearchResponse{
			Success: false,
			Message: "Image processing failed.",
		})
		return
	}

	if result.Page.IsEmpty() {
		writeJSON(w, http.StatusOK, imageSearchResponse{
			Success:    false,
			SearchTags: result.Tags,
			Message:    result.Page.NoResultsReason(),
		})
		return
	}

	writeJSON(w, http.StatusOK, imageSearchResponse{
		Success:     true,
		SearchTags:  result.Tags,
		Result:      result.Page.Items(),
		TotalPages:  result.Page.TotalPages(),
		CurrentPage: result.Page.CurrentPage(),
	})
}

// readImage extracts the uploaded image from the multipart form. The
// file stays in memory, never on disk. Returns false after writing an
// error response.
func (s *Server) readImage(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxImageBytes)

	file, _, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, imageSearchResponse{
			Success: false,
			Message: "No image uploaded.",
		})
		return nil, false
	}
	defer func() { _ = file.Close() }()

	image, err := io.ReadAll(file)
	if err != nil || len(image) == 0 {
		writeJSON(w, http.StatusBadRequest, imageSearchResponse{
			Success: false,
			Message: "No image uploaded.",
		})
		return nil, false
	}
	return image, true
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// handleSearchError maps pipeline errors onto HTTP statuses.
func (s *Server) handleSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNoSearchTags):
		writeMessage(w, http.StatusBadRequest, "Cuisine query parameter is required.")
	case errors.Is(err, domain.ErrInvalidFilter):
		writeMessage(w, http.StatusBadRequest, "Invalid filter parameters")
	default:
		s.logger.Error("search failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func pageToResponse(p page.Page) searchPageResponse {
	return searchPageResponse{
		TotalResults: p.TotalResults(),
		CurrentPage:  p.CurrentPage(),
		TotalPages:   p.TotalPages(),
		Data:         p.Items(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// validCoordinates rejects a numeric reference point outside the valid
// latitude/longitude ranges. Unparseable values pass through: they
// degrade to distance-unknown downstream, like records with bad
// coordinates.
func validCoordinates(lat, lon string) bool {
	if lat == "" || lon == "" {
		return true
	}
	la, errLat := strconv.ParseFloat(lat, 64)
	lo, errLon := strconv.ParseFloat(lon, 64)
	if errLat != nil || errLon != nil {
		return true
	}
	return geo.ValidateCoordinates(la, lo)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func parseFloatDefault(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}
