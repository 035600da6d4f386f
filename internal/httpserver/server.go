package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/khrees2412/hirematch/internal/criteria"
	"github.com/khrees2412/hirematch/internal/search"
	"github.com/khrees2412/hirematch/pkg/models"
)

const maxBodyBytes = 1 << 20

// Store is the read side of the repository the handlers need.
type Store interface {
	GetCandidate(ctx context.Context, id string) (*models.Candidate, error)
	GetJob(ctx context.Context, id int) (*models.Job, error)
}

// Server holds the handler dependencies.
type Server struct {
	Search *search.Service
	Store  Store
	Logger *zap.Logger
	// RateLimitPerMin caps search requests per client IP. Zero disables it.
	RateLimitPerMin int
}

// New returns a Server. A nil logger discards logs.
func New(svc *search.Service, store Store, logger *zap.Logger, rateLimitPerMin int) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Search: svc, Store: store, Logger: logger, RateLimitPerMin: rateLimitPerMin}
}

// Router constructs the HTTP handler with all middlewares and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID())
	r.Use(Recoverer(s.Logger))
	r.Use(AccessLog(s.Logger))

	r.Group(func(wr chi.Router) {
		if s.RateLimitPerMin > 0 {
			wr.Use(httprate.Limit(s.RateLimitPerMin, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
					writeError(w, fmt.Errorf("too many search requests: %w", models.ErrRateLimited), nil)
				}),
			))
		}
		wr.Post("/v1/search", s.SearchHandler())
	})

	r.Get("/v1/candidates/{id}", s.CandidateHandler())
	r.Get("/v1/jobs/{id}", s.JobHandler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.Logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// SearchHandler ranks candidates. The body is a filter payload; jobId, limit,
// offset and includeInactive are read from the same object.
func (s *Server) SearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, fmt.Errorf("invalid JSON body: %w", models.ErrInvalidArgument), err.Error())
			return
		}

		req, err := searchRequest(body)
		if err != nil {
			writeError(w, err, nil)
			return
		}

		resp, err := s.Search.Search(r.Context(), req)
		if err != nil {
			s.Logger.Warn("search failed", zap.Error(err), zap.String("request_id", requestIDFrom(r.Context())))
			writeError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) CandidateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := s.Store.GetCandidate(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func (s *Server) JobHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, fmt.Errorf("job id must be an integer: %w", models.ErrInvalidArgument), nil)
			return
		}
		job, err := s.Store.GetJob(r.Context(), id)
		if err != nil {
			writeError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, job)
	}
}

// searchRequest splits the paging keys off the body. Everything else is
// passed through as filters.
func searchRequest(body map[string]any) (search.Request, error) {
	req := search.Request{Filters: criteria.RawFilterInput{}}

	for k, v := range body {
		var err error
		switch k {
		case "jobId":
			req.JobID, err = cast.ToIntE(v)
		case "limit":
			req.Limit, err = cast.ToIntE(v)
		case "offset":
			req.Offset, err = cast.ToIntE(v)
		case "includeInactive":
			req.IncludeInactive, err = cast.ToBoolE(v)
		default:
			req.Filters[k] = v
		}
		if err != nil {
			return req, fmt.Errorf("%s: %w", k, models.ErrInvalidArgument)
		}
	}

	return req, nil
}
