package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"worldranks/internal/countries/browse"
	"worldranks/internal/countries/models"
	"worldranks/internal/countries/query"
	"worldranks/internal/countries/service"
	id "worldranks/pkg/domain"
	dErrors "worldranks/pkg/domain-errors"
	"worldranks/pkg/platform/httputil"
	"worldranks/pkg/requestcontext"
)

// Service defines the browse and detail operations the handler exposes.
type Service interface {
	CreateSession(ctx context.Context) (*service.BrowseResult, error)
	View(ctx context.Context, sessionID id.SessionID) (browse.View, error)
	SetSearchText(ctx context.Context, sessionID id.SessionID, text string) (browse.View, error)
	SetSortKey(ctx context.Context, sessionID id.SessionID, key query.SortKey) (browse.View, error)
	ToggleRegion(ctx context.Context, sessionID id.SessionID, region models.Region) (browse.View, error)
	SetStatusFlag(ctx context.Context, sessionID id.SessionID, status query.Status, value bool) (browse.View, error)
	GoToPage(ctx context.Context, sessionID id.SessionID, page int) (browse.View, error)
	Reset(ctx context.Context, sessionID id.SessionID) (browse.View, error)
	Refresh(ctx context.Context, sessionID id.SessionID) (*service.BrowseResult, error)
	EndSession(ctx context.Context, sessionID id.SessionID) error
	CountryDetail(ctx context.Context, code models.CCA3) (*models.CountryDetail, error)
}

// Handler wires the browse and country endpoints to the service.
type Handler struct {
	service      Service
	logger       *slog.Logger
	options      *OptionsResponse
	createLimits []func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithCreateLimiter guards session creation, the only endpoint that
// allocates server-side state.
func WithCreateLimiter(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		if mw != nil {
			h.createLimits = append(h.createLimits, mw)
		}
	}
}

// New constructs a handler with its dependencies.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Handler{
		service: service,
		logger:  logger,
		options: buildOptions(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/options", h.HandleOptions)
		r.Get("/countries/{cca3}", h.HandleCountryDetail)

		r.With(h.createLimits...).Post("/browse", h.HandleCreateSession)
		r.Route("/browse/{sessionID}", func(r chi.Router) {
			r.Get("/", h.HandleView)
			r.Delete("/", h.HandleEndSession)
			r.Put("/search", h.HandleSearch)
			r.Put("/sort", h.HandleSort)
			r.Post("/regions/{region}/toggle", h.HandleToggleRegion)
			r.Put("/status", h.HandleStatus)
			r.Put("/page", h.HandlePage)
			r.Post("/reset", h.HandleReset)
			r.Post("/refresh", h.HandleRefresh)
		})
	})
}

// HandleOptions handles GET /v1/options.
func (h *Handler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.options)
}

// HandleCreateSession handles POST /v1/browse.
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	res, err := h.service.CreateSession(ctx)
	if err != nil {
		h.logFailure(ctx, "browse session creation failed", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "browse session started",
		"request_id", requestID,
		"session_id", res.SessionID.String(),
		"client_ip", requestcontext.ClientIP(ctx),
		"client_kind", requestcontext.ClientKind(ctx),
		"duration_ms", h.elapsed(ctx).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromBrowseResult(res))
}

// HandleView handles GET /v1/browse/{sessionID}.
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(ctx context.Context, sid id.SessionID) (browse.View, error) {
		return h.service.View(ctx, sid)
	})
}

// HandleSearch handles PUT /v1/browse/{sessionID}/search.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[SearchRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.withSession(w, r, func(ctx context.Context, sid id.SessionID) (browse.View, error) {
		return h.service.SetSearchText(ctx, sid, req.Text)
	})
}

// HandleSort handles PUT /v1/browse/{sessionID}/sort.
func (h *Handler) HandleSort(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[SortRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.withSession(w, r, func(ctx context.Context, sid id.SessionID) (browse.View, error) {
		return h.service.SetSortKey(ctx, sid, req.ParsedKey())
	})
}

// HandleToggleRegion handles POST /v1/browse/{sessionID}/regions/{region}/toggle.
func (h *Handler) HandleToggleRegion(w http.ResponseWriter, r *http.Request) {
	region, err := models.ParseRegion(chi.URLParam(r, "region"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.withSession(w, r, func(ctx context.Context, sid id.SessionID) (browse.View, error) {
		return h.service.ToggleRegion(ctx, sid, region)
	})
}

// HandleStatus handles PUT /v1/browse/{sessionID}/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[StatusRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.withSession(w, r, func(ctx context.Context, sid id.SessionID) (browse.View, error) {
		return h.service.SetStatusFlag(ctx, sid, req.ParsedStatus(), *req.Value)
	})
}

// HandlePage handles PUT /v1/browse/{sessionID}/page.
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[PageRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.withSession(w, r, func(ctx context.Context, sid id.SessionID) (browse.View, error) {
		return h.service.GoToPage(ctx, sid, *req.Page)
	})
}

// HandleReset handles POST /v1/browse/{sessionID}/reset.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(ctx context.Context, sid id.SessionID) (browse.View, error) {
		return h.service.Reset(ctx, sid)
	})
}

// HandleRefresh handles POST /v1/browse/{sessionID}/refresh.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sid, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.service.Refresh(ctx, sid)
	if err != nil {
		h.logFailure(ctx, "browse session refresh failed", err,
			"request_id", requestID,
			"session_id", sid.String(),
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "browse session refreshed",
		"request_id", requestID,
		"session_id", sid.String(),
		"countries", res.View.RawCount,
		"duration_ms", h.elapsed(ctx).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromBrowseResult(res))
}

// HandleEndSession handles DELETE /v1/browse/{sessionID}.
func (h *Handler) HandleEndSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.EndSession(ctx, sid); err != nil {
		h.logFailure(ctx, "ending browse session failed", err,
			"request_id", requestcontext.RequestID(ctx),
			"session_id", sid.String(),
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCountryDetail handles GET /v1/countries/{cca3}.
func (h *Handler) HandleCountryDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	code, err := models.ParseCCA3(chi.URLParam(r, "cca3"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	detail, err := h.service.CountryDetail(ctx, code)
	if err != nil {
		h.logFailure(ctx, "country detail failed", err,
			"request_id", requestID,
			"cca3", code.String(),
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "country detail served",
		"request_id", requestID,
		"cca3", code.String(),
		"neighbours", len(detail.Neighbours),
		"duration_ms", h.elapsed(ctx).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromDetail(detail))
}

// withSession parses the session path parameter, runs op and writes the
// resulting view.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, op func(context.Context, id.SessionID) (browse.View, error)) {
	ctx := r.Context()
	sid, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	view, err := op(ctx, sid)
	if err != nil {
		h.logFailure(ctx, "browse operation failed", err,
			"request_id", requestcontext.RequestID(ctx),
			"session_id", sid.String(),
			"path", r.URL.Path,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromView(view))
}

// logFailure logs client errors at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	switch dErrors.CodeOf(err) {
	case dErrors.CodeNotFound, dErrors.CodeInvalidInput, dErrors.CodeValidation, dErrors.CodeBadRequest:
		h.logger.WarnContext(ctx, msg, args...)
	default:
		h.logger.ErrorContext(ctx, msg, args...)
	}
}

func (h *Handler) elapsed(ctx context.Context) time.Duration {
	return time.Since(requestcontext.Now(ctx))
}
