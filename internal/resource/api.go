package resource

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/skillshare/internal/applog"
	"github.com/SergeyParamoshkin/skillshare/internal/errresponse"
	"github.com/SergeyParamoshkin/skillshare/internal/objectid"
)

// Handler exposes a Service over HTTP.
type Handler[T any, U any] struct {
	svc *Service[T, U]
}

func NewHandler[T any, U any](svc *Service[T, U]) *Handler[T, U] {
	return &Handler[T, U]{svc: svc}
}

// Routes mounts the resource at its collection path:
//
//	POST   /            create
//	GET    /            list (?sortby=ASC|DESC when the schema sorts)
//	GET    /{id}        get by identifier
//	GET    /{key}/{v}   get by secondary key, when the schema has one
//	PUT    /{id}        update by identifier, or by secondary key when the
//	                    segment is not an identifier
//	DELETE /{id}        delete
func (h *Handler[T, U]) Routes() chi.Router {
	schema := h.svc.Schema()
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.List)
	r.Post("/", h.Create)

	if key := schema.SecondaryKey; key != "" {
		r.Get("/"+key+"/{key}", h.GetByKey)
	}

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Delete)
		if schema.Updatable {
			r.Put("/", h.Update)
		}
	})

	return r
}

// List renders `{"<collection>": [...]}`.
func (h *Handler[T, U]) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.List(r.Context(), r.URL.Query().Get("sortby"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	respond(w, r, &listResponse[T]{Key: h.svc.Schema().Collection, Docs: docs})
}

func (h *Handler[T, U]) Create(w http.ResponseWriter, r *http.Request) {
	data := &createRequest[T, U]{svc: h.svc, Doc: new(T)}
	if err := render.Bind(r, data); err != nil {
		renderError(w, r, bindError(err))
		return
	}

	created, err := h.svc.Create(r.Context(), data.Doc)
	if err != nil {
		renderError(w, r, err)
		return
	}

	respond(w, r, newDocResponse(created, http.StatusCreated))
}

func (h *Handler[T, U]) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	respond(w, r, newDocResponse(doc, 0))
}

func (h *Handler[T, U]) GetByKey(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.GetByKey(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	respond(w, r, newDocResponse(doc, 0))
}

func (h *Handler[T, U]) Update(w http.ResponseWriter, r *http.Request) {
	data := &updateRequest[T, U]{svc: h.svc, Update: new(U)}
	if err := render.Bind(r, data); err != nil {
		renderError(w, r, bindError(err))
		return
	}

	doc, err := h.svc.UpdateByKey(r.Context(), chi.URLParam(r, "id"), data.Update)
	if err != nil {
		renderError(w, r, err)
		return
	}

	respond(w, r, newDocResponse(doc, 0))
}

func (h *Handler[T, U]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		renderError(w, r, err)
		return
	}

	render.NoContent(w, r)
}

func respond(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		applog.FromContext(r.Context()).Errorw("render response", "error", err)
		if rerr := render.Render(w, r, errresponse.ErrRender(err)); rerr != nil {
			applog.FromContext(r.Context()).Errorw("render error response", "error", rerr)
		}
	}
}

// bindError keeps schema violations and reports everything else from
// render.Bind as an undecodable body.
func bindError(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return err
	}

	return fmt.Errorf("%w: %v", ErrMalformedBody, err)
}

// renderError maps domain errors onto responses. Anything unrecognised is
// a store or programming failure and is logged, not shown.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		resp render.Renderer
		verr *ValidationError
	)

	switch {
	case errors.As(err, &verr):
		resp = errresponse.ErrValidation(verr, verr.Fields)
	case errors.Is(err, objectid.ErrInvalidIdentifier),
		errors.Is(err, ErrEmptyPatch),
		errors.Is(err, ErrInvalidParameter),
		errors.Is(err, ErrMalformedBody):
		resp = errresponse.ErrInvalidRequest(err)
	case errors.Is(err, ErrNotFound):
		resp = errresponse.ErrNotFound(err)
	case errors.Is(err, ErrNotUpdatable):
		resp = errresponse.ErrMethodNotAllowed(err)
	default:
		applog.FromContext(r.Context()).Errorw("request failed", "error", err)
		resp = errresponse.ErrInternal(err)
	}

	if rerr := render.Render(w, r, resp); rerr != nil {
		applog.FromContext(r.Context()).Errorw("render error response", "error", rerr)
	}
}
