package cards

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/goliatone/go-cards/pkg/model"
	"github.com/goliatone/go-cards/pkg/store"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type itemsResponse struct {
	Type string         `json:"type"`
	Data []model.Record `json:"data"`
}

// Handler builds a net/http handler mounted at the default route path.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds the handler with routes under opts.RoutePath.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return newRouter(mountPath("", opts.RoutePath), opts)
}

func newRouter(prefix string, opts Options) http.Handler {
	board := newBoard(prefix, opts)
	h := &handler{board: board, opts: opts, prefix: prefix}

	router := mux.NewRouter()
	router.StrictSlash(false)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
	if opts.Guard != nil {
		router.Use(guardMiddleware(opts.Guard))
	}

	if prefix != "" {
		router.HandleFunc(prefix, h.page).Methods(http.MethodGet, http.MethodHead)
	}
	router.HandleFunc(prefix+"/", h.page).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(prefix+"/{type}/items", h.list).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(prefix+"/{type}/items", h.add).Methods(http.MethodPost)
	router.HandleFunc(prefix+"/{type}/items/{id}/delete", h.remove).Methods(http.MethodPost)
	return router
}

type handler struct {
	board  *Board
	opts   Options
	prefix string
}

func (h *handler) page(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.board.Page().Render(r.Context(), &buf); err != nil {
		h.opts.Logger.Error("render board", "error", err)
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(buf.Bytes())
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	cardType, err := cardTypeFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	items, err := h.board.Items(cardType)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(itemsResponse{Type: cardType.String(), Data: items})
}

func (h *handler) add(w http.ResponseWriter, r *http.Request) {
	cardType, err := cardTypeFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.board.Add(r.Context(), cardType); err != nil {
		h.opts.Logger.Error("add record", "type", cardType, "error", err)
		h.writeError(w, err)
		return
	}
	h.opts.Logger.Debug("record added", "type", cardType)
	h.redirect(w, r)
}

func (h *handler) remove(w http.ResponseWriter, r *http.Request) {
	cardType, err := cardTypeFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, StatusError{Code: http.StatusBadRequest, Err: err})
		return
	}
	if err := h.board.Delete(cardType, id); err != nil {
		h.writeError(w, err)
		return
	}
	h.opts.Logger.Debug("record deleted", "type", cardType, "id", id)
	h.redirect(w, r)
}

func (h *handler) redirect(w http.ResponseWriter, r *http.Request) {
	target := h.prefix
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *handler) writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	http.Error(w, http.StatusText(code), code)
}

func cardTypeFromRequest(r *http.Request) (model.CardType, error) {
	cardType, err := model.ParseCardType(mux.Vars(r)["type"])
	if err != nil {
		return "", StatusError{Code: http.StatusNotFound, Err: err}
	}
	return cardType, nil
}

func statusFor(err error) int {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.StatusCode()
	case errors.Is(err, model.ErrUnknownCardType), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func guardMiddleware(guard GuardFunc) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
