package cart

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"StoreFront/internal/store"
	"StoreFront/pkg/kit"
)

// Server exposes cart sessions over HTTP.
type Server struct {
	Carts *Registry
	Log   *zap.Logger
}

// Register mounts the cart routes on r.
func (s *Server) Register(r chi.Router) {
	r.Route("/carts", func(r chi.Router) {
		r.Post("/", s.create)
		r.Get("/{id}", s.state)
		r.Delete("/{id}", s.remove)
		r.Post("/{id}/items", s.addItem)
		r.Get("/{id}/items/{name}", s.itemQuantity)
	})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	id := s.Carts.Create()
	kit.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	ledger, ok := s.lookup(w, r)
	if !ok {
		return
	}
	kit.WriteJSON(w, http.StatusOK, ledger.State())
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.Carts.Delete(id) {
		kit.WriteError(w, r, http.StatusNotFound, "cart not found", map[string]any{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	ledger, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	if err := ledger.AddProduct(r.Context(), req.Name, req.Quantity); err != nil {
		s.writeAddError(w, r, err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, ledger.State())
}

func (s *Server) itemQuantity(w http.ResponseWriter, r *http.Request) {
	ledger, ok := s.lookup(w, r)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"product_name": name,
		"quantity":     ledger.QuantityOf(name),
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*Ledger, bool) {
	id := chi.URLParam(r, "id")
	ledger, ok := s.Carts.Get(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "cart not found", map[string]any{"id": id})
		return nil, false
	}
	return ledger, true
}

func (s *Server) writeAddError(w http.ResponseWriter, r *http.Request, err error) {
	var aerr *store.ArgumentError
	switch {
	case errors.As(err, &aerr):
		kit.WriteError(w, r, http.StatusBadRequest, aerr.Error(), nil)
	case errors.Is(err, ErrPriceNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "unknown product", nil)
	case errors.Is(err, ErrPriceUnavailable):
		kit.WriteError(w, r, http.StatusServiceUnavailable, "price api unavailable", nil)
	case errors.Is(err, ErrPriceBadStatus), errors.Is(err, ErrPriceMalformed):
		kit.WriteError(w, r, http.StatusBadGateway, "price api error", nil)
	default:
		if s.Log != nil {
			s.Log.Error("cart add failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}
