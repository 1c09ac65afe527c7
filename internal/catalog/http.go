package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"StoreFront/internal/store"
	"StoreFront/pkg/kit"
)

// Server exposes the product and category stores over HTTP. Handlers do thin
// request/response mapping only; all semantics live in the stores.
type Server struct {
	Products   *Catalog
	Categories *Categories
	Log        *zap.Logger
}

// Register mounts the catalog routes on r.
func (s *Server) Register(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.listProducts)
		r.Post("/", s.createProduct)
		r.Get("/{id}", s.getProduct)
		r.Put("/{id}", s.updateProduct)
		r.Delete("/{id}", s.deleteProduct)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", s.listCategories)
		r.Get("/tree", s.categoryTree)
		r.Post("/", s.createCategory)
		r.Delete("/{id}", s.deleteCategory)
	})
}

type productListResponse struct {
	Products   []*Product `json:"products"`
	TotalCount int        `json:"total_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := intQuery(q.Get("page"), 1)
	size := intQuery(q.Get("page_size"), store.DefaultPageSize)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = store.DefaultPageSize
	}

	term := q.Get("search")

	var categoryID *int
	if raw := q.Get("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			kit.WriteError(w, r, http.StatusBadRequest, "category_id must be an integer", nil)
			return
		}
		categoryID = &id
	}

	var products []*Product
	var total int
	if strings.TrimSpace(term) != "" {
		all := s.Products.Search(term, categoryID)
		total = len(all)
		products = pageSlice(all, page, size)
	} else {
		products = s.Products.PageByName(page, size)
		total = s.Products.Count()
	}

	kit.WriteJSON(w, http.StatusOK, productListResponse{
		Products:   products,
		TotalCount: total,
		Page:       page,
		PageSize:   size,
	})
}

func pageSlice(products []*Product, page, size int) []*Product {
	start := (page - 1) * size
	if start >= len(products) {
		return []*Product{}
	}
	end := start + size
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	p, found := s.Products.Get(id)
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

type createProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CategoryID  *int            `json:"category_id"`
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	p, err := s.Products.AddOrMerge(&Product{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, p)
}

type updateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	SKU         *string          `json:"sku"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	CategoryID  *int             `json:"category_id"`
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var req updateProductRequest
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	patch := &Product{CategoryID: req.CategoryID}
	if req.Name != nil {
		patch.Name = *req.Name
	}
	if req.Description != nil {
		patch.Description = *req.Description
	}
	if req.SKU != nil {
		patch.SKU = *req.SKU
	}
	if req.Price != nil {
		patch.Price = *req.Price
	}
	if req.Quantity != nil {
		patch.Quantity = *req.Quantity
	}

	updated, found, err := s.Products.Update(id, patch)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if !s.Products.Delete(id) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Categories.List())
}

func (s *Server) categoryTree(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Categories.Tree())
}

type createCategoryRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	ParentCategoryID *int   `json:"parent_category_id"`
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	c, err := s.Categories.Add(&Category{
		Name:             req.Name,
		Description:      req.Description,
		ParentCategoryID: req.ParentCategoryID,
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, c)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if !s.Categories.Delete(id) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *store.ValidationError
	var aerr *store.ArgumentError
	switch {
	case errors.As(err, &verr):
		kit.WriteError(w, r, http.StatusBadRequest, verr.Error(), nil)
	case errors.As(err, &aerr):
		kit.WriteError(w, r, http.StatusBadRequest, aerr.Error(), nil)
	case errors.Is(err, store.ErrNilEntity):
		kit.WriteError(w, r, http.StatusBadRequest, "entity required", nil)
	default:
		if s.Log != nil {
			s.Log.Error("catalog request failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

func urlID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "id must be an integer", nil)
		return 0, false
	}
	return id, true
}

func intQuery(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
