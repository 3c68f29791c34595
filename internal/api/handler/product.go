package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/edvin/catalog/internal/api/request"
	"github.com/edvin/catalog/internal/api/response"
	"github.com/edvin/catalog/internal/model"
	"github.com/edvin/catalog/internal/store"
)

type Product struct {
	store store.ProductStore
}

func NewProduct(s store.ProductStore) *Product {
	return &Product{store: s}
}

// List returns every product.
//
//	@Summary      List products
//	@Tags         Products
//	@Produce      json
//	@Success      200  {array}   model.Product
//	@Failure      500  {object}  response.ErrorResponse
//	@Router       /products [get]
func (h *Product) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.FindAll(r.Context())
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	if products == nil {
		products = []model.Product{}
	}

	response.WriteJSON(w, http.StatusOK, products)
}

// Get returns one product, or JSON null when no product has the ID.
//
//	@Summary      Get product
//	@Description  A missing product is not an error: the body is null.
//	@Tags         Products
//	@Produce      json
//	@Param        id   path      int  true  "Product ID"
//	@Success      200  {object}  model.Product
//	@Failure      400  {object}  response.ErrorResponse
//	@Failure      500  {object}  response.ErrorResponse
//	@Router       /products/{id} [get]
func (h *Product) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, found, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	if !found {
		response.WriteJSON(w, http.StatusOK, nil)
		return
	}

	response.WriteJSON(w, http.StatusOK, product)
}

// Create stores a new product. Any ID in the body is ignored.
//
//	@Summary      Create product
//	@Tags         Products
//	@Accept       json
//	@Produce      json
//	@Param        body  body      model.Product  true  "Product"
//	@Success      201   {object}  model.Product
//	@Failure      400   {object}  response.ErrorResponse
//	@Failure      500   {object}  response.ErrorResponse
//	@Router       /products [post]
func (h *Product) Create(w http.ResponseWriter, r *http.Request) {
	var req model.Product
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.ID = 0

	product, err := h.store.Save(r.Context(), &req)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, product)
}

// Update replaces the product stored under the path ID. The path ID wins over
// any ID in the body, and an unknown ID creates the product. ID 0 means
// unassigned, so PUT /products/0 inserts under a fresh ID.
//
//	@Summary      Replace product
//	@Tags         Products
//	@Accept       json
//	@Produce      json
//	@Param        id    path      int            true  "Product ID"
//	@Param        body  body      model.Product  true  "Product"
//	@Success      200   {object}  model.Product
//	@Failure      400   {object}  response.ErrorResponse
//	@Failure      500   {object}  response.ErrorResponse
//	@Router       /products/{id} [put]
func (h *Product) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.Product
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.ID = id

	product, err := h.store.Save(r.Context(), &req)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, product)
}

// Delete removes a product. Deleting an unknown ID succeeds.
//
//	@Summary      Delete product
//	@Tags         Products
//	@Param        id   path  int  true  "Product ID"
//	@Success      204
//	@Failure      400  {object}  response.ErrorResponse
//	@Failure      500  {object}  response.ErrorResponse
//	@Router       /products/{id} [delete]
func (h *Product) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.DeleteByID(r.Context(), id); err != nil {
		h.storeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Product) storeError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("product store failure")
	response.WriteError(w, http.StatusInternalServerError, err.Error())
}
