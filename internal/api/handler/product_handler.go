package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"shopcaster/internal/api/middleware"
	"shopcaster/internal/app/service"
	"shopcaster/internal/common"
	"shopcaster/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productService *service.ProductService
	postService    *service.PostService
}

func NewProductHandler(productService *service.ProductService, postService *service.PostService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		postService:    postService,
	}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Delete("/", h.deleteFromBody)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/scrape", h.scrape)
	r.Post("/{id}/generate-posts", h.generatePosts)
}

type productResponse struct {
	Product *model.Product `json:"product"`
}

type productListResponse struct {
	Products []model.Product `json:"products"`
}

type postListResponse struct {
	Posts []service.Post `json:"posts"`
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	products, err := h.productService.List(r.Context(), user.ID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, productListResponse{Products: products})
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	product, err := h.productService.Create(r.Context(), user.ID, req.URL)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, productResponse{Product: product})
}

// deleteFromBody deletes a product whose id arrives in the JSON body rather
// than the path.
func (h *ProductHandler) deleteFromBody(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req struct {
		ID json.Number `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	productID, err := req.ID.Int64()
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "a valid product id is required")
		return
	}

	h.deleteByID(w, r, user.ID, productID)
}

func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	productID, ok := productIDFromPath(w, r)
	if !ok {
		return
	}
	h.deleteByID(w, r, user.ID, productID)
}

func (h *ProductHandler) deleteByID(w http.ResponseWriter, r *http.Request, userID, productID int64) {
	if err := h.productService.Delete(r.Context(), userID, productID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *ProductHandler) scrape(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	productID, ok := productIDFromPath(w, r)
	if !ok {
		return
	}

	product, err := h.productService.Scrape(r.Context(), user.ID, productID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, productResponse{Product: product})
}

func (h *ProductHandler) generatePosts(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	productID, ok := productIDFromPath(w, r)
	if !ok {
		return
	}

	// The body is optional; absent or unparsable bodies keep the default
	// style, and unknown styles are normalized by the service.
	var req struct {
		Style string `json:"style"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	posts, err := h.postService.Generate(r.Context(), user.ID, productID, req.Style)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, postListResponse{Posts: posts})
}

func productIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "a valid product id is required")
		return 0, false
	}
	return productID, true
}
