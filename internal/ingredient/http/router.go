package http

import (
	"net/http"
	"time"

	commonhttp "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/http"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/jwtverify"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/logger"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/ingredient/domain"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/ingredient/service"
)

type addIngredientRequest struct {
	Name string `json:"name"`
}

type ingredientResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	DateAdded string `json:"date_added"`
}

type Handler struct {
	ingredients    *service.IngredientService
	requireAuth    func(http.Handler) http.Handler
	requestTimeout time.Duration
	log            *logger.Logger
	errHandler     *commonhttp.ErrorHandler
}

func NewHandler(
	ingredients *service.IngredientService,
	requireAuth func(http.Handler) http.Handler,
	requestTimeout time.Duration,
	log *logger.Logger,
) *Handler {
	return &Handler{
		ingredients:    ingredients,
		requireAuth:    requireAuth,
		requestTimeout: requestTimeout,
		log:            log,
		errHandler:     commonhttp.NewErrorHandler(log),
	}
}

func (h *Handler) Routes(mux *http.ServeMux) {
	withTimeout := commonhttp.WithTimeout(h.requestTimeout)

	mux.Handle("GET /api/ingredients", h.requireAuth(withTimeout(h.list)))
	mux.Handle("POST /api/ingredients", h.requireAuth(withTimeout(h.add)))
	mux.Handle("DELETE /api/ingredients/{id}", h.requireAuth(withTimeout(h.remove)))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, _ := jwtverify.FromContext(r.Context())

	items, err := h.ingredients.List(r.Context(), string(user.ID))
	if err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	resp := make([]ingredientResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toResponse(it))
	}
	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	user, _ := jwtverify.FromContext(r.Context())

	var req addIngredientRequest
	if err := commonhttp.DecodeRequest(r, &req); err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	item, err := h.ingredients.Add(r.Context(), string(user.ID), req.Name)
	if err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusCreated, toResponse(item))
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	user, _ := jwtverify.FromContext(r.Context())

	id, err := commonhttp.PathInt64(r, "id")
	if err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	if err := h.ingredients.Remove(r.Context(), string(user.ID), domain.ID(id)); err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}
	commonhttp.WriteMessage(w, http.StatusOK, "Ingredient deleted")
}

func toResponse(it domain.Ingredient) ingredientResponse {
	return ingredientResponse{
		ID:        int64(it.ID),
		Name:      it.Name,
		DateAdded: it.DateAdded.UTC().Format(time.RFC3339),
	}
}
