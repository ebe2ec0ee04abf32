package http

import (
	"net/http"
	"time"

	commonhttp "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/http"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/jwtverify"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/logger"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/recipe/service"
)

type Handler struct {
	recipes        *service.RecipeService
	requireAuth    func(http.Handler) http.Handler
	requestTimeout time.Duration
	log            *logger.Logger
	errHandler     *commonhttp.ErrorHandler
}

func NewHandler(
	recipes *service.RecipeService,
	requireAuth func(http.Handler) http.Handler,
	requestTimeout time.Duration,
	log *logger.Logger,
) *Handler {
	return &Handler{
		recipes:        recipes,
		requireAuth:    requireAuth,
		requestTimeout: requestTimeout,
		log:            log,
		errHandler:     commonhttp.NewErrorHandler(log),
	}
}

func (h *Handler) Routes(mux *http.ServeMux) {
	withTimeout := commonhttp.WithTimeout(h.requestTimeout)

	mux.Handle("GET /api/find-recipes", h.requireAuth(withTimeout(h.findRecipes)))
	mux.Handle("GET /api/recipe/{id}", h.requireAuth(withTimeout(h.recipeDetails)))
}

func (h *Handler) findRecipes(w http.ResponseWriter, r *http.Request) {
	user, _ := jwtverify.FromContext(r.Context())

	recipes, err := h.recipes.FindRecipes(r.Context(), string(user.ID))
	if err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, recipes)
}

func (h *Handler) recipeDetails(w http.ResponseWriter, r *http.Request) {
	id, err := commonhttp.PathInt64(r, "id")
	if err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	detail, err := h.recipes.GetRecipeDetails(r.Context(), id)
	if err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, detail)
}
