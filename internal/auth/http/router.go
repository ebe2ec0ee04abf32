package http

import (
	"net/http"
	"time"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/auth/service"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/constants"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/dto"
	commonhttp "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/http"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/jwtverify"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/logger"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/mapper"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message string   `json:"message"`
	User    dto.User `json:"user"`
}

type anonymousResponse struct {
	User *dto.User `json:"user"`
}

type Config struct {
	CookieSecure   bool
	RequestTimeout time.Duration
}

type Handler struct {
	auth       *service.AuthService
	cfg        Config
	log        *logger.Logger
	errHandler *commonhttp.ErrorHandler
}

func NewHandler(auth *service.AuthService, cfg Config, log *logger.Logger) *Handler {
	return &Handler{
		auth:       auth,
		cfg:        cfg,
		log:        log,
		errHandler: commonhttp.NewErrorHandler(log),
	}
}

func (h *Handler) Routes(mux *http.ServeMux) {
	withTimeout := commonhttp.WithTimeout(h.cfg.RequestTimeout)
	requireAuth := jwtverify.Middleware(h.auth, h.log)
	optionalAuth := jwtverify.Optional(h.auth)

	mux.HandleFunc("POST /api/register", withTimeout(h.register))
	mux.HandleFunc("POST /api/login", withTimeout(h.login))
	mux.Handle("GET /api/logout", requireAuth(withTimeout(h.logout)))
	mux.Handle("GET /api/current-user", optionalAuth(withTimeout(h.currentUser)))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeRequest(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"action": "register_bad_request",
			"ip":     commonhttp.GetClientIP(r),
		}).Warnf("register failed: %v", err)
		h.errHandler.HandleError(w, r, err)
		return
	}

	result, err := h.auth.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	h.setSessionCookie(w, result.SessionToken, result.ExpiresAt)
	commonhttp.WriteJSON(w, http.StatusCreated, authResponse{
		Message: "Registration successful",
		User:    mapper.UserToDTO(result.User),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeRequest(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"action": "login_bad_request",
			"ip":     commonhttp.GetClientIP(r),
		}).Warnf("login failed: %v", err)
		h.errHandler.HandleError(w, r, err)
		return
	}

	result, err := h.auth.Authenticate(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"action": "login_failed",
			"ip":     commonhttp.GetClientIP(r),
		}).Info("login rejected")
		h.errHandler.HandleError(w, r, err)
		return
	}

	h.setSessionCookie(w, result.SessionToken, result.ExpiresAt)
	commonhttp.WriteJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		User:    mapper.UserToDTO(result.User),
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Invalidate(r.Context(), jwtverify.TokenFromRequest(r)); err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	h.clearSessionCookie(w)
	commonhttp.WriteMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteJSON(w, http.StatusOK, anonymousResponse{User: nil})
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, mapper.UserToDTO(user))
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	if token == "" {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cfg.CookieSecure,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cfg.CookieSecure,
	})
}
