package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"anitrack/pkg/identity"
	"anitrack/pkg/readlist"
	"anitrack/pkg/session"
	"anitrack/pkg/token"
	"anitrack/pkg/user"
)

type RegisterForm struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID int64) (string, token.Claims, error)
}

type AuthHandler struct {
	Service  user.ServiceInterface
	Tokens   TokenIssuer
	Cookies  *session.CookieManager
	Denylist session.Denylist
	Logger   *slog.Logger

	// ReadList, when set, is embedded in the Me response.
	ReadList readlist.ServiceInterface
}

type meUser struct {
	user.Public
	ReadList []*readlist.Item `json:"readList"`
}

func NewAuthHandler(service user.ServiceInterface, tokens TokenIssuer, cookies *session.CookieManager, denylist session.Denylist, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		Service:  service,
		Tokens:   tokens,
		Cookies:  cookies,
		Denylist: denylist,
		Logger:   logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	u, err := h.Service.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		var ve *user.ValidationError
		switch {
		case errors.As(err, &ve):
			writeError(w, http.StatusBadRequest, typeError, ve.Msg)
		case errors.Is(err, user.ErrAlreadyExists):
			writeError(w, http.StatusConflict, typeError, user.ErrAlreadyExists.Error())
		default:
			writeServerError(w, h.Logger, "register", err)
		}
		return
	}

	if ok := h.issueSession(w, u.ID, "register"); !ok {
		return
	}
	if ok := WriteResp(w, h.Logger, u.Public(), http.StatusCreated); ok {
		h.Logger.Info("register", "user", u.ID)
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	u, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var ve *user.ValidationError
		switch {
		case errors.As(err, &ve):
			writeError(w, http.StatusBadRequest, typeError, ve.Msg)
		case errors.Is(err, user.ErrInvalidCredentials):
			h.Logger.Info("login", "error", "invalid credentials")
			writeError(w, http.StatusUnauthorized, typeError, user.ErrInvalidCredentials.Error())
		default:
			writeServerError(w, h.Logger, "login", err)
		}
		return
	}

	if ok := h.issueSession(w, u.ID, "login"); !ok {
		return
	}
	if ok := writeJSON(w, h.Logger, map[string]any{"user": u.Public()}); ok {
		h.Logger.Info("login", "user", u.ID)
	}
}

// Me reports the current user with their read list, or null for an
// anonymous request. A read list failure drops the list but still answers 200.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		writeJSON(w, h.Logger, map[string]any{"user": nil})
		return
	}
	if h.ReadList == nil {
		writeJSON(w, h.Logger, map[string]any{"user": id.User})
		return
	}

	items, err := h.ReadList.List(r.Context(), id.User.ID)
	if err != nil {
		h.Logger.Error("me read list", "user", id.User.ID, "error", err)
		writeJSON(w, h.Logger, map[string]any{"user": id.User})
		return
	}
	if items == nil {
		items = []*readlist.Item{}
	}
	writeJSON(w, h.Logger, map[string]any{"user": meUser{Public: id.User, ReadList: items}})
}

// Logout revokes the presented token and clears the cookie. It succeeds for
// anonymous requests too.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := identity.FromContext(r.Context()); ok && h.Denylist != nil && id.TokenID != "" {
		if err := h.Denylist.Revoke(r.Context(), id.TokenID, id.ExpiresAt); err != nil {
			h.Logger.Error("logout revoke", "user", id.User.ID, "error", err)
		} else {
			h.Logger.Info("logout", "user", id.User.ID)
		}
	}

	w.Header().Add("Set-Cookie", h.Cookies.SerializeClear())
	writeJSON(w, h.Logger, map[string]string{typeMessage: "logged out"})
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, userID int64, action string) bool {
	raw, _, err := h.Tokens.Issue(userID)
	if err != nil {
		writeServerError(w, h.Logger, action+" token signing", err)
		return false
	}
	w.Header().Add("Set-Cookie", h.Cookies.Serialize(raw))
	return true
}
