package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/alexedwards/argon2id"

	"github.com/laisvitor/wedding-backend/internal/http/response"
	"github.com/laisvitor/wedding-backend/internal/platform/session"
	"github.com/laisvitor/wedding-backend/internal/repo/postgres"
	"github.com/laisvitor/wedding-backend/pkg/logger"
)

type AuthHandler struct {
	Admins   postgres.AdminsRepo
	Sessions session.Store
}

func NewAuthHandler(admins postgres.AdminsRepo, sessions session.Store) *AuthHandler {
	return &AuthHandler{Admins: admins, Sessions: sessions}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		AdminKey string `json:"chave_admin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Username == "" || in.AdminKey == "" {
		response.BadRequest(w, "Credenciais incompletas")
		return
	}

	admin, err := h.Admins.FindByUsername(r.Context(), strings.TrimSpace(in.Username))
	if err != nil {
		logger.ErrorContext(r.Context(), "admin lookup failed", "error", err)
		response.InternalError(w, "erro ao consultar admin")
		return
	}
	if admin == nil {
		response.Unauthorized(w, "Usuário ou chave inválidos")
		return
	}

	ok, err := argon2id.ComparePasswordAndHash(in.AdminKey, admin.KeyHash)
	if err != nil || !ok {
		response.Unauthorized(w, "Usuário ou chave inválidos")
		return
	}

	token, err := h.Sessions.Issue(r.Context(), admin.ID)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to issue session", "error", err)
		response.InternalError(w, "erro ao criar sessão")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"mensagem": "Login realizado",
		"token":    token,
		"admin_id": admin.ID,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := h.Sessions.Revoke(r.Context(), tok); err != nil {
		logger.ErrorContext(r.Context(), "failed to revoke session", "error", err)
		response.InternalError(w, "erro ao encerrar sessão")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"mensagem": "Sessão encerrada"})
}
