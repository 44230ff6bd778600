package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/laisvitor/wedding-backend/internal/domain"
	mw "github.com/laisvitor/wedding-backend/internal/http/middleware"
	"github.com/laisvitor/wedding-backend/internal/http/response"
	"github.com/laisvitor/wedding-backend/internal/repo/postgres"
	"github.com/laisvitor/wedding-backend/internal/utils"
	"github.com/laisvitor/wedding-backend/pkg/logger"
)

type GiftsHandler struct {
	Gifts postgres.GiftsRepo
}

func NewGiftsHandler(gifts postgres.GiftsRepo) *GiftsHandler {
	return &GiftsHandler{Gifts: gifts}
}

// ListActive serves the public registry page: active gifts only.
func (h *GiftsHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	out, err := h.Gifts.ListActive(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "gift list failed", "error", err)
		response.InternalError(w, "erro ao listar presentes")
		return
	}
	if out == nil {
		out = []domain.Gift{}
	}
	response.WriteJSON(w, http.StatusOK, out)
}

// ListMine returns every gift owned by the session's admin, active or not.
func (h *GiftsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	out, err := h.Gifts.ListByAdmin(r.Context(), mw.AdminID(r))
	if err != nil {
		logger.ErrorContext(r.Context(), "gift list failed", "error", err)
		response.InternalError(w, "erro ao listar presentes")
		return
	}
	if out == nil {
		out = []domain.Gift{}
	}
	response.WriteJSON(w, http.StatusOK, out)
}

func decodeGiftReq(w http.ResponseWriter, r *http.Request) (*domain.GiftReq, bool) {
	var in domain.GiftReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "json inválido")
		return nil, false
	}
	in.Name = utils.NormalizeString(in.Name)
	if in.Name == "" {
		response.BadRequest(w, "nome_presente é obrigatório")
		return nil, false
	}
	if in.UnitValue <= 0 {
		response.BadRequest(w, "valor_cota deve ser maior que zero")
		return nil, false
	}
	return &in, true
}

func (h *GiftsHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeGiftReq(w, r)
	if !ok {
		return
	}

	id, err := h.Gifts.Create(r.Context(), mw.AdminID(r), in)
	if err != nil {
		logger.ErrorContext(r.Context(), "gift insert failed", "error", err)
		response.InternalError(w, "erro ao criar presente")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{"mensagem": "Presente criado", "id": id})
}

func (h *GiftsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "id inválido")
		return
	}

	g, err := h.Gifts.GetForAdmin(r.Context(), id, mw.AdminID(r))
	if err != nil {
		logger.ErrorContext(r.Context(), "gift lookup failed", "error", err)
		response.InternalError(w, "erro ao consultar presente")
		return
	}
	if g == nil {
		response.NotFound(w, "Presente não encontrado")
		return
	}
	response.WriteJSON(w, http.StatusOK, g)
}

func (h *GiftsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "id inválido")
		return
	}
	in, ok := decodeGiftReq(w, r)
	if !ok {
		return
	}

	updated, err := h.Gifts.UpdateForAdmin(r.Context(), id, mw.AdminID(r), in)
	if err != nil {
		logger.ErrorContext(r.Context(), "gift update failed", "error", err)
		response.InternalError(w, "erro ao atualizar presente")
		return
	}
	if !updated {
		response.NotFound(w, "Presente não encontrado")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"mensagem": "Presente atualizado"})
}

func (h *GiftsHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "id inválido")
		return
	}

	var in struct {
		IsActive *bool `json:"esta_ativo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.IsActive == nil {
		response.BadRequest(w, "esta_ativo é obrigatório")
		return
	}

	updated, err := h.Gifts.SetActiveForAdmin(r.Context(), id, mw.AdminID(r), *in.IsActive)
	if err != nil {
		logger.ErrorContext(r.Context(), "gift status update failed", "error", err)
		response.InternalError(w, "erro ao atualizar presente")
		return
	}
	if !updated {
		response.NotFound(w, "Presente não encontrado")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"mensagem": "Status atualizado"})
}
