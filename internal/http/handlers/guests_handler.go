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
	"github.com/laisvitor/wedding-backend/pkg/events"
	"github.com/laisvitor/wedding-backend/pkg/logger"
)

type GuestsHandler struct {
	Guests postgres.GuestsRepo
	Bus    events.Publisher
}

func NewGuestsHandler(guests postgres.GuestsRepo, bus events.Publisher) *GuestsHandler {
	return &GuestsHandler{Guests: guests, Bus: bus}
}

func (h *GuestsHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.Guests.ListByAdmin(r.Context(), mw.AdminID(r))
	if err != nil {
		logger.ErrorContext(r.Context(), "guest list failed", "error", err)
		response.InternalError(w, "erro ao listar convidados")
		return
	}
	if out == nil {
		out = []domain.Guest{}
	}
	response.WriteJSON(w, http.StatusOK, out)
}

func (h *GuestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.GuestCreateReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "json inválido")
		return
	}
	in.Name = utils.NormalizeString(in.Name)
	if in.Name == "" {
		response.BadRequest(w, "nome_convidado é obrigatório")
		return
	}

	adminID := mw.AdminID(r)
	g, err := h.Guests.Create(r.Context(), adminID, in.Name)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			response.Conflict(w, "Código de convite já existe, tente novamente")
			return
		}
		logger.ErrorContext(r.Context(), "guest insert failed", "error", err)
		response.InternalError(w, "erro ao criar convidado")
		return
	}

	event := events.GuestCreatedEvent{
		GuestID:    g.ID,
		AdminID:    adminID,
		InviteCode: g.InviteCode,
		Name:       g.Name,
	}
	if err := h.Bus.Publish(r.Context(), events.GuestCreated, event); err != nil {
		logger.ErrorContext(r.Context(), "failed to publish guest event", "error", err, "guest_id", g.ID)
	}

	response.WriteJSON(w, http.StatusOK, domain.GuestCreateRes{
		Message:    "Convidado criado",
		ID:         g.ID,
		InviteCode: g.InviteCode,
	})
}

func (h *GuestsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "id inválido")
		return
	}

	g, err := h.Guests.GetForAdmin(r.Context(), id, mw.AdminID(r))
	if err != nil {
		logger.ErrorContext(r.Context(), "guest lookup failed", "error", err)
		response.InternalError(w, "erro ao consultar convidado")
		return
	}
	if g == nil {
		response.NotFound(w, "Convidado não encontrado")
		return
	}
	response.WriteJSON(w, http.StatusOK, g)
}

func (h *GuestsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "id inválido")
		return
	}

	var in domain.GuestUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "json inválido")
		return
	}
	in.Name = utils.NormalizeString(in.Name)
	if in.Name == "" {
		response.BadRequest(w, "nome_convidado é obrigatório")
		return
	}
	status, ok := domain.ParseRSVPStatus(in.Status)
	if !ok {
		response.BadRequest(w, "status_rsvp deve ser 'Pendente', 'Confirmado' ou 'Recusado'")
		return
	}
	if in.AdultCount < 0 {
		response.BadRequest(w, "qtd_adultos inválido")
		return
	}

	updated, err := h.Guests.UpdateForAdmin(r.Context(), id, mw.AdminID(r), in.Name, status, in.AdultCount, in.DietaryRestrictions)
	if err != nil {
		logger.ErrorContext(r.Context(), "guest update failed", "error", err)
		response.InternalError(w, "erro ao atualizar convidado")
		return
	}
	if !updated {
		response.NotFound(w, "Convidado não encontrado")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"mensagem": "Convidado atualizado"})
}
