package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/laisvitor/wedding-backend/internal/domain"
	"github.com/laisvitor/wedding-backend/internal/http/response"
	"github.com/laisvitor/wedding-backend/internal/repo/postgres"
	"github.com/laisvitor/wedding-backend/pkg/events"
	"github.com/laisvitor/wedding-backend/pkg/logger"
)

type RSVPHandler struct {
	Guests postgres.GuestsRepo
	Bus    events.Publisher
}

func NewRSVPHandler(guests postgres.GuestsRepo, bus events.Publisher) *RSVPHandler {
	return &RSVPHandler{Guests: guests, Bus: bus}
}

func (h *RSVPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var in struct {
		InviteCode string `json:"codigo_convite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.InviteCode == "" {
		response.BadRequest(w, "codigo_convite é obrigatório")
		return
	}

	g, err := h.Guests.FindByCode(r.Context(), in.InviteCode)
	if err != nil {
		logger.ErrorContext(r.Context(), "guest lookup failed", "error", err)
		response.InternalError(w, "erro ao consultar convidado")
		return
	}
	if g == nil {
		response.NotFound(w, "Código de convite não encontrado")
		return
	}

	response.WriteJSON(w, http.StatusOK, domain.GuestSummary{
		ID:     g.ID,
		Name:   g.Name,
		Status: g.Status,
	})
}

func (h *RSVPHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var in domain.ConfirmRSVPReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.InviteCode == "" {
		response.BadRequest(w, "codigo_convite é obrigatório")
		return
	}

	status, ok := domain.ParseRSVPReply(in.Status)
	if !ok {
		response.BadRequest(w, "status_rsvp deve ser 'Confirmado' ou 'Recusado'")
		return
	}
	if in.AdultCount < 0 {
		response.BadRequest(w, "qtd_adultos inválido")
		return
	}

	g, err := h.Guests.ConfirmByCode(r.Context(), in.InviteCode, status, in.AdultCount, in.DietaryRestrictions)
	if err != nil {
		logger.ErrorContext(r.Context(), "rsvp update failed", "error", err)
		response.InternalError(w, "erro ao atualizar RSVP")
		return
	}
	if g == nil {
		response.NotFound(w, "Código inválido para atualização")
		return
	}

	event := events.RSVPConfirmedEvent{
		GuestID:             g.ID,
		InviteCode:          g.InviteCode,
		Status:              string(g.Status),
		AdultCount:          g.AdultCount,
		DietaryRestrictions: g.DietaryRestrictions,
		ConfirmedAt:         time.Now(),
	}
	if err := h.Bus.Publish(r.Context(), events.RSVPConfirmed, event); err != nil {
		logger.ErrorContext(r.Context(), "failed to publish rsvp event", "error", err, "guest_id", g.ID)
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"mensagem": "RSVP atualizado com sucesso!"})
}
