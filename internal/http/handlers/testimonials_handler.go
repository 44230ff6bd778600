package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/laisvitor/wedding-backend/internal/domain"
	mw "github.com/laisvitor/wedding-backend/internal/http/middleware"
	"github.com/laisvitor/wedding-backend/internal/http/response"
	"github.com/laisvitor/wedding-backend/internal/repo/postgres"
	"github.com/laisvitor/wedding-backend/pkg/events"
	"github.com/laisvitor/wedding-backend/pkg/logger"
)

type TestimonialsHandler struct {
	Guests       postgres.GuestsRepo
	Testimonials postgres.TestimonialsRepo
	Bus          events.Publisher
}

func NewTestimonialsHandler(guests postgres.GuestsRepo, testimonials postgres.TestimonialsRepo, bus events.Publisher) *TestimonialsHandler {
	return &TestimonialsHandler{Guests: guests, Testimonials: testimonials, Bus: bus}
}

// ListApproved serves the public carousel: approved messages only.
func (h *TestimonialsHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	out, err := h.Testimonials.ListApproved(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "testimonial list failed", "error", err)
		response.InternalError(w, "erro ao listar depoimentos")
		return
	}
	if out == nil {
		out = []domain.PublicTestimonial{}
	}
	response.WriteJSON(w, http.StatusOK, out)
}

func (h *TestimonialsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in struct {
		InviteCode string `json:"codigo_convite"`
		Message    string `json:"mensagem"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.InviteCode == "" {
		response.BadRequest(w, "codigo_convite é obrigatório")
		return
	}
	if in.Message == "" {
		response.BadRequest(w, "mensagem é obrigatória")
		return
	}

	g, err := h.Guests.FindByCode(r.Context(), in.InviteCode)
	if err != nil {
		logger.ErrorContext(r.Context(), "guest lookup failed", "error", err)
		response.InternalError(w, "erro ao consultar convidado")
		return
	}
	if g == nil {
		response.NotFound(w, "Código inválido")
		return
	}

	t, err := h.Testimonials.Create(r.Context(), g.ID, in.Message)
	if err != nil {
		logger.ErrorContext(r.Context(), "testimonial insert failed", "error", err)
		response.InternalError(w, "erro ao salvar depoimento")
		return
	}

	event := events.TestimonialSubmittedEvent{
		TestimonialID: t.ID,
		GuestID:       g.ID,
		SubmittedAt:   t.CreatedAt,
	}
	if err := h.Bus.Publish(r.Context(), events.TestimonialSubmitted, event); err != nil {
		logger.ErrorContext(r.Context(), "failed to publish testimonial event", "error", err, "testimonial_id", t.ID)
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"mensagem": "Depoimento enviado para aprovação!"})
}

func (h *TestimonialsHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	adminID := mw.AdminID(r)

	out, err := h.Testimonials.ListPendingForAdmin(r.Context(), adminID)
	if err != nil {
		logger.ErrorContext(r.Context(), "pending testimonial list failed", "error", err)
		response.InternalError(w, "erro ao listar depoimentos pendentes")
		return
	}
	if out == nil {
		out = []domain.PendingTestimonial{}
	}
	response.WriteJSON(w, http.StatusOK, out)
}

func (h *TestimonialsHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "id inválido")
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "json inválido")
		return
	}
	status, ok := domain.ParseModeration(in.Status)
	if !ok {
		response.BadRequest(w, "status deve ser 'Aprovado' ou 'Rejeitado'")
		return
	}

	adminID := mw.AdminID(r)
	updated, err := h.Testimonials.SetStatusForAdmin(r.Context(), id, adminID, status)
	if err != nil {
		logger.ErrorContext(r.Context(), "testimonial moderation failed", "error", err)
		response.InternalError(w, "erro ao moderar depoimento")
		return
	}
	if !updated {
		response.NotFound(w, "Depoimento não encontrado")
		return
	}

	event := events.TestimonialModeratedEvent{
		TestimonialID: id,
		Status:        string(status),
		AdminID:       adminID,
	}
	if err := h.Bus.Publish(r.Context(), events.TestimonialModerated, event); err != nil {
		logger.ErrorContext(r.Context(), "failed to publish moderation event", "error", err, "testimonial_id", id)
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{
		"mensagem": fmt.Sprintf("Depoimento %d atualizado para %s", id, status),
	})
}
