package domain

import "time"

type RSVPStatus string

const (
	RSVPPending   RSVPStatus = "Pendente"
	RSVPConfirmed RSVPStatus = "Confirmado"
	RSVPDeclined  RSVPStatus = "Recusado"
)

func ParseRSVPStatus(s string) (RSVPStatus, bool) {
	switch RSVPStatus(s) {
	case RSVPPending, RSVPConfirmed, RSVPDeclined:
		return RSVPStatus(s), true
	default:
		return "", false
	}
}

// ParseRSVPReply accepts only the two statuses a guest may submit.
func ParseRSVPReply(s string) (RSVPStatus, bool) {
	switch RSVPStatus(s) {
	case RSVPConfirmed, RSVPDeclined:
		return RSVPStatus(s), true
	default:
		return "", false
	}
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pendente"
	ApprovalApproved ApprovalStatus = "Aprovado"
	ApprovalRejected ApprovalStatus = "Rejeitado"
)

// ParseModeration accepts only the two statuses an admin may set.
func ParseModeration(s string) (ApprovalStatus, bool) {
	switch ApprovalStatus(s) {
	case ApprovalApproved, ApprovalRejected:
		return ApprovalStatus(s), true
	default:
		return "", false
	}
}

type Admin struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	KeyHash  string `json:"-"`
}

type Guest struct {
	ID                  int64      `json:"id"`
	AdminID             int64      `json:"admin_id"`
	InviteCode          string     `json:"codigo_convite"`
	Name                string     `json:"nome_convidado"`
	Status              RSVPStatus `json:"status_rsvp"`
	AdultCount          int        `json:"qtd_adultos"`
	DietaryRestrictions string     `json:"restricoes_alimentares"`
	ConfirmedAt         *time.Time `json:"data_confirmacao,omitempty"`
}

type Gift struct {
	ID          int64   `json:"id"`
	AdminID     int64   `json:"admin_id"`
	Name        string  `json:"nome_presente"`
	Description string  `json:"descricao"`
	ImageURL    string  `json:"imagem_url"`
	UnitValue   float64 `json:"valor_cota"`
	IsActive    bool    `json:"esta_ativo"`
}

type Testimonial struct {
	ID        int64          `json:"id"`
	GuestID   int64          `json:"convidado_id"`
	Message   string         `json:"mensagem"`
	Status    ApprovalStatus `json:"status_aprovacao"`
	CreatedAt time.Time      `json:"data_criacao"`
}

// GuestSummary is what the public verify endpoint returns.
type GuestSummary struct {
	ID     int64      `json:"id"`
	Name   string     `json:"nome_convidado"`
	Status RSVPStatus `json:"status_rsvp"`
}

type ConfirmRSVPReq struct {
	InviteCode          string `json:"codigo_convite"`
	Status              string `json:"status_rsvp"`
	AdultCount          int    `json:"qtd_adultos"`
	DietaryRestrictions string `json:"restricoes_alimentares"`
}

// PublicTestimonial is the approved-carousel row: message, guest name and
// the creation date already formatted for display (DD/MM/YYYY).
type PublicTestimonial struct {
	Message string `json:"texto"`
	Name    string `json:"nome"`
	Date    string `json:"data"`
}

// PendingTestimonial is a moderation-queue row.
type PendingTestimonial struct {
	ID      int64  `json:"id"`
	Message string `json:"mensagem"`
	Name    string `json:"nome_convidado"`
}

type GiftReq struct {
	Name        string  `json:"nome_presente"`
	Description string  `json:"descricao"`
	ImageURL    string  `json:"imagem_url"`
	UnitValue   float64 `json:"valor_cota"`
}

type GuestCreateReq struct {
	Name string `json:"nome_convidado"`
}

type GuestCreateRes struct {
	Message    string `json:"mensagem"`
	ID         int64  `json:"id"`
	InviteCode string `json:"codigo"`
}

type GuestUpdateReq struct {
	Name                string `json:"nome_convidado"`
	Status              string `json:"status_rsvp"`
	AdultCount          int    `json:"qtd_adultos"`
	DietaryRestrictions string `json:"restricoes_alimentares"`
}

type DashboardStats struct {
	Confirmed           int64 `json:"confirmados"`
	PendingRSVP         int64 `json:"pendentes_rsvp"`
	PendingTestimonials int64 `json:"recados_moderacao"`
}
