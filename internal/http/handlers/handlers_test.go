package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/go-chi/chi/v5"

	"github.com/laisvitor/wedding-backend/internal/domain"
	"github.com/laisvitor/wedding-backend/internal/http/handlers"
	mw "github.com/laisvitor/wedding-backend/internal/http/middleware"
	"github.com/laisvitor/wedding-backend/internal/platform/session"
	"github.com/laisvitor/wedding-backend/internal/utils"
	"github.com/laisvitor/wedding-backend/pkg/events"
)

// ---------- Mocks ----------

type recordingBus struct {
	subjects []string
}

func (b *recordingBus) Publish(_ context.Context, subject string, _ interface{}) error {
	b.subjects = append(b.subjects, subject)
	return nil
}

func (b *recordingBus) Close() error { return nil }

type mockAdminsRepo struct {
	admins map[string]*domain.Admin
}

func (m *mockAdminsRepo) FindByUsername(_ context.Context, username string) (*domain.Admin, error) {
	if a, ok := m.admins[username]; ok {
		return a, nil
	}
	return nil, nil
}

type mockGuestsRepo struct {
	nextID int64
	guests map[int64]*domain.Guest
}

func newMockGuestsRepo() *mockGuestsRepo {
	return &mockGuestsRepo{nextID: 1, guests: make(map[int64]*domain.Guest)}
}

func (m *mockGuestsRepo) FindByCode(_ context.Context, code string) (*domain.Guest, error) {
	for _, g := range m.guests {
		if g.InviteCode == code {
			copied := *g
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockGuestsRepo) ConfirmByCode(_ context.Context, code string, status domain.RSVPStatus, adults int, dietary string) (*domain.Guest, error) {
	for _, g := range m.guests {
		if g.InviteCode == code {
			g.Status = status
			g.AdultCount = adults
			g.DietaryRestrictions = dietary
			copied := *g
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockGuestsRepo) ListByAdmin(_ context.Context, adminID int64) ([]domain.Guest, error) {
	var out []domain.Guest
	for _, g := range m.guests {
		if g.AdminID == adminID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockGuestsRepo) Create(_ context.Context, adminID int64, name string) (*domain.Guest, error) {
	g := &domain.Guest{
		ID:         m.nextID,
		AdminID:    adminID,
		InviteCode: utils.NewInviteCode(),
		Name:       name,
		Status:     domain.RSVPPending,
	}
	m.nextID++
	m.guests[g.ID] = g
	copied := *g
	return &copied, nil
}

func (m *mockGuestsRepo) GetForAdmin(_ context.Context, id, adminID int64) (*domain.Guest, error) {
	g, ok := m.guests[id]
	if !ok || g.AdminID != adminID {
		return nil, nil
	}
	copied := *g
	return &copied, nil
}

func (m *mockGuestsRepo) UpdateForAdmin(_ context.Context, id, adminID int64, name string, status domain.RSVPStatus, adults int, dietary string) (bool, error) {
	g, ok := m.guests[id]
	if !ok || g.AdminID != adminID {
		return false, nil
	}
	g.Name = name
	g.Status = status
	g.AdultCount = adults
	g.DietaryRestrictions = dietary
	return true, nil
}

type mockGiftsRepo struct {
	nextID int64
	gifts  map[int64]*domain.Gift
}

func newMockGiftsRepo() *mockGiftsRepo {
	return &mockGiftsRepo{nextID: 1, gifts: make(map[int64]*domain.Gift)}
}

func (m *mockGiftsRepo) sorted(filter func(*domain.Gift) bool) []domain.Gift {
	var out []domain.Gift
	for _, g := range m.gifts {
		if filter(g) {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *mockGiftsRepo) ListActive(_ context.Context) ([]domain.Gift, error) {
	return m.sorted(func(g *domain.Gift) bool { return g.IsActive }), nil
}

func (m *mockGiftsRepo) ListByAdmin(_ context.Context, adminID int64) ([]domain.Gift, error) {
	return m.sorted(func(g *domain.Gift) bool { return g.AdminID == adminID }), nil
}

func (m *mockGiftsRepo) Create(_ context.Context, adminID int64, in *domain.GiftReq) (int64, error) {
	g := &domain.Gift{
		ID:          m.nextID,
		AdminID:     adminID,
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		UnitValue:   in.UnitValue,
		IsActive:    true,
	}
	m.nextID++
	m.gifts[g.ID] = g
	return g.ID, nil
}

func (m *mockGiftsRepo) GetForAdmin(_ context.Context, id, adminID int64) (*domain.Gift, error) {
	g, ok := m.gifts[id]
	if !ok || g.AdminID != adminID {
		return nil, nil
	}
	copied := *g
	return &copied, nil
}

func (m *mockGiftsRepo) UpdateForAdmin(_ context.Context, id, adminID int64, in *domain.GiftReq) (bool, error) {
	g, ok := m.gifts[id]
	if !ok || g.AdminID != adminID {
		return false, nil
	}
	g.Name = in.Name
	g.Description = in.Description
	g.ImageURL = in.ImageURL
	g.UnitValue = in.UnitValue
	return true, nil
}

func (m *mockGiftsRepo) SetActiveForAdmin(_ context.Context, id, adminID int64, active bool) (bool, error) {
	g, ok := m.gifts[id]
	if !ok || g.AdminID != adminID {
		return false, nil
	}
	g.IsActive = active
	return true, nil
}

type mockTestimonialsRepo struct {
	nextID       int64
	testimonials map[int64]*domain.Testimonial
	guests       *mockGuestsRepo
}

func newMockTestimonialsRepo(guests *mockGuestsRepo) *mockTestimonialsRepo {
	return &mockTestimonialsRepo{nextID: 1, testimonials: make(map[int64]*domain.Testimonial), guests: guests}
}

func (m *mockTestimonialsRepo) ListApproved(_ context.Context) ([]domain.PublicTestimonial, error) {
	var out []domain.PublicTestimonial
	for _, t := range m.testimonials {
		if t.Status != domain.ApprovalApproved {
			continue
		}
		name := ""
		if g, ok := m.guests.guests[t.GuestID]; ok {
			name = g.Name
		}
		out = append(out, domain.PublicTestimonial{
			Message: t.Message,
			Name:    name,
			Date:    t.CreatedAt.Format("02/01/2006"),
		})
	}
	return out, nil
}

func (m *mockTestimonialsRepo) Create(_ context.Context, guestID int64, message string) (*domain.Testimonial, error) {
	t := &domain.Testimonial{
		ID:      m.nextID,
		GuestID: guestID,
		Message: message,
		Status:  domain.ApprovalPending,
	}
	m.nextID++
	m.testimonials[t.ID] = t
	copied := *t
	return &copied, nil
}

func (m *mockTestimonialsRepo) ListPendingForAdmin(_ context.Context, adminID int64) ([]domain.PendingTestimonial, error) {
	var out []domain.PendingTestimonial
	for _, t := range m.testimonials {
		if t.Status != domain.ApprovalPending {
			continue
		}
		g, ok := m.guests.guests[t.GuestID]
		if !ok || g.AdminID != adminID {
			continue
		}
		out = append(out, domain.PendingTestimonial{ID: t.ID, Message: t.Message, Name: g.Name})
	}
	return out, nil
}

func (m *mockTestimonialsRepo) SetStatusForAdmin(_ context.Context, id, adminID int64, status domain.ApprovalStatus) (bool, error) {
	t, ok := m.testimonials[id]
	if !ok {
		return false, nil
	}
	g, ok := m.guests.guests[t.GuestID]
	if !ok || g.AdminID != adminID {
		return false, nil
	}
	t.Status = status
	return true, nil
}

type mockStatsRepo struct {
	guests       *mockGuestsRepo
	testimonials *mockTestimonialsRepo
}

func (m *mockStatsRepo) Dashboard(ctx context.Context, adminID int64) (*domain.DashboardStats, error) {
	var s domain.DashboardStats
	for _, g := range m.guests.guests {
		if g.AdminID != adminID {
			continue
		}
		switch g.Status {
		case domain.RSVPConfirmed:
			s.Confirmed++
		case domain.RSVPPending:
			s.PendingRSVP++
		}
	}
	pending, _ := m.testimonials.ListPendingForAdmin(ctx, adminID)
	s.PendingTestimonials = int64(len(pending))
	return &s, nil
}

// ---------- Test Setup ----------

const adminKey = "123"

type testEnv struct {
	server       *httptest.Server
	guests       *mockGuestsRepo
	gifts        *mockGiftsRepo
	testimonials *mockTestimonialsRepo
	bus          *recordingBus
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	hash, err := argon2id.CreateHash(adminKey, argon2id.DefaultParams)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	admins := &mockAdminsRepo{admins: map[string]*domain.Admin{
		"admin": {ID: 1, Username: "admin", KeyHash: hash},
	}}
	guests := newMockGuestsRepo()
	gifts := newMockGiftsRepo()
	testimonials := newMockTestimonialsRepo(guests)
	stats := &mockStatsRepo{guests: guests, testimonials: testimonials}
	bus := &recordingBus{}

	sessions := session.NewMemoryStore(0)
	requireAdmin := mw.RequireAdmin(sessions)

	authHandler := handlers.NewAuthHandler(admins, sessions)
	rsvpHandler := handlers.NewRSVPHandler(guests, bus)
	testimonialsHandler := handlers.NewTestimonialsHandler(guests, testimonials, bus)
	giftsHandler := handlers.NewGiftsHandler(gifts)
	guestsHandler := handlers.NewGuestsHandler(guests, bus)
	dashboardHandler := handlers.NewDashboardHandler(stats)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/login_admin", authHandler.Login)
		r.Post("/rsvp/verificar", rsvpHandler.Verify)
		r.Post("/rsvp/confirmar", rsvpHandler.Confirm)
		r.Get("/depoimentos", testimonialsHandler.ListApproved)
		r.Post("/depoimentos", testimonialsHandler.Submit)
		r.Get("/presentes", giftsHandler.ListActive)

		r.With(requireAdmin).Post("/logout_admin", authHandler.Logout)

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/dashboard_stats", dashboardHandler.Stats)
			r.Route("/depoimentos", func(r chi.Router) {
				r.Get("/pendentes", testimonialsHandler.ListPending)
				r.Put("/{id}/status", testimonialsHandler.SetStatus)
			})
			r.Route("/presentes", func(r chi.Router) {
				r.Get("/", giftsHandler.ListMine)
				r.Post("/", giftsHandler.Create)
				r.Get("/{id}", giftsHandler.Get)
				r.Put("/{id}", giftsHandler.Update)
				r.Put("/{id}/status", giftsHandler.SetStatus)
			})
			r.Route("/convidados", func(r chi.Router) {
				r.Get("/", guestsHandler.List)
				r.Post("/", guestsHandler.Create)
				r.Get("/{id}", guestsHandler.Get)
				r.Put("/{id}", guestsHandler.Update)
			})
		})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &testEnv{server: server, guests: guests, gifts: gifts, testimonials: testimonials, bus: bus}
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	resp := postJSON(t, e.server.URL+"/api/login_admin",
		map[string]string{"username": "admin", "chave_admin": adminKey}, http.StatusOK)
	defer resp.Body.Close()

	var out struct {
		Token   string `json:"token"`
		AdminID int64  `json:"admin_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if out.Token == "" || out.AdminID != 1 {
		t.Fatalf("unexpected login response: %+v", out)
	}
	return out.Token
}

// ---------- Tests ----------

func TestLogin(t *testing.T) {
	env := setupTestServer(t)

	t.Run("missing fields", func(t *testing.T) {
		postJSON(t, env.server.URL+"/api/login_admin",
			map[string]string{"username": "admin"}, http.StatusBadRequest).Body.Close()
	})

	t.Run("wrong key", func(t *testing.T) {
		postJSON(t, env.server.URL+"/api/login_admin",
			map[string]string{"username": "admin", "chave_admin": "nope"}, http.StatusUnauthorized).Body.Close()
	})

	t.Run("unknown user", func(t *testing.T) {
		postJSON(t, env.server.URL+"/api/login_admin",
			map[string]string{"username": "ghost", "chave_admin": adminKey}, http.StatusUnauthorized).Body.Close()
	})

	t.Run("success authorizes admin calls", func(t *testing.T) {
		token := env.login(t)
		getAuth(t, env.server.URL+"/api/admin/dashboard_stats", token, http.StatusOK).Body.Close()
	})
}

func TestAdminRoutes_RejectBadTokens(t *testing.T) {
	env := setupTestServer(t)

	t.Run("no token", func(t *testing.T) {
		get(t, env.server.URL+"/api/admin/dashboard_stats", http.StatusForbidden).Body.Close()
	})

	t.Run("garbage token", func(t *testing.T) {
		getAuth(t, env.server.URL+"/api/admin/convidados/", "garbage", http.StatusForbidden).Body.Close()
	})
}

func TestLogout_RevokesToken(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t)

	req, _ := http.NewRequest(http.MethodPost, env.server.URL+"/api/logout_admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}

	getAuth(t, env.server.URL+"/api/admin/dashboard_stats", token, http.StatusForbidden).Body.Close()
}

func TestRSVP_UnknownCode_NotFound(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name string
		url  string
		body map[string]any
	}{
		{"verify", "/api/rsvp/verificar", map[string]any{"codigo_convite": "NOPE00"}},
		{"confirm", "/api/rsvp/confirmar", map[string]any{"codigo_convite": "NOPE00", "status_rsvp": "Confirmado"}},
		{"testimonial submit", "/api/depoimentos", map[string]any{"codigo_convite": "NOPE00", "mensagem": "oi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postJSON(t, env.server.URL+tt.url, tt.body, http.StatusNotFound).Body.Close()
		})
	}
}

func TestRSVP_Confirm_InvalidStatus_BadRequest(t *testing.T) {
	env := setupTestServer(t)
	g, _ := env.guests.Create(context.Background(), 1, "Maria")

	for _, status := range []string{"", "Pendente", "Talvez", "confirmado"} {
		t.Run("status "+status, func(t *testing.T) {
			postJSON(t, env.server.URL+"/api/rsvp/confirmar", map[string]any{
				"codigo_convite": g.InviteCode,
				"status_rsvp":    status,
			}, http.StatusBadRequest).Body.Close()
		})
	}
}

func TestRSVP_ConfirmThenVerify_ReflectsStatus(t *testing.T) {
	env := setupTestServer(t)
	g, _ := env.guests.Create(context.Background(), 1, "João")

	postJSON(t, env.server.URL+"/api/rsvp/confirmar", map[string]any{
		"codigo_convite":         g.InviteCode,
		"status_rsvp":            "Confirmado",
		"qtd_adultos":            2,
		"restricoes_alimentares": "sem glúten",
	}, http.StatusOK).Body.Close()

	resp := postJSON(t, env.server.URL+"/api/rsvp/verificar",
		map[string]any{"codigo_convite": g.InviteCode}, http.StatusOK)
	defer resp.Body.Close()

	var out domain.GuestSummary
	json.NewDecoder(resp.Body).Decode(&out)
	if out.Status != domain.RSVPConfirmed {
		t.Fatalf("expected Confirmado, got %q", out.Status)
	}
	if out.ID != g.ID || out.Name != "João" {
		t.Fatalf("unexpected summary: %+v", out)
	}

	if len(env.bus.subjects) == 0 || env.bus.subjects[0] != events.RSVPConfirmed {
		t.Fatalf("expected rsvp event published, got %v", env.bus.subjects)
	}
}

func TestTestimonials_HiddenUntilApproved(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t)
	g, _ := env.guests.Create(context.Background(), 1, "Ana")

	postJSON(t, env.server.URL+"/api/depoimentos", map[string]any{
		"codigo_convite": g.InviteCode,
		"mensagem":       "Felicidades aos noivos!",
	}, http.StatusOK).Body.Close()

	// Not public while pending
	var public []domain.PublicTestimonial
	getDecode(t, env.server.URL+"/api/depoimentos", &public)
	if len(public) != 0 {
		t.Fatalf("pending testimonial leaked to public list: %+v", public)
	}

	// Visible in the moderation queue
	var pending []domain.PendingTestimonial
	getAuthDecode(t, env.server.URL+"/api/admin/depoimentos/pendentes", token, &pending)
	if len(pending) != 1 || pending[0].Name != "Ana" {
		t.Fatalf("expected one pending testimonial from Ana, got %+v", pending)
	}

	// Approve, then it is public
	putJSON(t, fmt.Sprintf("%s/api/admin/depoimentos/%d/status", env.server.URL, pending[0].ID),
		token, map[string]string{"status": "Aprovado"}, http.StatusOK)

	getDecode(t, env.server.URL+"/api/depoimentos", &public)
	if len(public) != 1 || public[0].Message != "Felicidades aos noivos!" {
		t.Fatalf("expected approved testimonial public, got %+v", public)
	}
}

func TestTestimonials_Moderation_InvalidStatus_BadRequest(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t)
	g, _ := env.guests.Create(context.Background(), 1, "Ana")
	tm, _ := env.testimonials.Create(context.Background(), g.ID, "oi")

	putJSON(t, fmt.Sprintf("%s/api/admin/depoimentos/%d/status", env.server.URL, tm.ID),
		token, map[string]string{"status": "Pendente"}, http.StatusBadRequest)
}

func TestTestimonials_SubmitWithoutMessage_BadRequest(t *testing.T) {
	env := setupTestServer(t)
	g, _ := env.guests.Create(context.Background(), 1, "Ana")

	postJSON(t, env.server.URL+"/api/depoimentos", map[string]any{
		"codigo_convite": g.InviteCode,
	}, http.StatusBadRequest).Body.Close()
}

func TestGifts_InactiveHiddenFromPublic(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t)

	resp := postAuthJSON(t, env.server.URL+"/api/admin/presentes/", token,
		map[string]any{"nome_presente": "Cota Lua de Mel", "valor_cota": 150.0}, http.StatusOK)
	var created struct {
		ID int64 `json:"id"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	putJSON(t, fmt.Sprintf("%s/api/admin/presentes/%d/status", env.server.URL, created.ID),
		token, map[string]any{"esta_ativo": false}, http.StatusOK)

	var public []domain.Gift
	getDecode(t, env.server.URL+"/api/presentes", &public)
	if len(public) != 0 {
		t.Fatalf("inactive gift visible publicly: %+v", public)
	}

	var mine []domain.Gift
	getAuthDecode(t, env.server.URL+"/api/admin/presentes/", token, &mine)
	if len(mine) != 1 || mine[0].IsActive {
		t.Fatalf("expected one inactive gift in admin list, got %+v", mine)
	}
}

func TestGifts_Create_Validation(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"valor_cota": 10.0}},
		{"missing value", map[string]any{"nome_presente": "Cota"}},
		{"negative value", map[string]any{"nome_presente": "Cota", "valor_cota": -5.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postAuthJSON(t, env.server.URL+"/api/admin/presentes/", token, tt.body, http.StatusBadRequest).Body.Close()
		})
	}
}

func TestGifts_EditPrice_PublicReflectsImmediately(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t)

	resp := postAuthJSON(t, env.server.URL+"/api/admin/presentes/", token,
		map[string]any{"nome_presente": "Jantar", "valor_cota": 80.0}, http.StatusOK)
	var created struct {
		ID int64 `json:"id"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	putJSON(t, fmt.Sprintf("%s/api/admin/presentes/%d", env.server.URL, created.ID),
		token, map[string]any{"nome_presente": "Jantar", "valor_cota": 95.5}, http.StatusOK)

	var public []domain.Gift
	getDecode(t, env.server.URL+"/api/presentes", &public)
	if len(public) != 1 || public[0].UnitValue != 95.5 {
		t.Fatalf("expected updated price 95.5 in public list, got %+v", public)
	}
}

func TestGifts_NotOwned_NotFound(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t)

	// Gift owned by a different admin
	env.gifts.gifts[99] = &domain.Gift{ID: 99, AdminID: 2, Name: "Alheio", UnitValue: 10, IsActive: true}

	getAuth(t, env.server.URL+"/api/admin/presentes/99", token, http.StatusNotFound).Body.Close()
	putJSON(t, env.server.URL+"/api/admin/presentes/99", token,
		map[string]any{"nome_presente": "Hack", "valor_cota": 1.0}, http.StatusNotFound)
}

func TestGuests_Create_CodeShape(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t)

	createGuest := func(name string) domain.GuestCreateRes {
		resp := postAuthJSON(t, env.server.URL+"/api/admin/convidados/", token,
			map[string]any{"nome_convidado": name}, http.StatusOK)
		defer resp.Body.Close()
		var out domain.GuestCreateRes
		json.NewDecoder(resp.Body).Decode(&out)
		return out
	}

	first := createGuest("Carlos")
	second := createGuest("Beatriz")

	if len(first.InviteCode) != utils.InviteCodeLength || len(second.InviteCode) != utils.InviteCodeLength {
		t.Fatalf("expected 6-char codes, got %q and %q", first.InviteCode, second.InviteCode)
	}
	if first.InviteCode == second.InviteCode {
		t.Fatalf("back-to-back creations produced the same code %q", first.InviteCode)
	}
	if first.ID == 0 || second.ID == 0 {
		t.Fatal("expected ids for created guests")
	}
}

func TestGuests_Create_MissingName_BadRequest(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t)
	postAuthJSON(t, env.server.URL+"/api/admin/convidados/", token,
		map[string]any{"nome_convidado": "  "}, http.StatusBadRequest).Body.Close()
}

func TestGuests_Update_Validation(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t)
	g, _ := env.guests.Create(context.Background(), 1, "Pedro")

	t.Run("invalid status", func(t *testing.T) {
		putJSON(t, fmt.Sprintf("%s/api/admin/convidados/%d", env.server.URL, g.ID),
			token, map[string]any{"nome_convidado": "Pedro", "status_rsvp": "Quem sabe"}, http.StatusBadRequest)
	})

	t.Run("unknown id", func(t *testing.T) {
		putJSON(t, env.server.URL+"/api/admin/convidados/4242",
			token, map[string]any{"nome_convidado": "Pedro", "status_rsvp": "Pendente"}, http.StatusNotFound)
	})

	t.Run("valid update", func(t *testing.T) {
		putJSON(t, fmt.Sprintf("%s/api/admin/convidados/%d", env.server.URL, g.ID),
			token, map[string]any{"nome_convidado": "Pedro Silva", "status_rsvp": "Recusado"}, http.StatusOK)

		var got domain.Guest
		getAuthDecode(t, fmt.Sprintf("%s/api/admin/convidados/%d", env.server.URL, g.ID), token, &got)
		if got.Name != "Pedro Silva" || got.Status != domain.RSVPDeclined {
			t.Fatalf("update not applied: %+v", got)
		}
	})
}

func TestEndToEnd_RSVPFlow(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t)

	// Admin creates a guest
	resp := postAuthJSON(t, env.server.URL+"/api/admin/convidados/", token,
		map[string]any{"nome_convidado": "Família Souza"}, http.StatusOK)
	var created domain.GuestCreateRes
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	// Guest verifies their own code
	resp = postJSON(t, env.server.URL+"/api/rsvp/verificar",
		map[string]any{"codigo_convite": created.InviteCode}, http.StatusOK)
	var summary domain.GuestSummary
	json.NewDecoder(resp.Body).Decode(&summary)
	resp.Body.Close()
	if summary.Status != domain.RSVPPending {
		t.Fatalf("fresh guest should be Pendente, got %q", summary.Status)
	}

	// Guest confirms with 2 adults
	postJSON(t, env.server.URL+"/api/rsvp/confirmar", map[string]any{
		"codigo_convite": created.InviteCode,
		"status_rsvp":    "Confirmado",
		"qtd_adultos":    2,
	}, http.StatusOK).Body.Close()

	// Admin list reflects the confirmation
	var guests []domain.Guest
	getAuthDecode(t, env.server.URL+"/api/admin/convidados/", token, &guests)
	if len(guests) != 1 {
		t.Fatalf("expected 1 guest, got %d", len(guests))
	}
	if guests[0].Status != domain.RSVPConfirmed || guests[0].AdultCount != 2 {
		t.Fatalf("confirmation not reflected: %+v", guests[0])
	}

	// Dashboard counts the confirmation
	var stats domain.DashboardStats
	getAuthDecode(t, env.server.URL+"/api/admin/dashboard_stats", token, &stats)
	if stats.Confirmed != 1 || stats.PendingRSVP != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

// ---------- Helper Functions ----------

func postJSON(t *testing.T, url string, data interface{}, expectedStatus int) *http.Response {
	t.Helper()

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(jsonBytes(data)))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	if resp.StatusCode != expectedStatus {
		t.Fatalf("POST %s: expected status %d, got %d", url, expectedStatus, resp.StatusCode)
	}
	return resp
}

func postAuthJSON(t *testing.T, url, token string, data interface{}, expectedStatus int) *http.Response {
	t.Helper()

	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonBytes(data)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	if resp.StatusCode != expectedStatus {
		t.Fatalf("POST %s: expected status %d, got %d", url, expectedStatus, resp.StatusCode)
	}
	return resp
}

func putJSON(t *testing.T, url, token string, data interface{}, expectedStatus int) {
	t.Helper()

	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewBuffer(jsonBytes(data)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != expectedStatus {
		t.Fatalf("PUT %s: expected status %d, got %d", url, expectedStatus, resp.StatusCode)
	}
}

func get(t *testing.T, url string, expectedStatus int) *http.Response {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	if resp.StatusCode != expectedStatus {
		t.Fatalf("GET %s: expected status %d, got %d", url, expectedStatus, resp.StatusCode)
	}
	return resp
}

func getAuth(t *testing.T, url, token string, expectedStatus int) *http.Response {
	t.Helper()

	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	if resp.StatusCode != expectedStatus {
		t.Fatalf("GET %s: expected status %d, got %d", url, expectedStatus, resp.StatusCode)
	}
	return resp
}

func getDecode(t *testing.T, url string, out interface{}) {
	t.Helper()
	resp := get(t, url, http.StatusOK)
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode GET %s: %v", url, err)
	}
}

func getAuthDecode(t *testing.T, url, token string, out interface{}) {
	t.Helper()
	resp := getAuth(t, url, token, http.StatusOK)
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode GET %s: %v", url, err)
	}
}

func jsonBytes(data interface{}) []byte {
	b, _ := json.Marshal(data)
	return b
}
