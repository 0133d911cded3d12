package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/kmandell/mechanic-shop/internal/auth"
	"github.com/kmandell/mechanic-shop/internal/cache"
	"github.com/kmandell/mechanic-shop/internal/config"
	"github.com/kmandell/mechanic-shop/internal/handler"
	"github.com/kmandell/mechanic-shop/internal/middleware"
	"github.com/kmandell/mechanic-shop/internal/models"
	"github.com/kmandell/mechanic-shop/internal/ratelimit"
	"github.com/kmandell/mechanic-shop/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory service.Store used to exercise the HTTP surface
// without a database.
type memStore struct {
	mu        sync.Mutex
	customers map[int64]*models.Customer
	mechanics map[int64]*models.Mechanic
	tickets   map[int64]*models.ServiceTicket
	items     map[int64]*models.InventoryItem
	parts     map[int64]map[int64]bool
	nextID    int64
}

func newMemStore() *memStore {
	return &memStore{
		customers: make(map[int64]*models.Customer),
		mechanics: make(map[int64]*models.Mechanic),
		tickets:   make(map[int64]*models.ServiceTicket),
		items:     make(map[int64]*models.InventoryItem),
		parts:     make(map[int64]map[int64]bool),
	}
}

func (m *memStore) seq() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateCustomer(customer *models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.customers {
		if existing.Email == customer.Email {
			return models.ErrEmailTaken
		}
	}
	customer.ID = m.seq()
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	stored := *customer
	m.customers[customer.ID] = &stored
	return nil
}

func (m *memStore) FindCustomerByID(id int64) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	customer, ok := m.customers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *customer
	return &copied, nil
}

func (m *memStore) FindCustomerByEmail(email string) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, customer := range m.customers {
		if customer.Email == email {
			copied := *customer
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memStore) ListCustomers() ([]*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Customer, 0, len(m.customers))
	for _, customer := range m.customers {
		copied := *customer
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateCustomer(customer *models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[customer.ID]; !ok {
		return models.ErrNotFound
	}
	for _, existing := range m.customers {
		if existing.ID != customer.ID && existing.Email == customer.Email {
			return models.ErrEmailTaken
		}
	}
	customer.UpdatedAt = time.Now()
	stored := *customer
	m.customers[customer.ID] = &stored
	return nil
}

func (m *memStore) DeleteCustomer(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.customers, id)
	return nil
}

func (m *memStore) CreateMechanic(mechanic *models.Mechanic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.mechanics {
		if existing.Email == mechanic.Email {
			return models.ErrEmailTaken
		}
	}
	mechanic.ID = m.seq()
	mechanic.CreatedAt = time.Now()
	mechanic.UpdatedAt = mechanic.CreatedAt
	stored := *mechanic
	m.mechanics[mechanic.ID] = &stored
	return nil
}

func (m *memStore) FindMechanicByID(id int64) (*models.Mechanic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mechanic, ok := m.mechanics[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *mechanic
	return &copied, nil
}

func (m *memStore) ListMechanics() ([]*models.Mechanic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Mechanic, 0, len(m.mechanics))
	for _, mechanic := range m.mechanics {
		copied := *mechanic
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateMechanic(mechanic *models.Mechanic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.mechanics[mechanic.ID]; !ok {
		return models.ErrNotFound
	}
	for _, existing := range m.mechanics {
		if existing.ID != mechanic.ID && existing.Email == mechanic.Email {
			return models.ErrEmailTaken
		}
	}
	mechanic.UpdatedAt = time.Now()
	stored := *mechanic
	m.mechanics[mechanic.ID] = &stored
	return nil
}

func (m *memStore) DeleteMechanic(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.mechanics[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.mechanics, id)
	for _, ticket := range m.tickets {
		if ticket.MechanicID != nil && *ticket.MechanicID == id {
			ticket.MechanicID = nil
		}
	}
	return nil
}

func (m *memStore) CreateTicket(ticket *models.ServiceTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ticket.ID = m.seq()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	m.tickets[ticket.ID] = &stored
	return nil
}

func (m *memStore) FindTicketByID(id int64) (*models.ServiceTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ticket, ok := m.tickets[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *ticket
	return &copied, nil
}

func (m *memStore) ListTickets() ([]*models.ServiceTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticketsLocked(func(*models.ServiceTicket) bool { return true }), nil
}

func (m *memStore) ListTicketsByCustomer(customerID int64) ([]*models.ServiceTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticketsLocked(func(t *models.ServiceTicket) bool {
		return t.CustomerID == customerID
	}), nil
}

func (m *memStore) ListOverdueTickets(before time.Time) ([]*models.ServiceTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticketsLocked(func(t *models.ServiceTicket) bool {
		return t.Status != models.StatusCompleted && t.CreatedAt.Before(before)
	}), nil
}

func (m *memStore) ticketsLocked(keep func(*models.ServiceTicket) bool) []*models.ServiceTicket {
	out := make([]*models.ServiceTicket, 0, len(m.tickets))
	for _, ticket := range m.tickets {
		if keep(ticket) {
			copied := *ticket
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memStore) UpdateTicket(ticket *models.ServiceTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tickets[ticket.ID]; !ok {
		return models.ErrNotFound
	}
	ticket.UpdatedAt = time.Now()
	stored := *ticket
	m.tickets[ticket.ID] = &stored
	return nil
}

func (m *memStore) DeleteTicket(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tickets[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.tickets, id)
	delete(m.parts, id)
	return nil
}

func (m *memStore) AddTicketPart(ticketID, itemID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.parts[ticketID] == nil {
		m.parts[ticketID] = make(map[int64]bool)
	}
	if m.parts[ticketID][itemID] {
		return models.ErrPartAlreadyAdded
	}
	m.parts[ticketID][itemID] = true
	return nil
}

func (m *memStore) RemoveTicketPart(ticketID, itemID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.parts[ticketID][itemID] {
		return models.ErrPartNotOnTicket
	}
	delete(m.parts[ticketID], itemID)
	return nil
}

func (m *memStore) ListTicketParts(ticketID int64) ([]*models.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.InventoryItem, 0, len(m.parts[ticketID]))
	for itemID := range m.parts[ticketID] {
		if item, ok := m.items[itemID]; ok {
			copied := *item
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) CreateInventoryItem(item *models.InventoryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.seq()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *memStore) FindInventoryItemByID(id int64) (*models.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (m *memStore) ListInventoryItems() ([]*models.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.InventoryItem, 0, len(m.items))
	for _, item := range m.items {
		copied := *item
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateInventoryItem(item *models.InventoryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return models.ErrNotFound
	}
	item.UpdatedAt = time.Now()
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *memStore) DeleteInventoryItem(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

// fakeMailer records notifications instead of sending them.
type fakeMailer struct {
	mu        sync.Mutex
	completed []int64
	reminders []int64
}

func (f *fakeMailer) SendTicketCompleted(to, name string, ticket *models.ServiceTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = append(f.completed, ticket.ID)
	return nil
}

func (f *fakeMailer) SendOverdueReminder(to, name string, ticket *models.ServiceTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reminders = append(f.reminders, ticket.ID)
	return nil
}

func (f *fakeMailer) completedTickets() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.completed...)
}

func (f *fakeMailer) remindedTickets() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.reminders...)
}

type testEnv struct {
	router http.Handler
	store  *memStore
	mailer *fakeMailer
	tokens *auth.TokenService
	svc    *service.Service
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		Port:              "8080",
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		CacheTTL:          300 * time.Second,
		MechanicsCacheTTL: 600 * time.Second,
		OverdueAfter:      168 * time.Hour,
	}

	store := newMemStore()
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	responseCache := cache.NewStore(cfg.CacheTTL)
	mailer := &fakeMailer{}
	svc := service.NewService(store, tokens, responseCache, mailer, logger, cfg)
	h := handler.NewHandler(svc, responseCache, cfg, logger)

	router, err := h.Router(middleware.RequireAuth(tokens, store, logger), ratelimit.New(logger))
	require.NoError(t, err)

	return &testEnv{
		router: router,
		store:  store,
		mailer: mailer,
		tokens: tokens,
		svc:    svc,
		cfg:    cfg,
	}
}

// do performs a request against the full router. A non-empty token is sent
// as a bearer credential.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// seedCustomer registers a customer through the service layer so tests do
// not spend the per-route creation quota on fixtures.
func (e *testEnv) seedCustomer(t *testing.T, email string) *models.Customer {
	t.Helper()
	customer, err := e.svc.RegisterCustomer(service.CreateCustomerInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     email,
		Password:  "s3cret-pass",
	})
	require.NoError(t, err)
	return customer
}

func (e *testEnv) seedMechanic(t *testing.T, email string) *models.Mechanic {
	t.Helper()
	mechanic, err := e.svc.CreateMechanic(service.CreateMechanicInput{
		Name:   "Max Wrench",
		Email:  email,
		Salary: 52000,
	})
	require.NoError(t, err)
	return mechanic
}

func (e *testEnv) seedTicket(t *testing.T, customerID int64) *models.ServiceTicket {
	t.Helper()
	ticket, err := e.svc.CreateTicket(service.CreateTicketInput{
		CustomerID:  customerID,
		VehicleInfo: "2019 Honda Civic",
		Description: "brakes squealing",
	})
	require.NoError(t, err)
	return ticket
}

func (e *testEnv) seedItem(t *testing.T, name string) *models.InventoryItem {
	t.Helper()
	item, err := e.svc.CreateInventoryItem(service.CreateInventoryInput{
		Name:     name,
		Quantity: 10,
		Price:    49.99,
	})
	require.NoError(t, err)
	return item
}

func (e *testEnv) tokenFor(t *testing.T, customer *models.Customer) string {
	t.Helper()
	token, err := e.tokens.Issue(customer.ID, customer.Email)
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
