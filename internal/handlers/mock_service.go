package handlers

import (
	"context"
	"math/rand/v2"
	"net/http"

	"optiwatt/internal/models"
	"optiwatt/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockSession struct {
	loginUser  models.User
	loginToken string
	loginErr   error
	logoutErr  error
	current    models.User
	currentErr error
	theme      string
	themeErr   error
	setErr     error
	parseID    string
	parseErr   error

	lastLogin      service.LoginParams
	lastSetTheme   string
	lastParseToken string
	logoutCalls    int
}

func (m *mockSession) Login(ctx context.Context, p service.LoginParams) (models.User, string, error) {
	m.lastLogin = p
	return m.loginUser, m.loginToken, m.loginErr
}
func (m *mockSession) Logout(ctx context.Context) error {
	m.logoutCalls++
	return m.logoutErr
}
func (m *mockSession) CurrentUser(ctx context.Context) (models.User, error) {
	return m.current, m.currentErr
}
func (m *mockSession) Theme(ctx context.Context) (string, error) {
	return m.theme, m.themeErr
}
func (m *mockSession) SetTheme(ctx context.Context, theme string) (string, error) {
	m.lastSetTheme = theme
	return theme, m.setErr
}
func (m *mockSession) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSuggestions struct {
	items    []models.Suggestion
	fresh    []models.Suggestion
	replaced bool

	refreshCalls int
}

func (m *mockSuggestions) List() []models.Suggestion { return m.items }
func (m *mockSuggestions) Refresh(ctx context.Context) ([]models.Suggestion, bool) {
	m.refreshCalls++
	return m.fresh, m.replaced
}

type mockReports struct {
	ai          models.Report
	expert      models.Report
	expertErr   error
	latest      models.Report
	latestErr   error
	delivery    models.Delivery
	deliveryErr error

	lastChannel string
}

func (m *mockReports) GenerateAI(ctx context.Context) models.Report { return m.ai }
func (m *mockReports) RequestExpert(ctx context.Context) (models.Report, error) {
	return m.expert, m.expertErr
}
func (m *mockReports) Latest() (models.Report, error) { return m.latest, m.latestErr }
func (m *mockReports) Deliver(ctx context.Context, channel string) (models.Delivery, error) {
	m.lastChannel = channel
	return m.delivery, m.deliveryErr
}

// ---- Shared Test Helpers ----

const testToken = "valid"

func testAppliances() []models.Appliance {
	return []models.Appliance{
		{ID: "1", Name: "Takshila - 201", Icon: "building", UsageKWh: 4, Status: models.StatusOn, DailyHours: 24, Efficiency: "A"},
		{ID: "2", Name: "Main Server Room", Icon: "oven", UsageKWh: 12, Status: models.StatusOff, DailyHours: 0, Efficiency: "C"},
	}
}

func testBlocks() []models.Block {
	return []models.Block{
		{ID: "b1", Name: "Takshila", Icon: "building", Address: "North Wing", Rooms: []models.Room{{ID: "r201", Name: "Room 201"}}},
	}
}

func testHistory() []models.EnergyReading {
	return []models.EnergyReading{{Time: "00:00", Usage: 8}, {Time: "03:00", Usage: 4}}
}

// newTestServices builds real in-memory stores plus mocks for the
// session, suggestion and report services.
func newTestServices() (*service.Service, *mockSession) {
	sess := &mockSession{parseID: "u-1", current: models.User{ID: "u-1", Name: "Alex Rivera", IsAuthenticated: true}}
	appliances := service.NewApplianceRegistry(testAppliances())
	hierarchy := service.NewHierarchyStore(testBlocks(), 0)
	return &service.Service{
		Session:       sess,
		Hierarchy:     hierarchy,
		Appliances:    appliances,
		Dashboard:     service.NewDashboardService(testHistory(), appliances, service.DefaultRatePerKWh),
		RoomLogs:      service.NewRoomLogService(hierarchy, service.NewMockLogGenerator(rand.New(rand.NewPCG(7, 7)))),
		Suggestions:   &mockSuggestions{},
		Reports:       &mockReports{},
		Notifications: service.NewNotificationCenter([]models.Notification{
			{ID: "n1", Title: "High Usage Alert", Type: "warning"},
			{ID: "n2", Title: "Maintenance Schedule", Type: "info", Read: true},
		}),
	}, sess
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
