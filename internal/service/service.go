package service

import (
	"context"
	"time"

	"optiwatt/internal/logger"
	"optiwatt/internal/models"
	"optiwatt/internal/repository"
	"optiwatt/internal/seed"
)

// Session covers the mock sign-in and the locally persisted preferences.
type Session interface {
	Login(ctx context.Context, p LoginParams) (models.User, string, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.User, error)
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) (string, error)
	ParseToken(accessToken string) (string, error)
}

// Hierarchy manages blocks and their rooms.
type Hierarchy interface {
	Blocks() []models.Block
	Block(id string) (models.Block, bool)
	Room(blockID, roomID string) (models.Room, bool)
	AddBlock(name, address, icon string) (models.Block, bool)
	RenameBlock(id, name, address, icon string) (models.Block, bool)
	DeleteBlock(id string) (models.Block, bool)
	AddRoom(blockID, name string) (models.Room, bool)
	RenameRoom(blockID, roomID, name string) (models.Room, bool)
	DeleteRoom(blockID, roomID string) bool
	RequestDeleteBlock(id string) (models.PendingDeletion, bool)
	ConfirmDeletion(token string) (models.Block, bool)
	CancelDeletion(token string) bool
}

type Appliances interface {
	List() []models.Appliance
	Get(id string) (models.Appliance, bool)
	Toggle(id string) (models.Appliance, bool)
}

// Dashboard exposes the ratio-scaled usage projection.
type Dashboard interface {
	History() []models.EnergyReading
	Overview() models.Projection
	Project(selected []string) models.Projection
}

type RoomLogs interface {
	RoomLogs(blockID, roomID string) ([]models.DailyLog, bool)
}

type Suggestions interface {
	List() []models.Suggestion
	Refresh(ctx context.Context) ([]models.Suggestion, bool)
}

type Reports interface {
	GenerateAI(ctx context.Context) models.Report
	RequestExpert(ctx context.Context) (models.Report, error)
	Latest() (models.Report, error)
	Deliver(ctx context.Context, channel string) (models.Delivery, error)
}

type Notifications interface {
	List(f NotificationFilter) ([]models.Notification, error)
	UnreadCount() int
	MarkRead(id string) bool
	MarkAllRead() int
	Clear() int
}

// Service aggregates all sub-services.
type Service struct {
	Session
	Hierarchy
	Appliances
	Dashboard
	RoomLogs
	Suggestions
	Reports
	Notifications
}

// Options carries everything NewService needs besides the repositories.
type Options struct {
	Seed      *seed.Data
	Generator TextGenerator
	Deliverer ReportDeliverer
	LogSource Float64Source // nil means process-wide randomness

	Session     SessionConfig
	RatePerKWh  float64
	DeletionTTL time.Duration
	ExpertDelay time.Duration

	Log *logger.Logger
}

// NewService wires the repository layer and seed data into concrete services.
// Each store receives its own copy of the seed.
func NewService(repos *repository.Repository, opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	data := opts.Seed
	if data == nil {
		data = &seed.Data{}
	}

	appliances := NewApplianceRegistry(data.Appliances)
	hierarchy := NewHierarchyStore(data.Blocks, opts.DeletionTTL)

	return &Service{
		Session:       NewSessionService(repos.LocalState, opts.Session, log.Component("session")),
		Hierarchy:     hierarchy,
		Appliances:    appliances,
		Dashboard:     NewDashboardService(data.History, appliances, opts.RatePerKWh),
		RoomLogs:      NewRoomLogService(hierarchy, NewMockLogGenerator(opts.LogSource)),
		Suggestions:   NewSuggestionBoard(data.Suggestions, NewInsightGateway(opts.Generator, log.Component("insights")), appliances),
		Reports:       NewReportDesk(NewReportGateway(opts.Generator, log.Component("reports")), appliances, opts.Deliverer, opts.ExpertDelay, log.Component("report_desk")),
		Notifications: NewNotificationCenter(data.Notifications),
	}
}
