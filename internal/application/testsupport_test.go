package application

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	"github.com/shareloop/service-sharing/internal/events"
	"github.com/shareloop/service-sharing/internal/repository"
)

// capturePublisher records published events instead of touching a broker.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.CloudEvent
}

func (p *capturePublisher) PublishEvent(_ context.Context, _, _ string, event events.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) published() []events.CloudEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.CloudEvent, len(p.events))
	copy(out, p.events)
	return out
}

// testEnv wires all services against an in-memory SQLite database.
type testEnv struct {
	DB             *gorm.DB
	Publisher      *capturePublisher
	Users          *UserService
	Items          *ItemService
	Bookings       *BookingService
	BookingQueries *BookingQueryService
	Requests       *RequestService
	Projector      *BookingProjector
	BookingRepo    bookingDomain.Repository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.RequestModel{},
		&repository.ItemModel{},
		&repository.BookingModel{},
		&repository.CommentModel{},
	))

	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)

	publisher := &capturePublisher{}
	logger := zap.NewNop()

	projector := NewBookingProjector(bookingRepo, itemRepo)

	return &testEnv{
		DB:             db,
		Publisher:      publisher,
		Users:          NewUserService(userRepo, logger),
		Items:          NewItemService(itemRepo, userRepo, commentRepo, projector, logger),
		Bookings:       NewBookingService(bookingRepo, userRepo, itemRepo, publisher, logger),
		BookingQueries: NewBookingQueryService(bookingRepo, userRepo, itemRepo),
		Requests:       NewRequestService(requestRepo, itemRepo, userRepo, logger),
		Projector:      projector,
		BookingRepo:    bookingRepo,
	}
}

func (e *testEnv) createUser(t *testing.T, name string) UserDTO {
	t.Helper()
	dto, err := e.Users.CreateUser(context.Background(), CreateUserRequest{
		Name:  name,
		Email: fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
	})
	require.NoError(t, err)
	return *dto
}

func (e *testEnv) createItem(t *testing.T, ownerID uuid.UUID, name string, available bool) ItemDTO {
	t.Helper()
	dto, err := e.Items.CreateItem(context.Background(), ownerID, CreateItemRequest{
		Name:        name,
		Description: name + " description",
		Available:   &available,
	})
	require.NoError(t, err)
	return *dto
}

// seedBooking writes a booking with a chosen status and window directly through
// the repository, bypassing the lifecycle for history and projection tests.
func (e *testEnv) seedBooking(t *testing.T, bookerID, itemID uuid.UUID, status bookingDomain.Status, start, end time.Time) uuid.UUID {
	t.Helper()
	now := time.Now().UTC()
	b := bookingDomain.Reconstruct(uuid.New(), bookerID, itemID, status, start, end, now, now)
	require.NoError(t, e.BookingRepo.Save(context.Background(), b))
	return b.ID()
}
