package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shareloop/service-sharing/internal/application"
	"github.com/shareloop/service-sharing/internal/events"
	"github.com/shareloop/service-sharing/internal/mw"
	"github.com/shareloop/service-sharing/internal/repository"
)

// noopPublisher drops events; handler tests assert HTTP behavior only.
type noopPublisher struct{}

func (noopPublisher) PublishEvent(context.Context, string, string, events.CloudEvent) error {
	return nil
}

// testServer is a fully wired router backed by an in-memory SQLite database.
type testServer struct {
	Router *gin.Engine
	Users  *application.UserService
	Items  *application.ItemService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	logger := zap.NewNop()
	projector := application.NewBookingProjector(bookingRepo, itemRepo)
	bookingSvc := application.NewBookingService(bookingRepo, userRepo, itemRepo, noopPublisher{}, logger)
	bookingQueries := application.NewBookingQueryService(bookingRepo, userRepo, itemRepo)
	itemSvc := application.NewItemService(itemRepo, userRepo, commentRepo, projector, logger)
	userSvc := application.NewUserService(userRepo, logger)
	requestSvc := application.NewRequestService(requestRepo, itemRepo, userRepo, logger)

	router := gin.New()
	NewBookingHandler(bookingSvc, bookingQueries, logger).RegisterRoutes(&router.RouterGroup)
	NewItemHandler(itemSvc, logger).RegisterRoutes(&router.RouterGroup)
	NewUserHandler(userSvc, logger).RegisterRoutes(&router.RouterGroup)
	NewRequestHandler(requestSvc, logger).RegisterRoutes(&router.RouterGroup)

	return &testServer{Router: router, Users: userSvc, Items: itemSvc}
}

// do performs a request with an optional JSON body and sharer header.
func (s *testServer) do(t *testing.T, method, path string, sharer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if sharer != "" {
		req.Header.Set(mw.SharerUserHeader, sharer)
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createUser(t *testing.T, name string) application.UserDTO {
	t.Helper()
	dto, err := s.Users.CreateUser(context.Background(), application.CreateUserRequest{
		Name:  name,
		Email: fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
	})
	require.NoError(t, err)
	return *dto
}

func (s *testServer) createItem(t *testing.T, ownerID uuid.UUID, name string, available bool) application.ItemDTO {
	t.Helper()
	dto, err := s.Items.CreateItem(context.Background(), ownerID, application.CreateItemRequest{
		Name:        name,
		Description: name + " description",
		Available:   &available,
	})
	require.NoError(t, err)
	return *dto
}

func futureWindow() (time.Time, time.Time) {
	start := time.Now().UTC().Add(24 * time.Hour)
	return start, start.Add(48 * time.Hour)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
