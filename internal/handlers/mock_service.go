package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"bookshare/internal/models"
	"bookshare/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser  *models.PublicUser
	registerToken string
	registerErr   error
	loginToken    string
	loginErr      error
	parseClaims   *service.Claims
	parseErr      error

	registerCalls int
	lastEmail     string
	lastPassword  string
	lastToken     string
}

func (m *mockAuth) Register(email, password string) (*models.PublicUser, string, error) {
	m.registerCalls++
	m.lastEmail = email
	m.lastPassword = password
	return m.registerUser, m.registerToken, m.registerErr
}

func (m *mockAuth) Login(email, password string) (string, error) {
	m.lastEmail = email
	m.lastPassword = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (*service.Claims, error) {
	m.lastToken = token
	return m.parseClaims, m.parseErr
}

type mockUsers struct {
	user *models.PublicUser
	err  error
}

func (m *mockUsers) GetByID(id int) (*models.PublicUser, error) {
	return m.user, m.err
}

type mockBooks struct {
	fetchData  []byte
	fetchErr   error
	uploadName string
	uploadErr  error
	count      int
	countErr   error

	lastFetchName    string
	lastActor        string
	lastOriginalName string
	lastPayload      []byte
}

func (m *mockBooks) Fetch(name string) (io.ReadCloser, int64, error) {
	m.lastFetchName = name
	if m.fetchErr != nil {
		return nil, 0, m.fetchErr
	}
	return io.NopCloser(bytes.NewReader(m.fetchData)), int64(len(m.fetchData)), nil
}

func (m *mockBooks) Upload(_ context.Context, actorEmail, originalName string, r io.Reader) (string, error) {
	m.lastActor = actorEmail
	m.lastOriginalName = originalName
	m.lastPayload, _ = io.ReadAll(r)
	return m.uploadName, m.uploadErr
}

func (m *mockBooks) Count() (int, error) {
	return m.count, m.countErr
}

type mockEventLog struct {
	events []models.UploadEvent
	err    error

	lastFilter service.LogFilter
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.UploadEvent, error) {
	m.lastFilter = f
	return m.events, m.err
}

// ---- Test helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	hdr := http.Header{}
	hdr.Set("Authorization", "Bearer "+token)
	return hdr
}

func teacherClaims() *service.Claims {
	return &service.Claims{UserID: 1, Email: "teacher@example.com", Role: models.RoleTeacher}
}

func studentClaims() *service.Claims {
	return &service.Claims{UserID: 2, Email: "student@example.com", Role: models.RoleStudent}
}
