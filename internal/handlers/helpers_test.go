package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/staffline-dev/staffline/db"
	"github.com/staffline-dev/staffline/internal/auth"
	"github.com/staffline-dev/staffline/internal/models"
	"github.com/staffline-dev/staffline/internal/router"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")

	if err := auth.InitJWTSecret(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Project{},
		&models.TeamMember{},
		&models.ProjectModule{},
	)
	require.NoError(t, err)

	db.DB = testDB

	return testDB
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	setupTestDB(t)

	return router.NewRouter()
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

// registerUser creates an account through the API and returns its id.
func registerUser(t *testing.T, r *gin.Engine, username, role string) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "Password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})

	return uint(user["id"].(float64))
}

func loginUser(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": "Password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)

	return body["token"].(string)
}

func registerAndLogin(t *testing.T, r *gin.Engine, username, role string) (uint, string) {
	t.Helper()

	id := registerUser(t, r, username, role)

	return id, loginUser(t, r, username)
}

func createClient(t *testing.T, r *gin.Engine, token, name, company, email string) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/clients", token, gin.H{
		"name":         name,
		"company_name": company,
		"email":        email,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)

	return uint(body["id"].(float64))
}

func createProject(t *testing.T, r *gin.Engine, token string, clientID, teamLeadID uint) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"name":         "Site Revamp",
		"client_id":    clientID,
		"start_date":   "2024-01-01T00:00:00Z",
		"team_lead_id": teamLeadID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)

	return uint(body["id"].(float64))
}

func projectPath(id uint, suffix string) string {
	return fmt.Sprintf("/api/projects/%d%s", id, suffix)
}

func clientPath(id uint) string {
	return fmt.Sprintf("/api/clients/%d", id)
}

func userPath(id uint) string {
	return fmt.Sprintf("/api/auth/users/%d", id)
}
