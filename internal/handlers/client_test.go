package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClientDuplicateEmail(t *testing.T) {
	r := setupRouter(t)

	_, token := registerAndLogin(t, r, "manager", "Manager")

	w := doRequest(t, r, http.MethodPost, "/api/clients", token, gin.H{
		"name":         "Acme",
		"company_name": "Acme Inc",
		"email":        "a@x.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["total_projects"])
	assert.Equal(t, "New", body["client_type"])
	assert.Equal(t, "Active", body["status"])

	w = doRequest(t, r, http.MethodPost, "/api/clients", token, gin.H{
		"name":         "Other",
		"company_name": "Other Inc",
		"email":        "a@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["message"], "already exists")
}

func TestCreateClientRecruiterValidation(t *testing.T) {
	r := setupRouter(t)

	recruiterID, token := registerAndLogin(t, r, "recruiter", "Employee")

	w := doRequest(t, r, http.MethodPost, "/api/clients", token, gin.H{
		"name":                  "Acme",
		"company_name":          "Acme Inc",
		"email":                 "acme@x.com",
		"assigned_recruiter_id": 9999,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["message"], "recruiter")

	w = doRequest(t, r, http.MethodPost, "/api/clients", token, gin.H{
		"name":                  "Acme",
		"company_name":          "Acme Inc",
		"email":                 "acme@x.com",
		"assigned_recruiter_id": recruiterID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, float64(recruiterID), body["assigned_recruiter_id"])
	// Display name snapshotted from the user record.
	assert.Equal(t, "recruiter", body["assigned_recruiter_name"])
}

func TestCreateClientInvalidStatus(t *testing.T) {
	r := setupRouter(t)

	_, token := registerAndLogin(t, r, "manager", "Manager")

	w := doRequest(t, r, http.MethodPost, "/api/clients", token, gin.H{
		"name":         "Acme",
		"company_name": "Acme Inc",
		"email":        "acme@x.com",
		"status":       "Dormant",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateClientEmailUniqueness(t *testing.T) {
	r := setupRouter(t)

	_, token := registerAndLogin(t, r, "manager", "Manager")

	createClient(t, r, token, "Acme", "Acme Inc", "a@x.com")
	otherID := createClient(t, r, token, "Globex", "Globex Corp", "g@x.com")

	// Taking an email owned by another client is refused.
	w := doRequest(t, r, http.MethodPut, clientPath(otherID), token, gin.H{
		"name":         "Globex",
		"company_name": "Globex Corp",
		"email":        "a@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Keeping your own email is fine.
	w = doRequest(t, r, http.MethodPut, clientPath(otherID), token, gin.H{
		"name":         "Globex Renamed",
		"company_name": "Globex Corp",
		"email":        "g@x.com",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Globex Renamed", decodeBody(t, w)["name"])
}

func TestDeleteClientBlockedByProjects(t *testing.T) {
	r := setupRouter(t)

	leadID, token := registerAndLogin(t, r, "manager", "Manager")

	busyID := createClient(t, r, token, "Acme", "Acme Inc", "a@x.com")
	idleID := createClient(t, r, token, "Globex", "Globex Corp", "g@x.com")

	createProject(t, r, token, busyID, leadID)

	w := doRequest(t, r, http.MethodDelete, clientPath(busyID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["blocking_projects"])
	assert.Contains(t, body["message"], "1 existing project")

	w = doRequest(t, r, http.MethodDelete, clientPath(idleID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, clientPath(idleID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteClientRequiresManager(t *testing.T) {
	r := setupRouter(t)

	_, managerToken := registerAndLogin(t, r, "manager", "Manager")
	_, employeeToken := registerAndLogin(t, r, "worker", "Employee")

	clientID := createClient(t, r, managerToken, "Acme", "Acme Inc", "a@x.com")

	w := doRequest(t, r, http.MethodDelete, clientPath(clientID), employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListClientsFiltersAndCounts(t *testing.T) {
	r := setupRouter(t)

	leadID, token := registerAndLogin(t, r, "manager", "Manager")

	w := doRequest(t, r, http.MethodPost, "/api/clients", token, gin.H{
		"name": "Acme", "company_name": "Acme Inc", "email": "a@x.com",
		"industry": "IT", "location": "New York",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	acmeID := uint(decodeBody(t, w)["id"].(float64))

	w = doRequest(t, r, http.MethodPost, "/api/clients", token, gin.H{
		"name": "Globex", "company_name": "Globex Corp", "email": "g@x.com",
		"industry": "Legal", "location": "Boston",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	projectID := createProject(t, r, token, acmeID, leadID)

	// Complete the project so per-client counts split.
	w = doRequest(t, r, http.MethodPut, projectPath(projectID, ""), token, gin.H{"status": "Completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	createProject(t, r, token, acmeID, leadID)

	w = doRequest(t, r, http.MethodGet, "/api/clients?industry=IT", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme", list[0]["name"])
	assert.Equal(t, float64(2), list[0]["total_projects"])
	assert.Equal(t, float64(1), list[0]["ongoing_projects"])
	assert.Equal(t, float64(1), list[0]["completed_projects"])

	// Filters are a conjunction.
	w = doRequest(t, r, http.MethodGet, "/api/clients?industry=IT&location=boston", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 0)

	// Case-insensitive substring search across name/company/email/location.
	w = doRequest(t, r, http.MethodGet, "/api/clients?search=globex", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list = decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Globex", list[0]["name"])
}
