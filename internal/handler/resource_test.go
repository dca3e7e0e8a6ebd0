package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
)

func (e *testEnv) createProvider(license string) string {
	e.t.Helper()
	resp := e.do(http.MethodPost, "/api/v1/providers", e.adminToken, map[string]interface{}{
		"firstName":     "Maya",
		"lastName":      "Ortiz",
		"email":         license + "@providers.test",
		"licenseNumber": license,
		"npiNumber":     "1234567890",
		"providerType":  "INDIVIDUAL",
		"status":        "ACTIVE",
	})
	require.Equal(e.t, http.StatusNoContent, resp.StatusCode, readBody(e.t, resp))

	var list dto.ListResponse[dto.ProviderResponse]
	resp = e.do(http.MethodGet, "/api/v1/providers?licenseNumber="+license, e.adminToken, nil)
	require.Equal(e.t, http.StatusOK, resp.StatusCode)
	decode(e.t, resp, &list)
	require.Len(e.t, list.Data, 1)
	return list.Data[0].ID
}

func (e *testEnv) createTherapyService() string {
	e.t.Helper()
	schoolID := e.create("/api/v1/schools", map[string]interface{}{"name": "Lincoln Elementary", "city": "Austin"})
	studentID := e.create("/api/v1/students", map[string]interface{}{"firstName": "Sam", "lastName": "Lee", "schoolId": schoolID})
	providerID := e.createProvider(fmt.Sprintf("LIC-%s", uuid.NewString()[:8]))
	return e.create("/api/v1/therapy-services", map[string]interface{}{
		"studentId":      studentID,
		"providerId":     providerID,
		"serviceType":    "SPEECH",
		"minutesPerWeek": 60,
		"startDate":      "2024-09-01",
	})
}

func TestProviderCreateThenFilterByLicense(t *testing.T) {
	env := newTestEnv(t)

	id := env.createProvider("TX-55821")

	resp := env.do(http.MethodGet, "/api/v1/providers/"+id, env.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Data dto.ProviderResponse `json:"data"`
	}
	decode(t, resp, &body)
	require.Equal(t, "TX-55821", body.Data.LicenseNumber)
	require.Equal(t, "Maya", body.Data.FirstName)
}

func TestInvoiceCreateDefaultsToPending(t *testing.T) {
	env := newTestEnv(t)
	providerID := env.createProvider("TX-1")

	id := env.create("/api/v1/invoices", map[string]interface{}{
		"providerId":    providerID,
		"invoiceNumber": "INV-2024-001",
		"amount":        1250.5,
		"issueDate":     "2024-10-01",
	})

	resp := env.do(http.MethodGet, "/api/v1/invoices/"+id, env.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Data dto.InvoiceResponse `json:"data"`
	}
	decode(t, resp, &body)
	require.Equal(t, models.InvoiceStatusPending, body.Data.Status)
	require.NotNil(t, body.Data.Provider)
	require.Equal(t, providerID, body.Data.Provider.ID)
}

func TestTherapyServiceDeleteTwice(t *testing.T) {
	env := newTestEnv(t)
	id := env.createTherapyService()

	resp := env.do(http.MethodDelete, "/api/v1/therapy-services/"+id, env.adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(http.MethodDelete, "/api/v1/therapy-services/"+id, env.adminToken, nil)
	requireError(t, resp, http.StatusNotFound, "THERAPY_SERVICE_NOT_FOUND")

	resp = env.do(http.MethodGet, "/api/v1/therapy-services/"+id, env.adminToken, nil)
	requireError(t, resp, http.StatusNotFound, "THERAPY_SERVICE_NOT_FOUND")

	var stored models.TherapyService
	require.NoError(t, env.db.Unscoped().First(&stored, "id = ?", id).Error)
	require.True(t, stored.DeletedAt.Valid)
}

func TestUserUpdateWithoutManagePermissionLeavesRowUnchanged(t *testing.T) {
	env := newTestEnv(t)
	viewerID, viewerToken := env.inviteUser("viewer@therapy.test", "Viewer")

	var before models.User
	require.NoError(t, env.db.First(&before, "id = ?", viewerID).Error)

	resp := env.do(http.MethodPatch, "/api/v1/users/"+viewerID, viewerToken, map[string]string{"firstName": "Mallory"})
	body := requireError(t, resp, http.StatusForbidden, "UNAUTHORIZED")
	require.Equal(t, "You are not authorized to perform this action.", body.Message)

	var after models.User
	require.NoError(t, env.db.First(&after, "id = ?", viewerID).Error)
	require.Equal(t, before.FirstName, after.FirstName)
	require.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestViewerIsForbiddenFromEveryMutation(t *testing.T) {
	env := newTestEnv(t)
	_, viewerToken := env.inviteUser("viewer@therapy.test", "Viewer")
	id := uuid.NewString()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/users"},
		{http.MethodPost, "/api/v1/schools"},
		{http.MethodPatch, "/api/v1/students/" + id},
		{http.MethodDelete, "/api/v1/providers/" + id},
		{http.MethodPost, "/api/v1/providers/" + id + "/documents"},
		{http.MethodDelete, "/api/v1/providers/" + id + "/contacts"},
		{http.MethodPost, "/api/v1/therapists"},
		{http.MethodPost, "/api/v1/therapy-services"},
		{http.MethodPatch, "/api/v1/reports/" + id},
		{http.MethodDelete, "/api/v1/invoices/" + id},
		{http.MethodPost, "/api/v1/documents"},
		{http.MethodPost, "/api/v1/contracts"},
		{http.MethodPatch, "/api/v1/contacts/" + id},
	}
	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			resp := env.do(route.method, route.path, viewerToken, map[string]string{})
			body := requireError(t, resp, http.StatusForbidden, "UNAUTHORIZED")
			require.Empty(t, body.Errors)
		})
	}

	// Viewer has every VIEW_ permission.
	for _, path := range []string{"/api/v1/users", "/api/v1/schools", "/api/v1/invoices", "/api/v1/activity-logs"} {
		resp := env.do(http.MethodGet, path, viewerToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestRoutesRequireBearerToken(t *testing.T) {
	env := newTestEnv(t)

	for _, token := range []string{"", "not-a-jwt"} {
		resp := env.do(http.MethodGet, "/api/v1/schools", token, nil)
		requireError(t, resp, http.StatusUnauthorized, "UNAUTHENTICATED")
	}

	resp := env.request(http.MethodGet, "/api/v1/schools", "", nil, map[string]string{"Authorization": "Basic Zm9vOmJhcg=="})
	requireError(t, resp, http.StatusUnauthorized, "UNAUTHENTICATED")
}

func TestSoftDeletedSchoolDisappearsFromListAndFind(t *testing.T) {
	env := newTestEnv(t)
	keep := env.create("/api/v1/schools", map[string]interface{}{"name": "Keep"})
	gone := env.create("/api/v1/schools", map[string]interface{}{"name": "Gone"})

	resp := env.do(http.MethodDelete, "/api/v1/schools/"+gone, env.adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(http.MethodGet, "/api/v1/schools/"+gone, env.adminToken, nil)
	body := requireError(t, resp, http.StatusNotFound, "SCHOOL_NOT_FOUND")
	require.Equal(t, "School not found.", body.Message)

	var list dto.ListResponse[dto.SchoolResponse]
	resp = env.do(http.MethodGet, "/api/v1/schools", env.adminToken, nil)
	decode(t, resp, &list)
	require.Len(t, list.Data, 1)
	require.Equal(t, keep, list.Data[0].ID)
	require.EqualValues(t, 1, list.Pagination.Total)

	var stored models.School
	require.NoError(t, env.db.Unscoped().First(&stored, "id = ?", gone).Error)
	require.True(t, stored.DeletedAt.Valid)

	resp = env.do(http.MethodPatch, "/api/v1/schools/"+gone, env.adminToken, map[string]string{"name": "Back"})
	requireError(t, resp, http.StatusNotFound, "SCHOOL_NOT_FOUND")
}

func TestPartialUpdateTouchesOnlyProvidedFields(t *testing.T) {
	env := newTestEnv(t)
	id := env.create("/api/v1/schools", map[string]interface{}{
		"name":    "Roosevelt",
		"address": "1 Main St",
		"city":    "Austin",
		"state":   "TX",
		"zipCode": "78701",
		"phone":   "512-555-0100",
	})

	resp := env.do(http.MethodPatch, "/api/v1/schools/"+id, env.adminToken, map[string]string{"city": "Dallas"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode, readBody(t, resp))

	resp = env.do(http.MethodGet, "/api/v1/schools/"+id, env.adminToken, nil)
	var body struct {
		Data dto.SchoolResponse `json:"data"`
	}
	decode(t, resp, &body)
	require.Equal(t, "Dallas", body.Data.City)
	require.Equal(t, "Roosevelt", body.Data.Name)
	require.Equal(t, "1 Main St", body.Data.Address)
	require.Equal(t, "TX", body.Data.State)
	require.Equal(t, "78701", body.Data.ZipCode)
	require.Equal(t, "512-555-0100", body.Data.Phone)
	require.Equal(t, models.SchoolStatusActive, body.Data.Status)
}

func TestPaginationNeverRepeatsRows(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 7; i++ {
		env.create("/api/v1/contacts", map[string]interface{}{"name": fmt.Sprintf("Contact %02d", i)})
	}

	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		var list dto.ListResponse[dto.ContactResponse]
		resp := env.do(http.MethodGet, fmt.Sprintf("/api/v1/contacts?perPage=3&page=%d&sortBy=name&sortOrder=asc", page), env.adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decode(t, resp, &list)

		require.EqualValues(t, 7, list.Pagination.Total)
		require.Equal(t, 3, list.Pagination.Pages)
		if page < 3 {
			require.Len(t, list.Data, 3)
		} else {
			require.Len(t, list.Data, 1)
		}
		for _, contact := range list.Data {
			require.False(t, seen[contact.ID], "contact %s repeated", contact.ID)
			seen[contact.ID] = true
		}
	}
	require.Len(t, seen, 7)
}

func TestLargePageSizeIsAccepted(t *testing.T) {
	env := newTestEnv(t)
	env.create("/api/v1/contacts", map[string]interface{}{"name": "Only Contact"})

	var list dto.ListResponse[dto.ContactResponse]
	resp := env.do(http.MethodGet, "/api/v1/contacts?perPage=150", env.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &list)
	require.Len(t, list.Data, 1)
	require.Equal(t, 1, list.Pagination.Pages)
}

func TestListRejectsInvalidQuery(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodGet, "/api/v1/schools?perPage=0", env.adminToken, nil)
	requireError(t, resp, http.StatusBadRequest, "INVALID_REQUEST")

	resp = env.do(http.MethodGet, "/api/v1/schools?sortOrder=sideways", env.adminToken, nil)
	requireError(t, resp, http.StatusBadRequest, "INVALID_REQUEST")

	resp = env.do(http.MethodGet, "/api/v1/schools?page=abc", env.adminToken, nil)
	requireError(t, resp, http.StatusBadRequest, "INVALID_REQUEST")
}

func TestUpdateOfMissingRowReportsItBeforeReferences(t *testing.T) {
	env := newTestEnv(t)
	missing := uuid.NewString()
	dead := uuid.NewString()

	cases := []struct {
		path string
		body map[string]interface{}
		code string
	}{
		{"/api/v1/users/", map[string]interface{}{"roleId": dead}, "USER_NOT_FOUND"},
		{"/api/v1/students/", map[string]interface{}{"schoolId": dead}, "STUDENT_NOT_FOUND"},
		{"/api/v1/therapists/", map[string]interface{}{"providerId": dead}, "THERAPIST_NOT_FOUND"},
		{"/api/v1/therapy-services/", map[string]interface{}{"studentId": dead}, "THERAPY_SERVICE_NOT_FOUND"},
		{"/api/v1/reports/", map[string]interface{}{"therapyServiceId": dead}, "REPORT_NOT_FOUND"},
		{"/api/v1/invoices/", map[string]interface{}{"providerId": dead}, "INVOICE_NOT_FOUND"},
	}
	for _, tc := range cases {
		resp := env.do(http.MethodPatch, tc.path+missing, env.adminToken, tc.body)
		requireError(t, resp, http.StatusNotFound, tc.code)
	}
}

func TestUnknownIDsYieldResourceNotFound(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.NewString()

	cases := map[string]string{
		"/api/v1/users/":            "USER_NOT_FOUND",
		"/api/v1/roles/":            "ROLE_NOT_FOUND",
		"/api/v1/schools/":          "SCHOOL_NOT_FOUND",
		"/api/v1/students/":         "STUDENT_NOT_FOUND",
		"/api/v1/providers/":        "PROVIDER_NOT_FOUND",
		"/api/v1/therapists/":       "THERAPIST_NOT_FOUND",
		"/api/v1/therapy-services/": "THERAPY_SERVICE_NOT_FOUND",
		"/api/v1/reports/":          "REPORT_NOT_FOUND",
		"/api/v1/invoices/":         "INVOICE_NOT_FOUND",
		"/api/v1/documents/":        "DOCUMENT_NOT_FOUND",
		"/api/v1/contracts/":        "CONTRACT_NOT_FOUND",
		"/api/v1/contacts/":         "CONTACT_NOT_FOUND",
	}
	for prefix, code := range cases {
		resp := env.do(http.MethodGet, prefix+id, env.adminToken, nil)
		requireError(t, resp, http.StatusNotFound, code)
	}

	resp := env.do(http.MethodGet, "/api/v1/schools/not-a-uuid", env.adminToken, nil)
	body := requireError(t, resp, http.StatusBadRequest, "INVALID_REQUEST")
	require.Equal(t, []string{"id: must be a valid UUID"}, body.Errors)
}

func TestMutationsAreAuditedOnce(t *testing.T) {
	env := newTestEnv(t)

	id := env.create("/api/v1/schools", map[string]interface{}{"name": "Audit"})
	resp := env.do(http.MethodPatch, "/api/v1/schools/"+id, env.adminToken, map[string]string{"phone": "555"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = env.do(http.MethodDelete, "/api/v1/schools/"+id, env.adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var admin models.User
	require.NoError(t, env.db.First(&admin, "email = ?", testAdminEmail).Error)

	var list dto.ListResponse[dto.ActivityLogResponse]
	resp = env.do(http.MethodGet, "/api/v1/activity-logs?entityType=SCHOOL&subjectId="+id+"&sortOrder=asc", env.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &list)

	actions := make([]string, 0, len(list.Data))
	for _, entry := range list.Data {
		actions = append(actions, entry.Action)
		require.Equal(t, admin.ID.String(), entry.UserID)
	}
	require.ElementsMatch(t, []string{"CREATE_SCHOOL", "UPDATE_SCHOOL", "DELETE_SCHOOL"}, actions)
}

func TestFailedMutationsAreNotAudited(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodPost, "/api/v1/schools", env.adminToken, map[string]interface{}{"name": ""})
	requireError(t, resp, http.StatusBadRequest, "INVALID_REQUEST")

	var count int64
	require.NoError(t, env.db.Model(&models.ActivityLog{}).Where("action = ?", "CREATE_SCHOOL").Count(&count).Error)
	require.Zero(t, count)
}

func TestProviderLinkRoutes(t *testing.T) {
	env := newTestEnv(t)
	providerID := env.createProvider("TX-LINKS")
	contactID := env.create("/api/v1/contacts", map[string]interface{}{"name": "Billing Desk", "email": "billing@agency.test"})
	contractID := env.create("/api/v1/contracts", map[string]interface{}{"name": "2024 Master Agreement", "startDate": "2024-01-01"})

	resp := env.do(http.MethodPost, "/api/v1/providers/"+providerID+"/contacts", env.adminToken, map[string]interface{}{"ids": []string{contactID}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode, readBody(t, resp))
	resp = env.do(http.MethodPost, "/api/v1/providers/"+providerID+"/contracts", env.adminToken, map[string]interface{}{"ids": []string{contractID}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode, readBody(t, resp))

	missing := uuid.NewString()
	resp = env.do(http.MethodPost, "/api/v1/providers/"+providerID+"/documents", env.adminToken, map[string]interface{}{"ids": []string{missing}})
	body := requireError(t, resp, http.StatusNotFound, "DOCUMENT_NOT_FOUND")
	require.Equal(t, []string{missing}, body.Errors)

	var detail struct {
		Data dto.ProviderResponse `json:"data"`
	}
	resp = env.do(http.MethodGet, "/api/v1/providers/"+providerID, env.adminToken, nil)
	decode(t, resp, &detail)
	require.Len(t, detail.Data.Contacts, 1)
	require.Equal(t, contactID, detail.Data.Contacts[0].ID)
	require.Len(t, detail.Data.Contracts, 1)
	require.Empty(t, detail.Data.Documents)

	// An empty list detaches everything.
	resp = env.do(http.MethodDelete, "/api/v1/providers/"+providerID+"/contacts", env.adminToken, map[string]interface{}{"ids": []string{}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode, readBody(t, resp))

	resp = env.do(http.MethodGet, "/api/v1/providers/"+providerID, env.adminToken, nil)
	detail.Data = dto.ProviderResponse{}
	decode(t, resp, &detail)
	require.Empty(t, detail.Data.Contacts)
	require.Len(t, detail.Data.Contracts, 1)
}

func TestTherapistCreateAnswersNoContent(t *testing.T) {
	env := newTestEnv(t)
	providerID := env.createProvider("TX-THERAPIST")

	resp := env.do(http.MethodPost, "/api/v1/therapists", env.adminToken, map[string]interface{}{
		"providerId": providerID,
		"firstName":  "Jo",
		"lastName":   "March",
		"discipline": "OCCUPATIONAL",
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode, readBody(t, resp))

	var list dto.ListResponse[dto.TherapistResponse]
	resp = env.do(http.MethodGet, "/api/v1/therapists?providerId="+providerID, env.adminToken, nil)
	decode(t, resp, &list)
	require.Len(t, list.Data, 1)
	require.Equal(t, "Jo", list.Data[0].FirstName)
}

func TestReportLifecycle(t *testing.T) {
	env := newTestEnv(t)
	serviceID := env.createTherapyService()

	id := env.create("/api/v1/reports", map[string]interface{}{
		"therapyServiceId": serviceID,
		"title":            "Quarterly progress",
		"reportDate":       "2024-12-15",
	})

	resp := env.do(http.MethodPatch, "/api/v1/reports/"+id, env.adminToken, map[string]string{"status": "SUBMITTED"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode, readBody(t, resp))

	var body struct {
		Data dto.ReportResponse `json:"data"`
	}
	resp = env.do(http.MethodGet, "/api/v1/reports/"+id, env.adminToken, nil)
	decode(t, resp, &body)
	require.Equal(t, "SUBMITTED", body.Data.Status)
	require.Equal(t, "Quarterly progress", body.Data.Title)

	resp = env.do(http.MethodPost, "/api/v1/reports", env.adminToken, map[string]interface{}{
		"therapyServiceId": uuid.NewString(),
		"title":            "Orphan",
		"reportDate":       "2024-12-15",
	})
	requireError(t, resp, http.StatusNotFound, "THERAPY_SERVICE_NOT_FOUND")
}
