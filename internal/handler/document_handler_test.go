package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func (e *testEnv) upload(fields map[string]string, fileName string, content []byte) *http.Response {
	e.t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(e.t, writer.WriteField(key, value))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(e.t, err)
		_, err = part.Write(content)
		require.NoError(e.t, err)
	}
	require.NoError(e.t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.adminToken)

	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	return resp
}

func TestDocumentUploadLifecycle(t *testing.T) {
	env := newTestEnv(t)

	resp := env.upload(map[string]string{"name": "W-9 2024"}, "w9.pdf", pdfBytes)
	require.Equal(t, http.StatusCreated, resp.StatusCode, readBody(t, resp))
	var created struct {
		ID string `json:"id"`
	}
	decode(t, resp, &created)

	var body struct {
		Data dto.DocumentResponse `json:"data"`
	}
	resp = env.do(http.MethodGet, "/api/v1/documents/"+created.ID, env.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &body)
	require.Equal(t, "W-9 2024", body.Data.Name)
	require.Equal(t, "application/pdf", body.Data.MimeType)
	require.EqualValues(t, len(pdfBytes), body.Data.Size)
	require.Contains(t, body.Data.URL, "https://files.test/")

	resp = env.do(http.MethodPatch, "/api/v1/documents/"+created.ID, env.adminToken, map[string]string{"name": "W-9 (signed)"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode, readBody(t, resp))

	providerID := env.createProvider("TX-DOCS")
	resp = env.do(http.MethodPost, "/api/v1/providers/"+providerID+"/documents", env.adminToken, map[string]interface{}{"ids": []string{created.ID}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode, readBody(t, resp))

	resp = env.do(http.MethodDelete, "/api/v1/documents/"+created.ID, env.adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var provider struct {
		Data dto.ProviderResponse `json:"data"`
	}
	resp = env.do(http.MethodGet, "/api/v1/providers/"+providerID, env.adminToken, nil)
	decode(t, resp, &provider)
	require.Empty(t, provider.Data.Documents)
}

func TestDocumentUploadValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.upload(map[string]string{"name": "nothing attached"}, "", nil)
	body := requireError(t, resp, http.StatusBadRequest, "INVALID_REQUEST")
	require.Equal(t, []string{"file: is required"}, body.Errors)

	resp = env.upload(nil, "tool.exe", []byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	requireError(t, resp, http.StatusBadRequest, "INVALID_REQUEST")

	resp = env.upload(nil, "huge.pdf", append(append([]byte{}, pdfBytes...), make([]byte, 1<<20)...))
	requireError(t, resp, http.StatusBadRequest, "INVALID_REQUEST")

	var list dto.ListResponse[dto.DocumentResponse]
	resp = env.do(http.MethodGet, "/api/v1/documents", env.adminToken, nil)
	decode(t, resp, &list)
	require.Empty(t, list.Data)
}
