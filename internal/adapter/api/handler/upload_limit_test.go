package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, target string, size int, contentType string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="upload.bin"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req, httptest.NewRecorder()
}

func TestUploadProfileImageEnforcesConfiguredLimit(t *testing.T) {
	h := NewUserHandler(nil, 1)
	e := echo.New()

	req, rec := multipartUpload(t, "/v1/users/me/image", 2*1024*1024, "image/png")
	c := e.NewContext(req, rec)
	c.Set("uid", "user-1")

	require.NoError(t, h.UploadProfileImage(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "size limit")
}

func TestAddDeliverableEnforcesConfiguredLimit(t *testing.T) {
	h := NewOrderHandler(nil, 1)
	e := echo.New()

	req, rec := multipartUpload(t, "/v1/orders/order-1/deliverables", 2*1024*1024, "video/mp4")
	c := e.NewContext(req, rec)
	c.Set("uid", "user-1")
	c.SetParamNames("orderId")
	c.SetParamValues("order-1")

	require.NoError(t, h.AddDeliverable(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "size limit")
}

func TestUploadLimitsFallBackToDefaults(t *testing.T) {
	assert.Equal(t, int64(10), NewUserHandler(nil, 0).maxUploadMB)
	assert.Equal(t, int64(100), NewOrderHandler(nil, 0).maxUploadMB)
}
