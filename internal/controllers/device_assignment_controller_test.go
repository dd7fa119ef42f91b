package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	apperrors "repair-system/pkg/errors"
)

func newAssignmentEcho(userID uint64, svc *stubAssignmentService) *echo.Echo {
	e, api := newTestEcho(userID)
	c := NewDeviceAssignmentController(svc, zap.NewNop())
	api.POST("/devices/:id/checkin", c.Checkin)
	api.POST("/devices/:id/checkout", c.Checkout)
	api.GET("/me/devices", c.MyDevices)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCheckin_DefaultsToCaller(t *testing.T) {
	svc := &stubAssignmentService{}
	e := newAssignmentEcho(testCallerID, svc)

	rec := doJSON(e, http.MethodPost, "/api/devices/7/checkin", "")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, [][2]uint64{{testCallerID, 7}}, svc.checkins)

	var got dto.DeviceAssignmentDTO
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Body, &got))
	assert.True(t, got.Active)
	assert.Equal(t, uint64(7), got.DeviceID)
}

func TestCheckin_ExplicitUser(t *testing.T) {
	svc := &stubAssignmentService{}
	e := newAssignmentEcho(testCallerID, svc)

	rec := doJSON(e, http.MethodPost, "/api/devices/7/checkin", `{"user_id":5}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, [][2]uint64{{5, 7}}, svc.checkins)
}

func TestCheckin_RejectsZeroUser(t *testing.T) {
	svc := &stubAssignmentService{}
	e := newAssignmentEcho(testCallerID, svc)

	rec := doJSON(e, http.MethodPost, "/api/devices/7/checkin", `{"user_id":0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.checkins)
}

func TestCheckin_ConflictIs409(t *testing.T) {
	svc := &stubAssignmentService{err: apperrors.NewConflictError("thiết bị đang được sử dụng")}
	e := newAssignmentEcho(testCallerID, svc)

	rec := doJSON(e, http.MethodPost, "/api/devices/7/checkin", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Status)
}

func TestCheckout_NoActiveIs404(t *testing.T) {
	svc := &stubAssignmentService{err: apperrors.NewNotFoundError("không có lượt sử dụng")}
	e := newAssignmentEcho(testCallerID, svc)

	rec := doJSON(e, http.MethodPost, "/api/devices/7/checkout", `{"user_id":5}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, [][2]uint64{{5, 7}}, svc.checkouts)
}

func TestCheckin_BadDeviceID(t *testing.T) {
	svc := &stubAssignmentService{}
	e := newAssignmentEcho(testCallerID, svc)

	rec := doJSON(e, http.MethodPost, "/api/devices/abc/checkin", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.checkins)
}

func TestMyDevices(t *testing.T) {
	svc := &stubAssignmentService{}
	e := newAssignmentEcho(testCallerID, svc)

	rec := doJSON(e, http.MethodGet, "/api/me/devices", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []dto.DeviceAssignmentDTO
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Body, &got))
	require.Len(t, got, 1)
	assert.Equal(t, testCallerID, got[0].UserID)
}
