package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bella-vista/site-svc/internal/gateway"
	"bella-vista/site-svc/internal/mocks"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func jsonResponse(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil, nil)

	rr := httptest.NewRecorder()
	gw.HealthCheck(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "site-svc", body["service"])
}

func TestGateway_RouteHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		wantTarget string
	}{
		{name: "menu_list", method: http.MethodGet, path: "/api/menu", wantTarget: "http://content-svc/api/menu"},
		{name: "reservation_patch", method: http.MethodPatch, path: "/api/reservations/r1", wantTarget: "http://content-svc/api/reservations/r1"},
		{name: "qrcode", method: http.MethodGet, path: "/api/reservations/r1/qrcode", wantTarget: "http://content-svc/api/reservations/r1/qrcode"},
		{name: "uploads", method: http.MethodGet, path: "/uploads/gallery_g1_x.png", wantTarget: "http://content-svc/uploads/gallery_g1_x.png"},
		{name: "activity_with_query", method: http.MethodGet, path: "/api/activity/recent?limit=5", wantTarget: "http://activity-svc/api/activity/recent?limit=5"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(gateway.Config{
				ContentSvcURL:  "http://content-svc/",
				ActivitySvcURL: "http://activity-svc",
			}, mockClient, nil)

			mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
				return req.Method == testCase.method && req.URL.String() == testCase.wantTarget
			})).Return(jsonResponse(http.StatusOK, `{"ok":true}`), nil).Once()

			rr := httptest.NewRecorder()
			gw.RouteHandler(rr, httptest.NewRequest(testCase.method, testCase.path, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Contains(t, rr.Body.String(), `"ok":true`)
		})
	}
}

func TestGateway_PassesUpstreamStatus(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{ContentSvcURL: "http://content-svc"}, mockClient, nil)

	mockClient.On("Do", mock.Anything).Return(jsonResponse(http.StatusNotFound, `{"error":"not found"}`), nil).Once()

	rr := httptest.NewRecorder()
	gw.RouteHandler(rr, httptest.NewRequest(http.MethodGet, "/api/menu/nope", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "not found")
}

func TestGateway_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{ContentSvcURL: "http://invalid"}, mockClient, nil)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	rr := httptest.NewRecorder()
	gw.RouteHandler(rr, httptest.NewRequest(http.MethodGet, "/api/gallery", nil))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection failed")
}

func TestGateway_UnknownRoute(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil, nil)

	rr := httptest.NewRecorder()
	gw.RouteHandler(rr, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGateway_RegisterRoutes(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{ContentSvcURL: "http://content-svc"}, mockClient, nil)
	r := mux.NewRouter()
	gw.RegisterRoutes(r)

	mockClient.On("Do", mock.Anything).Return(jsonResponse(http.StatusCreated, `{"id":"t1"}`), nil).Once()

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/testimonials", strings.NewReader(`{"name":"Luca"}`)))

	assert.Equal(t, http.StatusCreated, rr.Code)
}
