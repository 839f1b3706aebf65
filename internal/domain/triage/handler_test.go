package triage

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mindcare/mindcare/internal/platform/geo"
	"github.com/mindcare/mindcare/internal/platform/geocode"
)

type handlerFixture struct {
	repo *mockCenterRepo
	gc   *fakeGeocoder
	h    *Handler
	e    *echo.Echo
}

func newHandlerFixture(repo *mockCenterRepo, gc *fakeGeocoder) *handlerFixture {
	return &handlerFixture{
		repo: repo,
		gc:   gc,
		h:    NewHandler(newService(repo, gc)),
		e:    echo.New(),
	}
}

func (f *handlerFixture) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return f.e.NewContext(req, rec), rec
}

func TestHandler_Nearby(t *testing.T) {
	f := newHandlerFixture(seedCenters(), &fakeGeocoder{})

	ctx, rec := f.request(http.MethodGet, "/api/v1/emergency/nearby?lat=3.139&lon=101.6869&k=1", "")
	if err := f.h.Nearby(ctx); err != nil {
		t.Fatalf("Nearby() error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var ranked []RankedCenter
	if err := json.Unmarshal(rec.Body.Bytes(), &ranked); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("expected 1 center, got %d", len(ranked))
	}
	if ranked[0].Name != "Hospital Kuala Lumpur" {
		t.Errorf("expected nearest center, got %s", ranked[0].Name)
	}
}

func TestHandler_Nearby_MissingCoordsFallsBack(t *testing.T) {
	f := newHandlerFixture(seedCenters(), &fakeGeocoder{})

	ctx, rec := f.request(http.MethodGet, "/api/v1/emergency/nearby", "")
	if err := f.h.Nearby(ctx); err != nil {
		t.Fatalf("Nearby() error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var ranked []RankedCenter
	if err := json.Unmarshal(rec.Body.Bytes(), &ranked); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(ranked) == 0 || ranked[0].Name != "Hospital Kuala Lumpur" {
		t.Error("expected default-origin ranking")
	}
}

func TestHandler_Search(t *testing.T) {
	gc := &fakeGeocoder{locations: map[string]geocode.Location{
		"Melaka": {Coordinate: geo.Coordinate{Lat: 2.1896, Lon: 102.2501}, DisplayName: "Melaka, Malaysia"},
	}}
	f := newHandlerFixture(seedCenters(), gc)

	ctx, rec := f.request(http.MethodGet, "/api/v1/emergency/search?address=Melaka", "")
	if err := f.h.Search(ctx); err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var result SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.DisplayName != "Melaka, Malaysia" {
		t.Errorf("unexpected display name: %s", result.DisplayName)
	}
	if len(result.Centers) != 3 {
		t.Errorf("expected all centers in search mode, got %d", len(result.Centers))
	}
}

func TestHandler_Search_BadRequestAndNotFound(t *testing.T) {
	f := newHandlerFixture(seedCenters(), &fakeGeocoder{})

	ctx, _ := f.request(http.MethodGet, "/api/v1/emergency/search", "")
	err := f.h.Search(ctx)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing address, got %v", err)
	}

	ctx, _ = f.request(http.MethodGet, "/api/v1/emergency/search?address=nowhere", "")
	err = f.h.Search(ctx)
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unresolvable address, got %v", err)
	}
}

func TestHandler_Search_UpstreamFailure(t *testing.T) {
	f := newHandlerFixture(seedCenters(), &fakeGeocoder{fail: errors.New("connection refused")})

	ctx, _ := f.request(http.MethodGet, "/api/v1/emergency/search?address=Melaka", "")
	err := f.h.Search(ctx)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadGateway {
		t.Errorf("expected 502 for geocoder failure, got %v", err)
	}
}

func TestHandler_Reverse(t *testing.T) {
	gc := &fakeGeocoder{reverse: map[geo.Coordinate]string{
		klOrigin: "Kuala Lumpur City Centre",
	}}
	f := newHandlerFixture(seedCenters(), gc)

	ctx, rec := f.request(http.MethodGet, "/api/v1/emergency/reverse?lat=3.139&lon=101.6869", "")
	if err := f.h.Reverse(ctx); err != nil {
		t.Fatalf("Reverse() error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Kuala Lumpur City Centre") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}

	ctx, _ = f.request(http.MethodGet, "/api/v1/emergency/reverse?lat=3.139", "")
	err := f.h.Reverse(ctx)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing lon, got %v", err)
	}
}

func TestHandler_AddAndRemoveCenter(t *testing.T) {
	f := newHandlerFixture(&mockCenterRepo{}, &fakeGeocoder{})

	body := `{"name":"Hospital Kuala Lumpur","address":"Jalan Pahang","latitude":3.1705,"longitude":101.6981,"status":"Open 24/7"}`
	ctx, rec := f.request(http.MethodPost, "/api/v1/emergency/centers", body)
	if err := f.h.AddCenter(ctx); err != nil {
		t.Fatalf("AddCenter() error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(f.repo.centers) != 1 {
		t.Fatalf("expected 1 stored center, got %d", len(f.repo.centers))
	}

	id := f.repo.centers[0].ID
	ctx, rec = f.request(http.MethodDelete, "/api/v1/emergency/centers/"+id.String(), "")
	ctx.SetParamNames("id")
	ctx.SetParamValues(id.String())
	if err := f.h.RemoveCenter(ctx); err != nil {
		t.Fatalf("RemoveCenter() error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(f.repo.centers) != 0 {
		t.Errorf("expected center removed, got %d remaining", len(f.repo.centers))
	}
}

func TestHandler_RemoveCenter_NotFound(t *testing.T) {
	f := newHandlerFixture(&mockCenterRepo{}, &fakeGeocoder{})

	ctx, _ := f.request(http.MethodDelete, "/api/v1/emergency/centers/"+uuid.NewString(), "")
	ctx.SetParamNames("id")
	ctx.SetParamValues(uuid.NewString())
	err := f.h.RemoveCenter(ctx)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_AddCenter_Invalid(t *testing.T) {
	f := newHandlerFixture(&mockCenterRepo{}, &fakeGeocoder{})

	ctx, _ := f.request(http.MethodPost, "/api/v1/emergency/centers", `{"latitude":3,"longitude":101}`)
	err := f.h.AddCenter(ctx)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing name, got %v", err)
	}
}
