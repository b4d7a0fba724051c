package tests

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bella-vista/client"
	"bella-vista/domain"
	"bella-vista/site-svc/internal/mocks"
	"bella-vista/site-svc/internal/sections"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticReader[T any] struct {
	items []T
	err   error
}

func (s staticReader[T]) GetAll(context.Context) ([]T, error) {
	return s.items, s.err
}

var errDown = errors.New("content-svc down")

func menuItem(id, category string, available bool) domain.MenuItem {
	return domain.MenuItem{ID: id, Name: id, Category: category, Price: decimal.NewFromInt(10), Available: available}
}

func newSections(readers sections.Readers, creator sections.ReservationCreator) *sections.Sections {
	if readers.Menu == nil {
		readers.Menu = staticReader[domain.MenuItem]{}
	}
	if readers.Gallery == nil {
		readers.Gallery = staticReader[domain.GalleryItem]{}
	}
	if readers.Testimonials == nil {
		readers.Testimonials = staticReader[domain.Testimonial]{}
	}
	return sections.NewSections(readers, creator, nil)
}

func TestSections_Menu(t *testing.T) {
	stored := []domain.MenuItem{
		menuItem("soup", "Starters", true),
		menuItem("steak", "Mains", true),
		menuItem("sold-out", "Mains", false),
	}

	tests := []struct {
		name     string
		reader   staticReader[domain.MenuItem]
		category string
		wantIDs  []string
		wantErr  bool
	}{
		{name: "all_hides_unavailable", reader: staticReader[domain.MenuItem]{items: stored}, wantIDs: []string{"soup", "steak"}},
		{name: "filtered", reader: staticReader[domain.MenuItem]{items: stored}, category: "Mains", wantIDs: []string{"steak"}},
		{name: "case_insensitive", reader: staticReader[domain.MenuItem]{items: stored}, category: "starters", wantIDs: []string{"soup"}},
		{name: "empty_category", reader: staticReader[domain.MenuItem]{items: stored}, category: "Beverages", wantIDs: []string{}},
		{name: "unknown_category", reader: staticReader[domain.MenuItem]{items: stored}, category: "Pizza", wantErr: true},
		{name: "empty_source_uses_bundled_menu", reader: staticReader[domain.MenuItem]{}, category: "Desserts", wantIDs: []string{"menu-4"}},
		{name: "failing_source_uses_bundled_menu", reader: staticReader[domain.MenuItem]{err: errDown}, category: "Beverages", wantIDs: []string{"menu-6"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			s := newSections(sections.Readers{Menu: testCase.reader}, nil)

			view, err := s.Menu(context.Background(), testCase.category)

			if testCase.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			ids := []string{}
			for _, item := range view.Items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, testCase.wantIDs, ids)
			assert.Equal(t, sections.Categories, view.Categories)
		})
	}
}

func TestSections_Gallery(t *testing.T) {
	s := newSections(sections.Readers{Gallery: staticReader[domain.GalleryItem]{items: []domain.GalleryItem{
		{ID: "g1", Title: "Terrace", URL: "/img/t.jpg"},
		{ID: "g2", Title: "Broken"},
	}}}, nil)

	view := s.Gallery(context.Background())

	require.Len(t, view.Items, 1)
	assert.Equal(t, "Terrace", view.Items[0].Alt)

	fallback := newSections(sections.Readers{Gallery: staticReader[domain.GalleryItem]{err: errDown}}, nil)
	assert.Len(t, fallback.Gallery(context.Background()).Items, len(client.DefaultGallery()))
}

func TestSections_Testimonials(t *testing.T) {
	s := newSections(sections.Readers{Testimonials: staticReader[domain.Testimonial]{items: []domain.Testimonial{
		{ID: "t1", Name: "", Rating: 4, Comment: "Lovely"},
		{ID: "t2", Name: "Luca", Rating: 0, Comment: "Perfetto"},
		{ID: "t3", Name: "Maria", Rating: 3, Comment: "Fine"},
	}}}, nil)

	view := s.Testimonials(context.Background())

	require.Len(t, view.Items, 3)
	assert.Equal(t, "Anonymous", view.Items[0].Name)
	assert.Equal(t, 5, view.Items[1].Rating)
	assert.Equal(t, "4", view.AverageRating.String())
}

func TestSections_BookTable(t *testing.T) {
	valid := sections.ReservationRequest{Name: " Ana ", Email: "ana@example.com", Date: "2026-10-24", Time: "19:30", Guests: 2}

	tests := []struct {
		name      string
		mutate    func(r *sections.ReservationRequest)
		setupMock func(m *mocks.ReservationCreator)
		wantField string
		wantErr   error
	}{
		{
			name: "success",
			setupMock: func(m *mocks.ReservationCreator) {
				m.On("Create", mock.Anything, domain.ReservationInput{
					Name: "Ana", Email: "ana@example.com", Date: "2026-10-24", Time: "19:30", Guests: 2, Status: domain.StatusPending,
				}).Return(&domain.Reservation{ID: "r1", Status: domain.StatusPending}, nil).Once()
			},
		},
		{name: "time_outside_seatings", mutate: func(r *sections.ReservationRequest) { r.Time = "16:30" }, wantField: "time", wantErr: domain.ErrValidation},
		{name: "time_off_the_half_hour", mutate: func(r *sections.ReservationRequest) { r.Time = "19:15" }, wantField: "time", wantErr: domain.ErrValidation},
		{name: "malformed_time", mutate: func(r *sections.ReservationRequest) { r.Time = "7pm" }, wantField: "time", wantErr: domain.ErrValidation},
		{name: "too_many_guests", mutate: func(r *sections.ReservationRequest) { r.Guests = 9 }, wantField: "guests", wantErr: domain.ErrValidation},
		{name: "no_guests", mutate: func(r *sections.ReservationRequest) { r.Guests = 0 }, wantField: "guests", wantErr: domain.ErrValidation},
		{name: "bad_email", mutate: func(r *sections.ReservationRequest) { r.Email = "ana" }, wantField: "email", wantErr: domain.ErrValidation},
		{name: "bad_date", mutate: func(r *sections.ReservationRequest) { r.Date = "24/10/2026" }, wantField: "date", wantErr: domain.ErrValidation},
		{
			name: "backend_down",
			setupMock: func(m *mocks.ReservationCreator) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrStorageUnavailable).Once()
			},
			wantErr: domain.ErrStorageUnavailable,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			creator := mocks.NewReservationCreator(t)
			if testCase.setupMock != nil {
				testCase.setupMock(creator)
			}
			req := valid
			if testCase.mutate != nil {
				testCase.mutate(&req)
			}

			created, err := newSections(sections.Readers{}, creator).BookTable(context.Background(), req)

			if testCase.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, domain.StatusPending, created.Status)
				return
			}
			assert.ErrorIs(t, err, testCase.wantErr)
			if testCase.wantField != "" {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				fields := []string{}
				for _, f := range verr.Fields {
					fields = append(fields, f.Field)
				}
				assert.Equal(t, []string{testCase.wantField}, fields)
			}
		})
	}
}

func TestSectionsHandler(t *testing.T) {
	creator := mocks.NewReservationCreator(t)
	handler := sections.NewHandler(newSections(sections.Readers{}, creator), nil)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
		return rr
	}

	rr := do(http.MethodGet, "/sections/menu?category=Mains", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"active":"Mains"`)
	assert.Contains(t, rr.Body.String(), "Truffle Risotto")

	rr = do(http.MethodGet, "/sections/menu?category=Pizza", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(http.MethodGet, "/sections/testimonials", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"averageRating":5`)

	rr = do(http.MethodGet, "/sections/reservations", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"22:00"`)

	rr = do(http.MethodPost, "/sections/reservations", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	creator.On("Create", mock.Anything, mock.Anything).Return(nil, errDown).Once()
	rr = do(http.MethodPost, "/sections/reservations", `{"name":"Ana","email":"ana@example.com","date":"2026-10-24","time":"20:00","guests":4}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	creator.On("Create", mock.Anything, mock.Anything).Return(&domain.Reservation{ID: "r2", Status: domain.StatusPending}, nil).Once()
	rr = do(http.MethodPost, "/sections/reservations", `{"name":"Ana","email":"ana@example.com","date":"2026-10-24","time":"20:00","guests":4}`)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"pending"`)
}
