package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atinyakov/FleetKeeper/internal/auth"
	"github.com/atinyakov/FleetKeeper/internal/models"
	"github.com/atinyakov/FleetKeeper/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore is an in-memory Store that records calls.
type memStore[T, C, P any] struct {
	calls  int
	create func(C) (*T, error)
	rows   map[int64]*T
	page   models.Page
	patch  P
	err    error
}

func (m *memStore[T, C, P]) Create(ctx context.Context, in C) (*T, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.create(in)
}

func (m *memStore[T, C, P]) List(ctx context.Context, page models.Page) ([]T, error) {
	m.calls++
	m.page = page
	out := []T{}
	for _, row := range m.rows {
		out = append(out, *row)
	}
	return out, m.err
}

func (m *memStore[T, C, P]) Get(ctx context.Context, id int64) (*T, error) {
	m.calls++
	if row, ok := m.rows[id]; ok {
		return row, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memStore[T, C, P]) Update(ctx context.Context, id int64, patch P) (*T, error) {
	m.calls++
	m.patch = patch
	if m.err != nil {
		return nil, m.err
	}
	if row, ok := m.rows[id]; ok {
		return row, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memStore[T, C, P]) Delete(ctx context.Context, id int64) (*T, error) {
	m.calls++
	row, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(m.rows, id)
	return row, nil
}

type fakeDriverStore struct {
	reassigned [2]int64
	page       models.Page
}

func (f *fakeDriverStore) List(ctx context.Context, page models.Page) ([]models.Driver, error) {
	f.page = page
	return []models.Driver{{UserID: 1, VehicleID: 3}}, nil
}

func (f *fakeDriverStore) GetByUserID(ctx context.Context, userID int64) (*models.Driver, error) {
	return &models.Driver{UserID: userID, VehicleID: 3}, nil
}

func (f *fakeDriverStore) GetByVehicleID(ctx context.Context, vehicleID int64) (*models.Driver, error) {
	return &models.Driver{UserID: 1, VehicleID: vehicleID}, nil
}

func (f *fakeDriverStore) Create(ctx context.Context, in models.Driver) (*models.Driver, error) {
	return &in, nil
}

func (f *fakeDriverStore) Reassign(ctx context.Context, userID, vehicleID int64) (*models.Driver, error) {
	f.reassigned = [2]int64{userID, vehicleID}
	return &models.Driver{UserID: userID, VehicleID: vehicleID}, nil
}

func (f *fakeDriverStore) Delete(ctx context.Context, userID int64) (*models.Driver, error) {
	return nil, repository.ErrNotFound
}

type fixture struct {
	router   http.Handler
	vehicles *memStore[models.Vehicle, models.Vehicle, models.VehiclePatch]
	auction  *memStore[models.AuctionVehicle, models.AuctionVehicle, models.AuctionVehiclePatch]
	drivers  *fakeDriverStore
}

func newFixture(t *testing.T, opts RouterOptions) *fixture {
	t.Helper()
	return newLoggedFixture(t, opts, zap.NewNop())
}

// newLoggedFixture wires every handler and the router with log, which may be nil.
func newLoggedFixture(t *testing.T, opts RouterOptions, log *zap.Logger) *fixture {
	t.Helper()
	v := NewValidator()

	vehicles := &memStore[models.Vehicle, models.Vehicle, models.VehiclePatch]{
		rows: map[int64]*models.Vehicle{3: {ID: 3, CarModel: "Corolla", LicensePlate: "AB-123", Make: "Toyota"}},
		create: func(in models.Vehicle) (*models.Vehicle, error) {
			in.ID = 4
			return &in, nil
		},
	}
	auction := &memStore[models.AuctionVehicle, models.AuctionVehicle, models.AuctionVehiclePatch]{
		rows: map[int64]*models.AuctionVehicle{},
	}
	drivers := &fakeDriverStore{}
	users := &memStore[models.User, models.UserCreate, models.UserPatch]{rows: map[int64]*models.User{}}
	maintenance := &memStore[models.MaintenanceRequest, models.MaintenanceRequest, models.MaintenanceRequestPatch]{}
	fueling := &memStore[models.FuelingRequest, models.FuelingRequest, models.FuelingRequestPatch]{}
	tasks := &memStore[models.Task, models.Task, models.TaskPatch]{}

	auctionHandler := NewResourceHandler[models.AuctionVehicle, models.AuctionVehicle, models.AuctionVehiclePatch]("auction vehicle", auction, v, log)
	auctionHandler.DefaultLimit = 100

	svc := &fakeAuthService{}
	if opts.Resolver == nil {
		opts.Resolver = svc
	}
	opts.Logger = log

	router := NewRouter(Handlers{
		Auth:        &AuthHandler{AuthService: svc, Log: log},
		Users:       NewResourceHandler[models.User, models.UserCreate, models.UserPatch]("user", users, v, log),
		Vehicles:    NewResourceHandler[models.Vehicle, models.Vehicle, models.VehiclePatch]("vehicle", vehicles, v, log),
		Drivers:     &DriverHandler{Store: drivers, Validate: v, Log: log},
		Maintenance: NewResourceHandler[models.MaintenanceRequest, models.MaintenanceRequest, models.MaintenanceRequestPatch]("maintenance request", maintenance, v, log),
		Fueling:     NewResourceHandler[models.FuelingRequest, models.FuelingRequest, models.FuelingRequestPatch]("fueling request", fueling, v, log),
		Tasks:       NewResourceHandler[models.Task, models.Task, models.TaskPatch]("task", tasks, v, log),
		Auction:     auctionHandler,
	}, opts)

	return &fixture{router: router, vehicles: vehicles, auction: auction, drivers: drivers}
}

func (f *fixture) do(method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ProtectedRoutesRejectBeforeStorage(t *testing.T) {
	f := newFixture(t, RouterOptions{Resolver: &fakeAuthService{resolveErr: auth.ErrTokenExpired}})

	for _, target := range []string{"/vehicles/", "/vehicles/3", "/drivers/", "/tasks/", "/users/"} {
		rec := f.do(http.MethodGet, target, "", "stale")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "Could not validate credentials", target)
	}
	rec := f.do(http.MethodGet, "/vehicles", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, f.vehicles.calls)
}

func TestRouter_TrailingSlashOptional(t *testing.T) {
	f := newFixture(t, RouterOptions{})

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/vehicles", "", "tok-alice").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/vehicles/", "", "tok-alice").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/vehicles/3/", "", "tok-alice").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/users/me/", "", "tok-alice").Code)
}

func TestRouter_MeUsesOwnResolution(t *testing.T) {
	f := newFixture(t, RouterOptions{Resolver: &fakeAuthService{resolveErr: auth.ErrPrincipalNotFound}})
	// the router-level resolver only guards CRUD; /users/me resolves through the auth handler
	rec := f.do(http.MethodGet, "/users/me", "", "tok-alice")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
}

func TestRouter_AuctionGuard(t *testing.T) {
	public := newFixture(t, RouterOptions{})
	assert.Equal(t, http.StatusOK, public.do(http.MethodGet, "/auction-vehicles", "", "").Code)

	guarded := newFixture(t, RouterOptions{ProtectAuction: true})
	assert.Equal(t, http.StatusUnauthorized, guarded.do(http.MethodGet, "/auction-vehicles", "", "").Code)
	assert.Equal(t, http.StatusOK, guarded.do(http.MethodGet, "/auction-vehicles", "", "tok-alice").Code)
}

func TestRouter_AuctionDefaultLimit(t *testing.T) {
	f := newFixture(t, RouterOptions{})
	f.do(http.MethodGet, "/auction-vehicles/", "", "")
	assert.Equal(t, 100, f.auction.page.Limit)
}

func TestRouter_Healthz(t *testing.T) {
	ok := newFixture(t, RouterOptions{Health: func(context.Context) error { return nil }})
	assert.Equal(t, http.StatusOK, ok.do(http.MethodGet, "/healthz", "", "").Code)

	down := newFixture(t, RouterOptions{Health: func(context.Context) error { return errors.New("refused") }})
	assert.Equal(t, http.StatusServiceUnavailable, down.do(http.MethodGet, "/healthz", "", "").Code)
}

func TestRouter_RejectsUnsupportedContentType(t *testing.T) {
	f := newFixture(t, RouterOptions{})
	req := httptest.NewRequest(http.MethodPost, "/vehicles", strings.NewReader("<vehicle/>"))
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Authorization", "Bearer tok-alice")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestResource_Create(t *testing.T) {
	f := newFixture(t, RouterOptions{})

	rec := f.do(http.MethodPost, "/vehicles/", `{"car_model":"Yaris","license_plate":"CD-456","make":"Toyota","year":2020}`, "tok-alice")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"id":4`)
}

func TestResource_CreateValidation(t *testing.T) {
	f := newFixture(t, RouterOptions{})

	rec := f.do(http.MethodPost, "/vehicles", `{"car_model":"Yaris","year":-1}`, "tok-alice")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"license_plate":"This field is required"`)
	assert.Contains(t, rec.Body.String(), `"year"`)

	rec = f.do(http.MethodPost, "/vehicles", `{"car_model":`, "tok-alice")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.vehicles.calls)
}

func TestResource_StoreErrors(t *testing.T) {
	f := newFixture(t, RouterOptions{})
	body := `{"car_model":"Yaris","license_plate":"CD-456","make":"Toyota"}`

	f.vehicles.err = repository.ErrConflict
	assert.Equal(t, http.StatusConflict, f.do(http.MethodPost, "/vehicles", body, "tok-alice").Code)

	f.vehicles.err = repository.ErrReference
	assert.Equal(t, http.StatusConflict, f.do(http.MethodPost, "/vehicles", body, "tok-alice").Code)

	f.vehicles.err = errors.New("connection reset")
	rec := f.do(http.MethodPost, "/vehicles", body, "tok-alice")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestResource_GetUpdateDelete(t *testing.T) {
	f := newFixture(t, RouterOptions{})

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/vehicles/99", "", "tok-alice").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/vehicles/abc", "", "tok-alice").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodPut, "/vehicles/3", `{"notes":""}`, "tok-alice").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPut, "/vehicles/99", `{"notes":""}`, "tok-alice").Code)

	rec := f.do(http.MethodDelete, "/vehicles/3", "", "tok-alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"car_model":"Corolla"`)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/vehicles/3", "", "tok-alice").Code)
}

func TestResource_ListPaging(t *testing.T) {
	f := newFixture(t, RouterOptions{})

	require.Equal(t, http.StatusOK, f.do(http.MethodGet, "/vehicles?skip=20&limit=5", "", "tok-alice").Code)
	assert.Equal(t, models.Page{Offset: 20, Limit: 5}, f.vehicles.page)

	require.Equal(t, http.StatusOK, f.do(http.MethodGet, "/vehicles", "", "tok-alice").Code)
	assert.Equal(t, models.Page{Limit: 10}, f.vehicles.page)

	require.Equal(t, http.StatusOK, f.do(http.MethodGet, "/vehicles?limit=1000", "", "tok-alice").Code)
	assert.Equal(t, MaxPageLimit, f.vehicles.page.Limit)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/vehicles?limit=-1", "", "tok-alice").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/vehicles?skip=x", "", "tok-alice").Code)
}

func TestResource_OversizedLimitRejected(t *testing.T) {
	f := newFixture(t, RouterOptions{})

	rec := f.do(http.MethodGet, "/auction-vehicles?limit=1099511627776", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "limit must not exceed 1000")
	assert.Zero(t, f.auction.calls)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/vehicles?limit=1001", "", "tok-alice").Code)
	assert.Zero(t, f.vehicles.calls)
}

func TestResource_UpdateNullClearsNullable(t *testing.T) {
	f := newFixture(t, RouterOptions{})

	rec := f.do(http.MethodPut, "/vehicles/3", `{"assigned_driver": null}`, "tok-alice")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, f.vehicles.patch.AssignedDriver.Set)
	assert.Nil(t, f.vehicles.patch.AssignedDriver.Value)

	rec = f.do(http.MethodPut, "/vehicles/3", `{"notes": "serviced"}`, "tok-alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, f.vehicles.patch.AssignedDriver.Set)

	rec = f.do(http.MethodPut, "/vehicles/3", `{"assigned_driver": 8}`, "tok-alice")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.vehicles.patch.AssignedDriver.Value)
	assert.Equal(t, int64(8), *f.vehicles.patch.AssignedDriver.Value)
}

func TestResource_UpdateValidatesNullableValue(t *testing.T) {
	f := newFixture(t, RouterOptions{})
	f.auction.rows[1] = &models.AuctionVehicle{ID: 1, VehicleID: 3}

	rec := f.do(http.MethodPut, "/auction-vehicles/1", `{"bought_user": -2}`, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bought_user"`)

	rec = f.do(http.MethodPut, "/auction-vehicles/1", `{"bought_user": null, "final_price": null}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, f.auction.patch.BoughtUser.Set)
	assert.True(t, f.auction.patch.FinalPrice.Set)
}

func TestRouter_NilLogger(t *testing.T) {
	f := newLoggedFixture(t, RouterOptions{Resolver: &fakeAuthService{resolveErr: auth.ErrTokenExpired}}, nil)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/vehicles", "", "stale").Code)

	f = newLoggedFixture(t, RouterOptions{}, nil)
	f.vehicles.err = errors.New("connection reset")
	assert.Equal(t, http.StatusInternalServerError,
		f.do(http.MethodPost, "/vehicles", `{"car_model":"Yaris","license_plate":"CD-456","make":"Toyota"}`, "tok-alice").Code)
}

func TestDrivers(t *testing.T) {
	f := newFixture(t, RouterOptions{})

	require.Equal(t, http.StatusOK, f.do(http.MethodGet, "/drivers", "", "tok-alice").Code)
	assert.Equal(t, models.Page{Limit: 10}, f.drivers.page)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/drivers?limit=5000", "", "tok-alice").Code)

	rec := f.do(http.MethodGet, "/drivers/by-vehicle/8", "", "tok-alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":1,"vehicle_id":8}`, rec.Body.String())

	rec = f.do(http.MethodPut, "/drivers/2?vehicle_id=9", "", "tok-alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, [2]int64{2, 9}, f.drivers.reassigned)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPut, "/drivers/2", "", "tok-alice").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/drivers/2", "", "tok-alice").Code)

	rec = f.do(http.MethodPost, "/drivers", `{"user_id":0,"vehicle_id":3}`, "tok-alice")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec = f.do(http.MethodPost, "/drivers", `{"user_id":5,"vehicle_id":3}`, "tok-alice")
	assert.Equal(t, http.StatusCreated, rec.Code)
}
