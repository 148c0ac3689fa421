package controllers_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"propshare/constants"
	"propshare/controllers"
	"propshare/middleware"
	"propshare/models"
	"propshare/response"
	"propshare/routes"
	"propshare/services"
	"propshare/services/allocation"
	"propshare/services/booking"
	"propshare/services/logger"
	"propshare/services/notification"
	"propshare/services/storage"
	"propshare/testutil"
	"propshare/validator"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var today = testutil.Date(2025, time.March, 10)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validator.RegisterGinValidators(); err != nil {
		panic(err)
	}
}

type fakeUploader struct {
	uploaded  []string
	destroyed []string
}

func (f *fakeUploader) Upload(_ context.Context, file io.Reader, in storage.UploadInput) (*storage.UploadResult, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	id := fmt.Sprintf("%s/%s", in.Folder, in.Filename)
	f.uploaded = append(f.uploaded, id)
	return &storage.UploadResult{URL: "https://cdn.example.com/" + id, PublicID: id, Size: int64(len(data))}, nil
}

func (f *fakeUploader) Destroy(_ context.Context, publicID, _ string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

type envelope struct {
	Code       int                  `json:"code"`
	Mess       string               `json:"mess"`
	Data       json.RawMessage      `json:"data"`
	Error      string               `json:"error"`
	Details    map[string]any       `json:"details"`
	Pagination *response.Pagination `json:"pagination"`
}

type env struct {
	t        *testing.T
	db       *gorm.DB
	router   *gin.Engine
	tokens   *services.TokenManager
	uploader *fakeUploader
	admin    string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	ctx := context.Background()
	require.NoError(t, services.SeedRoles(ctx, db))

	l := logger.NewNop()
	clock := testutil.FixedClock(today)
	tokens := services.NewTokenManager("test-secret", time.Hour)
	hub := notification.NewHub(nil, l)
	uploader := &fakeUploader{}

	bookings := booking.NewFacade(booking.Options{
		DB:       db,
		Logger:   l,
		Locker:   services.NoopLocker{},
		Notifier: notification.NewBookingNotifier(notification.NotifierOptions{DB: db, Hub: hub, Logger: l}),
		Clock:    clock,
	})
	users := services.NewUserService(services.UserServiceOptions{DB: db, Logger: l})
	ctrls := routes.Controllers{
		Auth:         controllers.NewAuthController(services.NewAuthService(services.AuthServiceOptions{DB: db, Tokens: tokens, Logger: l}), users, tokens),
		User:         controllers.NewUserController(users, services.NewRoleService(db, nil, l)),
		Property:     controllers.NewPropertyController(services.NewPropertyService(db, nil, l)),
		Amenity:      controllers.NewAmenityController(services.NewAmenityService(db, nil, l)),
		Holiday:      controllers.NewHolidayController(services.NewHolidayService(db, l)),
		Document:     controllers.NewDocumentController(services.NewDocumentService(db, uploader, l)),
		UserProperty: controllers.NewUserPropertyController(allocation.NewAllocator(allocation.Options{DB: db, Logger: l, Clock: clock})),
		Booking:      controllers.NewBookingController(bookings),
		Notification: controllers.NewNotificationController(notification.NewStore(db, hub), hub),
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	routes.SetupRoutes(router, ctrls, tokens)

	admin := models.User{Name: "Admin", Email: "admin@example.com", Role: constants.RoleAdmin, Status: constants.UserStatusActive}
	require.NoError(t, db.Create(&admin).Error)
	adminToken, err := tokens.GenerateToken(services.UserInfo{UserId: admin.ID, Role: constants.RoleAdmin})
	require.NoError(t, err)

	return &env{t: t, db: db, router: router, tokens: tokens, uploader: uploader, admin: adminToken}
}

func (e *env) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return e.serve(req, token)
}

func (e *env) serve(req *http.Request, token string) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	var res envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "text/plain; charset=utf-8" {
		require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	}
	return w, res
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

// registerOwner đăng ký qua API rồi đăng nhập, trả về id và token
func (e *env) registerOwner(email string) (uint, string) {
	e.t.Helper()
	w, res := e.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name": "Chủ sở hữu", "email": email, "password": "password123",
	})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	user := decode[map[string]any](e.t, res.Data)

	w, res = e.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": email, "password": "password123"})
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())
	login := decode[map[string]any](e.t, res.Data)
	return uint(user["id"].(float64)), login["accessToken"].(string)
}

func (e *env) createProperty(name string, shares int) uint {
	e.t.Helper()
	w, res := e.do(http.MethodPost, "/api/v1/properties", e.admin, map[string]any{
		"name": name, "address": "Lâm Đồng", "propertyShare": shares,
	})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	property := decode[map[string]any](e.t, res.Data)

	w, _ = e.do(http.MethodPut, fmt.Sprintf("/api/v1/properties/%v/details", property["id"]), e.admin, map[string]any{
		"peakSeasonStartDate":             "01/06/2020",
		"peakSeasonEndDate":               "31/08/2020",
		"peakSeasonAllottedNights":        10,
		"offSeasonAllottedNights":         20,
		"peakSeasonAllottedHolidayNights": 3,
		"offSeasonAllottedHolidayNights":  2,
		"lastMinuteBookingAllottedNights": 8,
	})
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())
	return uint(property["id"].(float64))
}

func TestAuthFlow(t *testing.T) {
	e := newEnv(t)
	_, token := e.registerOwner("owner@example.com")

	w, res := e.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[map[string]any](t, res.Data)
	assert.Equal(t, "owner@example.com", me["email"])
	assert.EqualValues(t, constants.RoleOwner, me["role"])

	w, res = e.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{"email": "owner@example.com", "password": "password123"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "USER_EXISTS", res.Error)

	w, res = e.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{"email": "not-an-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, res.Details, "email")
	assert.Contains(t, res.Details, "password")

	w, _ = e.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "owner@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = e.do(http.MethodPost, "/api/v1/auth/google", "", map[string]any{"idToken": "abc"})
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	w, _ = e.do(http.MethodPut, "/api/v1/auth/password", token, map[string]any{"oldPassword": "password123", "newPassword": "newpassword123"})
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = e.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "owner@example.com", "password": "newpassword123"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserAdministration(t *testing.T) {
	e := newEnv(t)
	ownerID, token := e.registerOwner("owner@example.com")

	w, _ := e.do(http.MethodGet, "/api/v1/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, res := e.do(http.MethodGet, "/api/v1/users?role=2", e.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, res.Pagination.Total)

	name := "Nguyễn Văn A"
	w, res = e.do(http.MethodPut, "/api/v1/users/me", token, map[string]any{"name": name, "phoneNumber": "0901234567"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, name, decode[map[string]any](t, res.Data)["name"])

	w, _ = e.do(http.MethodPut, fmt.Sprintf("/api/v1/users/%d/role", ownerID), e.admin, map[string]any{"role": 99})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = e.do(http.MethodPut, fmt.Sprintf("/api/v1/users/%d/role", ownerID), e.admin, map[string]any{"role": constants.RoleStaff})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = e.do(http.MethodPut, fmt.Sprintf("/api/v1/users/%d/status", ownerID), e.admin, map[string]any{"status": 0})
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = e.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "owner@example.com", "password": "password123"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, res = e.do(http.MethodGet, "/api/v1/roles", e.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Role](t, res.Data), 3)

	w, _ = e.do(http.MethodDelete, fmt.Sprintf("/api/v1/roles/%d", constants.RoleStaff), e.admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = e.do(http.MethodGet, "/api/v1/users/abc", e.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPropertyEndpoints(t *testing.T) {
	e := newEnv(t)
	_, owner := e.registerOwner("owner@example.com")

	w, _ := e.do(http.MethodPost, "/api/v1/properties", owner, map[string]any{"name": "X", "propertyShare": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = e.do(http.MethodPost, "/api/v1/properties", "", map[string]any{"name": "X", "propertyShare": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, res := e.do(http.MethodPost, "/api/v1/amenities/batch", e.admin, map[string]any{
		"amenities": []map[string]any{{"name": "Hồ bơi"}, {"name": "Bãi đỗ xe"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	amenities := decode[[]models.Amenity](t, res.Data)
	require.Len(t, amenities, 2)

	id := e.createProperty("Villa Đà Lạt", 4)
	e.createProperty("Căn hộ Nha Trang", 2)

	w, res = e.do(http.MethodPut, fmt.Sprintf("/api/v1/properties/%d/amenities", id), e.admin, map[string]any{
		"amenityIds": []uint{amenities[0].ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, res = e.do(http.MethodGet, "/api/v1/properties?q=da%20lat", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, res.Data)
	require.Len(t, list, 1)
	assert.Equal(t, "Villa Đà Lạt", list[0]["name"])

	w, res = e.do(http.MethodGet, fmt.Sprintf("/api/v1/properties/%d", id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[map[string]any](t, res.Data)
	details := detail["details"].(map[string]any)
	assert.Equal(t, "01/06/2020", details["peakSeasonStartDate"])
	assert.Len(t, detail["amenities"], 1)

	w, res = e.do(http.MethodPut, fmt.Sprintf("/api/v1/properties/%d/details", id), e.admin, map[string]any{
		"peakSeasonStartDate": "2020-06-01",
		"peakSeasonEndDate":   "31/08/2020",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, res.Details, "peakSeasonStartDate")

	w, _ = e.do(http.MethodGet, "/api/v1/properties/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = e.do(http.MethodDelete, fmt.Sprintf("/api/v1/properties/%d", id), e.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHolidayEndpoints(t *testing.T) {
	e := newEnv(t)

	w, res := e.do(http.MethodPost, "/api/v1/holidays", e.admin, map[string]any{
		"name": "Tết", "fromDate": "28/01/2025", "toDate": "02/02/2025",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, res.Data)
	assert.Equal(t, "28/01/2025", created["fromDate"])

	w, res = e.do(http.MethodPost, "/api/v1/holidays", e.admin, map[string]any{
		"name": "Sai", "fromDate": "10/02/2025", "toDate": "2025-02-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, res.Details, "toDate")

	w, _ = e.do(http.MethodPost, "/api/v1/holidays", e.admin, map[string]any{
		"name": "Ngược", "fromDate": "10/02/2025", "toDate": "01/02/2025",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = e.do(http.MethodPost, "/api/v1/holidays", e.admin, map[string]any{
		"name": "Quốc khánh", "fromDate": "02/09/2020", "toDate": "02/09/2020", "recurringYearly": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, res = e.do(http.MethodGet, "/api/v1/holidays?fromDate=01/01/2025&toDate=31/03/2025", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, res.Pagination.Total)

	w, res = e.do(http.MethodGet, "/api/v1/holidays?fromDate=2025-01-01", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, res.Details, "fromDate")

	w, res = e.do(http.MethodGet, "/api/v1/bookings?toDate=31-03-2025", e.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, res.Details, "toDate")

	w, _ = e.do(http.MethodPut, fmt.Sprintf("/api/v1/holidays/%v", created["id"]), e.admin, map[string]any{
		"name": "Tết Nguyên Đán", "fromDate": "28/01/2025", "toDate": "03/02/2025",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = e.do(http.MethodDelete, fmt.Sprintf("/api/v1/holidays/%v", created["id"]), e.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = e.do(http.MethodDelete, fmt.Sprintf("/api/v1/holidays/%v", created["id"]), e.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAllocationAndBookingFlow(t *testing.T) {
	e := newEnv(t)
	ownerID, owner := e.registerOwner("owner@example.com")
	propertyID := e.createProperty("Villa Đà Lạt", 4)

	w, res := e.do(http.MethodPost, "/api/v1/user-properties", e.admin, map[string]any{
		"userId":  ownerID,
		"entries": []map[string]any{{"propertyId": propertyID, "noOfShares": 5, "acquisitionDate": "01/01/2025"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INSUFFICIENT_SHARES", res.Error)

	w, res = e.do(http.MethodPost, "/api/v1/user-properties", e.admin, map[string]any{
		"userId":  ownerID,
		"entries": []map[string]any{{"propertyId": propertyID, "noOfShares": 2, "acquisitionDate": "01/01/2025"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rows := decode[[]map[string]any](t, res.Data)
	require.Len(t, rows, 4)
	assert.EqualValues(t, 2025, rows[0]["year"])
	assert.EqualValues(t, 21, rows[0]["maximumStayLength"])
	acquisitionID := rows[0]["acquisitionId"].(string)

	w, res = e.do(http.MethodGet, "/api/v1/user-properties?year=2025", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]map[string]any](t, res.Data)
	require.Len(t, mine, 1)
	assert.EqualValues(t, 40, mine[0]["offSeason"].(map[string]any)["remaining"])
	assert.Equal(t, "Villa Đà Lạt", mine[0]["propertyName"])

	booking := map[string]any{"propertyId": propertyID, "checkInDate": "10/04/2025", "checkOutDate": "15/04/2025", "guests": 2}
	w, res = e.do(http.MethodPost, "/api/v1/bookings/preview", owner, booking)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	quote := decode[map[string]any](t, res.Data)
	assert.EqualValues(t, 5, quote["nights"])
	assert.Equal(t, "standard", quote["process"])

	w, res = e.do(http.MethodPost, "/api/v1/bookings", owner, booking)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, res.Data)
	assert.EqualValues(t, models.BookingStatusConfirmed, created["status"])
	assert.Equal(t, "10/04/2025", created["checkInDate"])
	bookingID := created["id"]

	w, res = e.do(http.MethodPost, "/api/v1/bookings", owner, booking)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PROPERTY_UNAVAILABLE", res.Error)

	w, _ = e.do(http.MethodDelete, "/api/v1/user-properties/"+acquisitionID, e.admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	_, stranger := e.registerOwner("stranger@example.com")
	w, _ = e.do(http.MethodGet, fmt.Sprintf("/api/v1/bookings/%v", bookingID), stranger, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = e.do(http.MethodPut, fmt.Sprintf("/api/v1/bookings/%v/cancel", bookingID), stranger, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, res = e.do(http.MethodGet, "/api/v1/bookings", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, res.Pagination.Total)
	w, res = e.do(http.MethodGet, "/api/v1/bookings", stranger, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, res.Pagination.Total)

	w, res = e.do(http.MethodPut, fmt.Sprintf("/api/v1/bookings/%v/cancel", bookingID), owner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cancelled := decode[map[string]any](t, res.Data)
	assert.EqualValues(t, models.BookingStatusCancelled, cancelled["status"])
	assert.Equal(t, false, cancelled["lateCancel"])

	w, _ = e.do(http.MethodPut, fmt.Sprintf("/api/v1/bookings/%v/complete", bookingID), e.admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, res = e.do(http.MethodGet, "/api/v1/notifications?unread=true", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, res.Pagination.Total)

	w, res = e.do(http.MethodPut, "/api/v1/notifications/read-all", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode[map[string]any](t, res.Data)["updated"])
}

func TestAdminBooksOnBehalfOfOwner(t *testing.T) {
	e := newEnv(t)
	ownerID, _ := e.registerOwner("owner@example.com")
	propertyID := e.createProperty("Villa Đà Lạt", 4)
	w, _ := e.do(http.MethodPost, "/api/v1/user-properties", e.admin, map[string]any{
		"userId":  ownerID,
		"entries": []map[string]any{{"propertyId": propertyID, "noOfShares": 1, "acquisitionDate": "01/01/2025"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, res := e.do(http.MethodPost, "/api/v1/bookings", e.admin, map[string]any{
		"userId": ownerID, "propertyId": propertyID, "checkInDate": "15/03/2025", "checkOutDate": "17/03/2025",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, res.Data)
	assert.EqualValues(t, ownerID, created["userId"])
	assert.Equal(t, true, created["lastMinute"])

	w, _ = e.do(http.MethodPost, "/api/v1/bookings", e.admin, map[string]any{
		"userId": ownerID, "propertyId": propertyID, "checkInDate": "01/03/2025", "checkOutDate": "03/03/2025",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentEndpoints(t *testing.T) {
	e := newEnv(t)
	propertyID := e.createProperty("Villa Đà Lạt", 4)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("name", "Sổ hồng"))
	part, err := mw.CreateFormFile("file", "so-hong.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 test"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/properties/%d/documents", propertyID), body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w, res := e.serve(req, e.admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	doc := decode[models.Document](t, res.Data)
	assert.Equal(t, "Sổ hồng", doc.Name)
	assert.Equal(t, int64(13), doc.Size)
	assert.Len(t, e.uploader.uploaded, 1)

	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/properties/%d/documents", propertyID), nil)
	w, _ = e.serve(req, e.admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, res = e.do(http.MethodGet, fmt.Sprintf("/api/v1/properties/%d/documents", propertyID), e.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Document](t, res.Data), 1)

	w, _ = e.do(http.MethodDelete, fmt.Sprintf("/api/v1/properties/%d", propertyID), e.admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = e.do(http.MethodDelete, fmt.Sprintf("/api/v1/properties/%d/documents/%d", propertyID, doc.ID), e.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{doc.PublicID}, e.uploader.destroyed)
}

func TestNotificationEndpoints(t *testing.T) {
	e := newEnv(t)
	ownerID, owner := e.registerOwner("owner@example.com")

	w, res := e.do(http.MethodPost, "/api/v1/notifications/send", e.admin, map[string]any{"userId": ownerID, "message": "Xin chào"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 0, decode[map[string]any](t, res.Data)["delivered"])

	w, _ = e.do(http.MethodPost, "/api/v1/notifications/send", owner, map[string]any{"userId": ownerID, "message": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, res = e.do(http.MethodGet, "/api/v1/notifications", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]models.Notification](t, res.Data)
	require.Len(t, list, 1)

	w, _ = e.do(http.MethodPut, fmt.Sprintf("/api/v1/notifications/%d/read", list[0].ID), owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = e.do(http.MethodPut, fmt.Sprintf("/api/v1/notifications/%d/read", list[0].ID+100), owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, res = e.do(http.MethodGet, fmt.Sprintf("/api/v1/notifications/online/%d", ownerID), e.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode[map[string]any](t, res.Data)["connections"])
}
