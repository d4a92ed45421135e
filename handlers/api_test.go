package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"presspass-server/access"
	"presspass-server/cache"
	"presspass-server/crypto"
	"presspass-server/db"
	"presspass-server/handlers"
	"presspass-server/models"
	"presspass-server/routes"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const testPassword = "Password123!"

func setupAPI(t *testing.T) *echo.Echo {
	t.Helper()
	t.Setenv("DB_DIALECT", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("JWT_SECRET", "test_secret")

	db.InitDB()
	db.MigrateDB()
	if err := db.SeedDB(db.Conn); err != nil {
		t.Fatalf("Failed to seed database: %v", err)
	}

	resolver := access.NewResolver(&access.GormSubscriptionStore{Conn: db.Conn}, cache.NewMemoryCache())
	handlers.InitAccessEngine(access.NewEngine(resolver))

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.OFF)
	e.Validator = handlers.NewRequestValidator()
	routes.RegisterRoutes(e)
	return e
}

func createUser(t *testing.T, username string, role models.Role, staff bool) *models.User {
	t.Helper()
	hash, err := crypto.NewCrypto().HashPassword(testPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Role:     role,
		IsStaff:  staff,
		IsActive: true,
	}
	if err := db.Conn.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return &user
}

func createArticle(t *testing.T, author *models.User, status models.NewsStatus, category models.VerticalSlug, pro bool) *models.News {
	t.Helper()
	news := models.News{
		Title:        "Article by " + author.Username,
		Content:      "Body",
		Category:     category,
		IsProContent: pro,
		Status:       status,
		AuthorID:     author.ID,
	}
	if status == models.PublishedNews {
		now := time.Now()
		news.PublicationDate = &now
	}
	if err := db.Conn.Create(&news).Error; err != nil {
		t.Fatalf("Failed to create article: %v", err)
	}
	return &news
}

func createPlanWithVertical(t *testing.T, slug string, category models.VerticalSlug) *models.Plan {
	t.Helper()
	var vertical models.Vertical
	if err := db.Conn.Where("slug = ?", category).First(&vertical).Error; err != nil {
		t.Fatalf("Failed to load vertical %s: %v", category, err)
	}
	plan := models.Plan{
		Name:      slug,
		Slug:      slug,
		PlanType:  models.ProPlan,
		Price:     100,
		Verticals: []models.Vertical{vertical},
		IsActive:  true,
	}
	if err := db.Conn.Create(&plan).Error; err != nil {
		t.Fatalf("Failed to create plan: %v", err)
	}
	return &plan
}

func subscribe(t *testing.T, user *models.User, plan *models.Plan) *models.Subscription {
	t.Helper()
	subscription := models.Subscription{
		Status:    models.ActiveSubscription,
		StartDate: time.Now().Add(-time.Hour),
		UserID:    user.ID,
		PlanID:    plan.ID,
	}
	if err := db.Conn.Create(&subscription).Error; err != nil {
		t.Fatalf("Failed to create subscription: %v", err)
	}
	return &subscription
}

func doRequest(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()
	rec := doRequest(t, e, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"username": username,
		"password": testPassword,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Login for %s failed with status %d: %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		SessionToken string `json:"session_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse login response: %v", err)
	}
	if resp.SessionToken == "" {
		t.Fatal("Expected a session token in login response")
	}
	return resp.SessionToken
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestRegisterForcesReaderRole(t *testing.T) {
	e := setupAPI(t)

	rec := doRequest(t, e, http.MethodPost, "/v1/auth/register", "", map[string]any{
		"username":         "newreader",
		"email":            "newreader@example.com",
		"password":         testPassword,
		"password_confirm": testPassword,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var user models.User
	if err := db.Conn.Where("username = ?", "newreader").First(&user).Error; err != nil {
		t.Fatalf("Registered user not found: %v", err)
	}
	if user.Role != models.RoleReader {
		t.Errorf("Expected role reader, got %s", user.Role)
	}
	if user.IsStaff {
		t.Error("Self-registered users must not be staff")
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	e := setupAPI(t)

	rec := doRequest(t, e, http.MethodPost, "/v1/auth/register", "", map[string]any{
		"username":         "mismatch",
		"email":            "mismatch@example.com",
		"password":         testPassword,
		"password_confirm": "Different123",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	fields, ok := body["message"].(map[string]any)
	if !ok {
		t.Fatalf("Expected field error map, got %v", body["message"])
	}
	if _, ok := fields["password_confirm"]; !ok {
		t.Error("Expected an error attached to password_confirm")
	}
}

func TestLoginWrongPasswordIsAudited(t *testing.T) {
	e := setupAPI(t)
	user := createUser(t, "victim", models.RoleReader, false)

	rec := doRequest(t, e, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"username": "victim",
		"password": "WrongPassword1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", rec.Code)
	}

	var event models.EventLog
	err := db.Conn.Where("action = ? AND status = ? AND user_id = ?", "user.login", models.EventDenied, user.ID).First(&event).Error
	if err != nil {
		t.Errorf("Expected a denied login event: %v", err)
	}
}

func TestAnonymousProContentAccess(t *testing.T) {
	e := setupAPI(t)
	editor := createUser(t, "editor1", models.RoleEditor, false)
	free := createArticle(t, editor, models.PublishedNews, models.VerticalPower, false)
	pro := createArticle(t, editor, models.PublishedNews, models.VerticalTax, true)

	rec := doRequest(t, e, http.MethodGet, "/v1/news/"+itoa(free.ID), "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for free article, got %d", rec.Code)
	}

	rec = doRequest(t, e, http.MethodGet, "/v1/news/"+itoa(pro.ID), "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for anonymous pro access, got %d", rec.Code)
	}
}

func TestReaderProContentRequiresMatchingVertical(t *testing.T) {
	e := setupAPI(t)
	editor := createUser(t, "editor1", models.RoleEditor, false)
	taxArticle := createArticle(t, editor, models.PublishedNews, models.VerticalTax, true)
	healthArticle := createArticle(t, editor, models.PublishedNews, models.VerticalHealth, true)

	subscriber := createUser(t, "subscriber", models.RoleReader, false)
	plan := createPlanWithVertical(t, "pro-tax", models.VerticalTax)
	subscribe(t, subscriber, plan)

	token := login(t, e, "subscriber")

	rec := doRequest(t, e, http.MethodGet, "/v1/news/"+itoa(taxArticle.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for covered vertical, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, e, http.MethodGet, "/v1/news/"+itoa(healthArticle.ID), token, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for uncovered vertical, got %d", rec.Code)
	}
}

func TestReaderWithoutSubscriptionDeniedProContent(t *testing.T) {
	e := setupAPI(t)
	editor := createUser(t, "editor1", models.RoleEditor, false)
	pro := createArticle(t, editor, models.PublishedNews, models.VerticalTax, true)
	createUser(t, "freeloader", models.RoleReader, false)

	token := login(t, e, "freeloader")
	rec := doRequest(t, e, http.MethodGet, "/v1/news/"+itoa(pro.ID), token, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 without subscription, got %d", rec.Code)
	}
}

func TestEditorsReadProContentWithoutSubscription(t *testing.T) {
	e := setupAPI(t)
	author := createUser(t, "author", models.RoleEditor, false)
	other := createUser(t, "colleague", models.RoleEditor, false)
	pro := createArticle(t, author, models.PublishedNews, models.VerticalTax, true)

	token := login(t, e, other.Username)
	rec := doRequest(t, e, http.MethodGet, "/v1/news/"+itoa(pro.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for editor reading pro content, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDraftVisibility(t *testing.T) {
	e := setupAPI(t)
	author := createUser(t, "author", models.RoleEditor, false)
	createUser(t, "other", models.RoleEditor, false)
	createUser(t, "reader1", models.RoleReader, false)
	draft := createArticle(t, author, models.DraftNews, models.VerticalPower, false)

	readerToken := login(t, e, "reader1")
	rec := doRequest(t, e, http.MethodGet, "/v1/news/"+itoa(draft.ID), readerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for reader fetching a draft, got %d", rec.Code)
	}

	otherToken := login(t, e, "other")
	rec = doRequest(t, e, http.MethodGet, "/v1/news/"+itoa(draft.ID), otherToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for another editor fetching a draft, got %d", rec.Code)
	}

	authorToken := login(t, e, "author")
	rec = doRequest(t, e, http.MethodGet, "/v1/news/"+itoa(draft.ID), authorToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for the author fetching their draft, got %d", rec.Code)
	}

	// Anonymous list must not include drafts.
	rec = doRequest(t, e, http.MethodGet, "/v1/news", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 listing articles, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if data, ok := body["data"].([]any); ok && len(data) != 0 {
		t.Errorf("Expected empty anonymous list, got %d items", len(data))
	}
}

func TestListOmitsArticleBody(t *testing.T) {
	e := setupAPI(t)
	editor := createUser(t, "editor1", models.RoleEditor, false)
	createArticle(t, editor, models.PublishedNews, models.VerticalPower, false)

	rec := doRequest(t, e, http.MethodGet, "/v1/news", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	data := body["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(data))
	}
	item := data[0].(map[string]any)
	if content, ok := item["content"]; ok && content != "" {
		t.Errorf("List responses must not carry article bodies, got %v", content)
	}
}

func TestEditorCannotMutateOthersArticle(t *testing.T) {
	e := setupAPI(t)
	author := createUser(t, "author", models.RoleEditor, false)
	createUser(t, "rival", models.RoleEditor, false)
	article := createArticle(t, author, models.PublishedNews, models.VerticalPower, false)

	token := login(t, e, "rival")
	rec := doRequest(t, e, http.MethodPatch, "/v1/news/"+itoa(article.ID), token, map[string]string{
		"title": "Hijacked",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rec.Code)
	}

	rec = doRequest(t, e, http.MethodDelete, "/v1/news/"+itoa(article.ID), token, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 on delete, got %d", rec.Code)
	}
}

func TestPublishStampsPublicationDate(t *testing.T) {
	e := setupAPI(t)
	author := createUser(t, "author", models.RoleEditor, false)
	draft := createArticle(t, author, models.DraftNews, models.VerticalPower, false)

	token := login(t, e, "author")
	rec := doRequest(t, e, http.MethodPost, "/v1/news/"+itoa(draft.ID)+"/publish", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var published models.News
	if err := db.Conn.First(&published, draft.ID).Error; err != nil {
		t.Fatalf("Failed to reload article: %v", err)
	}
	if published.Status != models.PublishedNews {
		t.Errorf("Expected published status, got %s", published.Status)
	}
	if published.PublicationDate == nil {
		t.Fatal("Expected publication date to be stamped")
	}

	first := *published.PublicationDate

	// Publishing again re-stamps the date.
	time.Sleep(10 * time.Millisecond)
	rec = doRequest(t, e, http.MethodPost, "/v1/news/"+itoa(draft.ID)+"/publish", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 on republish, got %d", rec.Code)
	}
	if err := db.Conn.First(&published, draft.ID).Error; err != nil {
		t.Fatalf("Failed to reload article: %v", err)
	}
	if !published.PublicationDate.After(first) {
		t.Error("Expected republish to move the publication date forward")
	}
}

func TestReaderCannotCreateArticles(t *testing.T) {
	e := setupAPI(t)
	createUser(t, "reader1", models.RoleReader, false)

	token := login(t, e, "reader1")
	rec := doRequest(t, e, http.MethodPost, "/v1/news", token, map[string]any{
		"title":    "Nope",
		"content":  "Body",
		"category": "poder",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rec.Code)
	}
}

func TestSubscriptionEndDateValidation(t *testing.T) {
	e := setupAPI(t)
	admin := createUser(t, "boss", models.RoleAdmin, true)
	reader := createUser(t, "reader1", models.RoleReader, false)
	plan := createPlanWithVertical(t, "pro-tax", models.VerticalTax)

	token := login(t, e, admin.Username)
	start := time.Now()
	rec := doRequest(t, e, http.MethodPost, "/v1/subscriptions", token, map[string]any{
		"user_id":    reader.ID,
		"plan_id":    plan.ID,
		"start_date": start.Format(time.RFC3339),
		"end_date":   start.Add(-time.Hour).Format(time.RFC3339),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	fields, ok := body["message"].(map[string]any)
	if !ok {
		t.Fatalf("Expected field error map, got %v", body["message"])
	}
	if _, ok := fields["end_date"]; !ok {
		t.Error("Expected an error attached to end_date")
	}
}

func TestDuplicateSubscriptionConflict(t *testing.T) {
	e := setupAPI(t)
	admin := createUser(t, "boss", models.RoleAdmin, true)
	reader := createUser(t, "reader1", models.RoleReader, false)
	plan := createPlanWithVertical(t, "pro-tax", models.VerticalTax)
	subscribe(t, reader, plan)

	token := login(t, e, admin.Username)
	rec := doRequest(t, e, http.MethodPost, "/v1/subscriptions", token, map[string]any{
		"user_id": reader.ID,
		"plan_id": plan.ID,
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestResubscribeAfterDelete(t *testing.T) {
	e := setupAPI(t)
	admin := createUser(t, "boss", models.RoleAdmin, true)
	reader := createUser(t, "reader1", models.RoleReader, false)
	plan := createPlanWithVertical(t, "pro-tax", models.VerticalTax)
	subscription := subscribe(t, reader, plan)

	token := login(t, e, admin.Username)
	rec := doRequest(t, e, http.MethodDelete, "/v1/subscriptions/"+itoa(subscription.ID), token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204 deleting subscription, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, e, http.MethodPost, "/v1/subscriptions", token, map[string]any{
		"user_id": reader.ID,
		"plan_id": plan.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201 re-subscribing after delete, got %d: %s", rec.Code, rec.Body.String())
	}

	var count int64
	if err := db.Conn.Model(&models.Subscription{}).Where("user_id = ? AND plan_id = ?", reader.ID, plan.ID).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count subscriptions: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected a single live subscription, got %d", count)
	}
}

func TestSubscriptionVisibility(t *testing.T) {
	e := setupAPI(t)
	reader := createUser(t, "reader1", models.RoleReader, false)
	snoop := createUser(t, "snoop", models.RoleReader, false)
	plan := createPlanWithVertical(t, "pro-tax", models.VerticalTax)
	subscription := subscribe(t, reader, plan)

	snoopToken := login(t, e, snoop.Username)
	rec := doRequest(t, e, http.MethodGet, "/v1/subscriptions/"+itoa(subscription.ID), snoopToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for another user's subscription, got %d", rec.Code)
	}

	rec = doRequest(t, e, http.MethodGet, "/v1/subscriptions", snoopToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 listing subscriptions, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if data, ok := body["data"].([]any); ok && len(data) != 0 {
		t.Errorf("Expected empty list for non-subscriber, got %d items", len(data))
	}

	ownerToken := login(t, e, reader.Username)
	rec = doRequest(t, e, http.MethodGet, "/v1/subscriptions/"+itoa(subscription.ID), ownerToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for own subscription, got %d", rec.Code)
	}
}

func TestCreateEditorRequiresAdmin(t *testing.T) {
	e := setupAPI(t)
	createUser(t, "reader1", models.RoleReader, false)
	admin := createUser(t, "boss", models.RoleAdmin, true)

	payload := map[string]string{
		"username": "neweditor",
		"email":    "neweditor@example.com",
		"password": testPassword,
	}

	readerToken := login(t, e, "reader1")
	rec := doRequest(t, e, http.MethodPost, "/v1/users/editors", readerToken, payload)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for reader, got %d", rec.Code)
	}

	createUser(t, "staffreader", models.RoleReader, true)
	staffReaderToken := login(t, e, "staffreader")
	rec = doRequest(t, e, http.MethodPost, "/v1/users/editors", staffReaderToken, payload)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for staff-flagged reader, got %d", rec.Code)
	}

	adminToken := login(t, e, admin.Username)
	rec = doRequest(t, e, http.MethodPost, "/v1/users/editors", adminToken, payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201 for admin, got %d: %s", rec.Code, rec.Body.String())
	}

	var editor models.User
	if err := db.Conn.Where("username = ?", "neweditor").First(&editor).Error; err != nil {
		t.Fatalf("Created editor not found: %v", err)
	}
	if editor.Role != models.RoleEditor {
		t.Errorf("Expected editor role, got %s", editor.Role)
	}
}

func TestCreateAdminRequiresStaff(t *testing.T) {
	e := setupAPI(t)
	createUser(t, "plainadmin", models.RoleAdmin, false)
	createUser(t, "staffadmin", models.RoleAdmin, true)

	payload := map[string]string{
		"username": "newadmin",
		"email":    "newadmin@example.com",
		"password": testPassword,
	}

	plainToken := login(t, e, "plainadmin")
	rec := doRequest(t, e, http.MethodPost, "/v1/users/admins", plainToken, payload)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-staff admin, got %d", rec.Code)
	}

	createUser(t, "staffeditor", models.RoleEditor, true)
	staffEditorToken := login(t, e, "staffeditor")
	rec = doRequest(t, e, http.MethodPost, "/v1/users/admins", staffEditorToken, payload)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for staff-flagged editor, got %d", rec.Code)
	}

	staffToken := login(t, e, "staffadmin")
	rec = doRequest(t, e, http.MethodPost, "/v1/users/admins", staffToken, payload)
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected 201 for staff admin, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPlanCurrentPriceInResponse(t *testing.T) {
	e := setupAPI(t)
	until := time.Now().Add(48 * time.Hour)
	plan := models.Plan{
		Name:               "Promo",
		Slug:               "promo",
		PlanType:           models.ProPlan,
		Price:              100,
		IsActive:           true,
		DiscountPercent:    25,
		DiscountValidUntil: &until,
	}
	if err := db.Conn.Create(&plan).Error; err != nil {
		t.Fatalf("Failed to create plan: %v", err)
	}

	rec := doRequest(t, e, http.MethodGet, "/v1/plans/"+itoa(plan.ID), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if got := body["current_price"].(float64); got != 75 {
		t.Errorf("Expected current_price 75, got %v", got)
	}
	if got := body["price"].(float64); got != 100 {
		t.Errorf("Expected list price 100, got %v", got)
	}
}

func TestEventLogsAdminOnly(t *testing.T) {
	e := setupAPI(t)
	createUser(t, "reader1", models.RoleReader, false)
	admin := createUser(t, "boss", models.RoleAdmin, true)

	readerToken := login(t, e, "reader1")
	rec := doRequest(t, e, http.MethodGet, "/v1/event-logs", readerToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for reader, got %d", rec.Code)
	}

	adminToken := login(t, e, admin.Username)
	rec = doRequest(t, e, http.MethodGet, "/v1/event-logs", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for admin, got %d", rec.Code)
	}
}

func TestMeIncludesActiveSubscription(t *testing.T) {
	e := setupAPI(t)
	reader := createUser(t, "reader1", models.RoleReader, false)
	plan := createPlanWithVertical(t, "pro-tax", models.VerticalTax)
	subscribe(t, reader, plan)

	token := login(t, e, "reader1")
	rec := doRequest(t, e, http.MethodGet, "/v1/users/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	subscription, ok := body["active_subscription"].(map[string]any)
	if !ok {
		t.Fatalf("Expected an active subscription in response, got %v", body["active_subscription"])
	}
	planBody := subscription["plan"].(map[string]any)
	if planBody["slug"] != "pro-tax" {
		t.Errorf("Expected plan slug pro-tax, got %v", planBody["slug"])
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	e := setupAPI(t)
	createUser(t, "reader1", models.RoleReader, false)

	token := login(t, e, "reader1")
	rec := doRequest(t, e, http.MethodPost, "/v1/auth/logout", token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", rec.Code)
	}

	rec = doRequest(t, e, http.MethodGet, "/v1/users/me", token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 after logout, got %d", rec.Code)
	}
}

func itoa(id uint) string {
	return strconv.Itoa(int(id))
}
