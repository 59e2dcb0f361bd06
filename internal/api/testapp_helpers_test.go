package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fergcraven/coachline/internal/db"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const testSecretKey = "test-secret-key-0123456789abcdef-0123456789abcdef"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "coachline-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler, err := NewHandler(database, testSecretKey, false)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterRoutes(app, handler)
	return app, database
}

func jsonRequest(t *testing.T, app *fiber.App, method string, path string, payload any, authCookie string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal %s %s payload: %v", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeJSONBody(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func extractAuthCookie(t *testing.T, response *http.Response) string {
	t.Helper()

	for _, setCookie := range response.Header.Values("Set-Cookie") {
		if strings.HasPrefix(setCookie, authCookieName+"=") {
			return strings.SplitN(setCookie, ";", 2)[0]
		}
	}
	t.Fatal("expected auth cookie in response")
	return ""
}

// registerTestUser signs a user up through the public endpoint and
// returns their id and logged-in auth cookie.
func registerTestUser(t *testing.T, app *fiber.App, email string, role string, trainerID *uint) (uint, string) {
	t.Helper()

	payload := map[string]any{
		"email":    email,
		"password": "StrongPass1",
		"name":     "Test User",
		"role":     role,
		"timezone": "UTC",
	}
	if trainerID != nil {
		payload["trainer_id"] = *trainerID
	}

	response := jsonRequest(t, app, http.MethodPost, "/api/auth/register", payload, "")
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d", response.StatusCode)
	}
	authCookie := extractAuthCookie(t, response)

	var registered struct {
		ID uint `json:"id"`
	}
	decodeJSONBody(t, response, &registered)
	if registered.ID == 0 {
		t.Fatal("expected a non-zero user id from registration")
	}
	return registered.ID, authCookie
}

type overviewResponse struct {
	Today  string `json:"today"`
	Streak int    `json:"streak"`
	Status string `json:"status"`
	Trends struct {
		AvgSteps    *float64 `json:"avg_steps"`
		WeightDelta *float64 `json:"weight_delta"`
	} `json:"trends"`
	Standing struct {
		Due       bool `json:"due"`
		Submitted bool `json:"submitted"`
	} `json:"standing"`
	Context struct {
		HasTodayLog    bool `json:"has_today_log"`
		BaselineExists bool `json:"baseline_exists"`
		CheckinDue     bool `json:"checkin_due"`
	} `json:"context"`
	Reminders []struct {
		Key string `json:"key"`
	} `json:"reminders"`
	Alerts []struct {
		Key    string `json:"key"`
		Status string `json:"status"`
	} `json:"alerts"`
}

func fetchOverview(t *testing.T, app *fiber.App, authCookie string) overviewResponse {
	t.Helper()

	response := jsonRequest(t, app, http.MethodGet, "/api/dashboard", nil, authCookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected dashboard status 200, got %d", response.StatusCode)
	}

	var overview overviewResponse
	decodeJSONBody(t, response, &overview)
	return overview
}

func reminderKeys(overview overviewResponse) map[string]bool {
	keys := make(map[string]bool, len(overview.Reminders))
	for _, reminder := range overview.Reminders {
		keys[reminder.Key] = true
	}
	return keys
}
