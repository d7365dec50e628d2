package api

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/terraincognita07/lunamia/internal/models"
	"github.com/terraincognita07/lunamia/internal/services"
)

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	logFlowDays(t, app, models.FlowMedium, "2026-01-01", "2026-01-02")
	expectStatus(t, doJSON(t, app, http.MethodPut, "/api/settings", map[string]int{"cycle_length": 31, "period_length": 4}), http.StatusOK)
	expectStatus(t, doJSON(t, app, http.MethodPost, "/api/symptoms", map[string]string{"label": "Acne"}), http.StatusCreated)

	response := doJSON(t, app, http.MethodGet, "/api/export", nil)
	expectStatus(t, response, http.StatusOK)
	disposition := response.Header.Get("Content-Disposition")
	if !strings.Contains(disposition, "lunamia-backup-2026-01-15.json") {
		t.Fatalf("unexpected content disposition %q", disposition)
	}
	exported, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	document, err := services.ParseBackup(exported)
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if document.Version != services.BackupFormatVersion || len(document.DailyLogs) != 2 || len(document.CustomSymptoms) != 1 {
		t.Fatalf("unexpected exported document %#v", document)
	}

	target, _ := newTestApp(t)
	request := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader(exported))
	request.Header.Set("Content-Type", "application/json")
	response, err = target.Test(request, -1)
	if err != nil {
		t.Fatalf("import request failed: %v", err)
	}
	expectStatus(t, response, http.StatusOK)
	summary := services.ImportSummary{}
	decodeJSON(t, response.Body, &summary)
	if summary.DailyLogs != 2 || summary.Settings != 2 || summary.CustomSymptoms != 1 {
		t.Fatalf("unexpected import summary %#v", summary)
	}

	response = doJSON(t, target, http.MethodGet, "/api/settings", nil)
	settings := services.CycleSettings{}
	decodeJSON(t, response.Body, &settings)
	if settings.CycleLength != 31 || settings.PeriodLength != 4 {
		t.Fatalf("expected imported settings, got %#v", settings)
	}
}

func TestImportAcceptsMultipartUpload(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	content := `{"version":1,"settings":[{"key":"cycleLength","value":"30"}],"dailyLogs":[{"date":"2026-01-03","flowLevel":"light"}]}`
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "backup.json")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/api/import", body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("import request failed: %v", err)
	}
	expectStatus(t, response, http.StatusOK)

	response = doJSON(t, app, http.MethodGet, "/api/days/2026-01-03", nil)
	entry := models.DailyLog{}
	decodeJSON(t, response.Body, &entry)
	if entry.FlowLevel != models.FlowLight {
		t.Fatalf("expected imported light flow, got %q", entry.FlowLevel)
	}
}

func TestImportRejectsInvalidDocuments(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)
	logFlowDays(t, app, models.FlowLight, "2026-01-01")

	cases := []struct {
		name string
		body string
	}{
		{name: "not json", body: "hello"},
		{name: "missing version", body: `{"settings":[],"dailyLogs":[]}`},
		{name: "logs not array", body: `{"version":1,"settings":[],"dailyLogs":{}}`},
		{name: "bad flow", body: `{"version":1,"settings":[],"dailyLogs":[{"date":"2026-01-01","flowLevel":"gushing"}]}`},
		{name: "bad date", body: `{"version":1,"settings":[],"dailyLogs":[{"date":"01/02/2026","flowLevel":"none"}]}`},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(testCase.body))
			request.Header.Set("Content-Type", "application/json")
			response, err := app.Test(request, -1)
			if err != nil {
				t.Fatalf("import request failed: %v", err)
			}
			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", response.StatusCode)
			}
			if got := readAPIError(t, response.Body); got != "invalid backup file" {
				t.Fatalf("unexpected error %q", got)
			}
		})
	}

	response := doJSON(t, app, http.MethodGet, "/api/days", nil)
	logs := []models.DailyLog{}
	decodeJSON(t, response.Body, &logs)
	if len(logs) != 1 {
		t.Fatalf("expected rejected imports to keep existing data, got %d logs", len(logs))
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)
	logFlowDays(t, app, models.FlowLight, "2026-01-01", "2026-01-02")

	response := doJSON(t, app, http.MethodPost, "/api/reset", map[string]bool{"confirm": false})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without confirmation, got %d", response.StatusCode)
	}

	response = doJSON(t, app, http.MethodPost, "/api/reset", map[string]bool{"confirm": true})
	expectStatus(t, response, http.StatusOK)

	response = doJSON(t, app, http.MethodGet, "/api/days", nil)
	logs := []models.DailyLog{}
	decodeJSON(t, response.Body, &logs)
	if len(logs) != 0 {
		t.Fatalf("expected no logs after reset, got %d", len(logs))
	}
}
