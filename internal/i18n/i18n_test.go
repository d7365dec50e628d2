package i18n

import (
	"testing"
	"testing/fstest"
)

func TestNewManagerNormalizesDefaultLanguage(t *testing.T) {
	t.Parallel()

	manager, err := NewManager("FR-ca")
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	if manager.DefaultLanguage() != LangFR {
		t.Fatalf("expected default language fr, got %q", manager.DefaultLanguage())
	}

	fallback, err := NewManager("de")
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	if fallback.DefaultLanguage() != LangEN {
		t.Fatalf("expected unsupported default to fall back to en, got %q", fallback.DefaultLanguage())
	}
}

func TestDetectFromAcceptLanguage(t *testing.T) {
	t.Parallel()

	manager, err := NewManager(LangEN)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	cases := map[string]string{
		"fr-FR,fr;q=0.9,en;q=0.8": LangFR,
		"de-DE, en-GB;q=0.7":      LangEN,
		"":                        LangEN,
		"ja":                      LangEN,
	}
	for header, want := range cases {
		if got := manager.DetectFromAcceptLanguage(header); got != want {
			t.Errorf("DetectFromAcceptLanguage(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestFormatSubstitutesNamedParams(t *testing.T) {
	t.Parallel()

	manager, err := NewManager(LangEN)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	got := manager.Format(LangFR, "insight.irregularity.message", map[string]int{"min": 24, "max": 35, "variation": 11})
	want := "Vos derniers cycles varient de 24 à 35 jours (écart de 11 jours)."
	if got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}

	if got := manager.Translate(LangFR, "missing.key"); got != "missing.key" {
		t.Fatalf("expected unknown key to be returned as-is, got %q", got)
	}
}

func TestNewManagerFromFSRequiresEnglish(t *testing.T) {
	t.Parallel()

	_, err := NewManagerFromFS(LangFR, fstest.MapFS{
		"fr.json": {Data: []byte(`{"phase.period":"Règles"}`)},
	})
	if err == nil {
		t.Fatal("expected missing en locale to be rejected")
	}

	manager, err := NewManagerFromFS(LangFR, fstest.MapFS{
		"en.json": {Data: []byte(`{"phase.period":"Period","phase.luteal":"Luteal phase"}`)},
		"fr.json": {Data: []byte(`{"phase.period":"Règles"}`)},
	})
	if err != nil {
		t.Fatalf("NewManagerFromFS() error = %v", err)
	}
	if got := manager.Translate(LangFR, "phase.luteal"); got != "Luteal phase" {
		t.Fatalf("expected fr to fall back to en for missing key, got %q", got)
	}
}
