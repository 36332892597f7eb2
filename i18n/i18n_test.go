package i18n

import (
	"testing"
	"testing/fstest"
)

func TestDefault_ResolvesEnglish(t *testing.T) {
	b := Default()
	if b.Locale() != DefaultLocale {
		t.Errorf("expected locale %s, got %s", DefaultLocale, b.Locale())
	}
	got := b.Get("XESStep.CheckResult.ReceivingRows.OK")
	if got != "Step is receiving rows from previous steps: OK" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestForLocale_Spanish(t *testing.T) {
	b := ForLocale("es_ES")
	if got := b.Get("XESStep.Description"); got != "Plugin para exportar a XES" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestGet_FallbackAndMissing(t *testing.T) {
	b := ForLocale("fr_FR")
	if got := b.Get("XESStep.Name"); got != "XES Export" {
		t.Errorf("expected fallback to en_US, got %q", got)
	}
	if got := b.Get("No.Such.Key"); got != "!No.Such.Key!" {
		t.Errorf("expected !key! marker, got %q", got)
	}
}

func TestGet_Arguments(t *testing.T) {
	b := Default()
	if got := b.Get("XESStep.Log.Saved", "step-1"); got != "Step step-1 saved to repository" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestLoad_CustomFS(t *testing.T) {
	fsys := fstest.MapFS{
		"cat/en-US.yaml": {Data: []byte("Greeting: \"hello {0} and {1}\"\nFarewell: \"bye\"\n")},
		"cat/de-DE.yaml": {Data: []byte("Greeting: \"hallo {0}\"\n")},
	}
	b, err := Load(fsys, "cat", "de_DE")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(b.Locales()) != 2 {
		t.Errorf("expected 2 locales, got %v", b.Locales())
	}
	if got := b.Get("Greeting", "welt"); got != "hallo welt" {
		t.Errorf("unexpected text %q", got)
	}
	if got := b.WithLocale("en_US").Get("Greeting", 1, 2); got != "hello 1 and 2" {
		t.Errorf("unexpected text %q", got)
	}
	if got := b.Get("Farewell"); got != "bye" {
		t.Errorf("expected per-key fallback to en_US, got %q", got)
	}
	if got := b.Get("Missing"); got != "!Missing!" {
		t.Errorf("expected !key! marker, got %q", got)
	}
}

func TestBundle_Locales(t *testing.T) {
	got := map[string]bool{}
	for _, l := range Default().Locales() {
		got[l] = true
	}
	if !got["en_US"] || !got["es_ES"] {
		t.Errorf("expected en_US and es_ES, got %v", Default().Locales())
	}
}

func TestForLocale_SharesCatalogs(t *testing.T) {
	es := ForLocale("es_ES")
	if es.Locale() != "es_ES" {
		t.Errorf("expected locale es_ES, got %s", es.Locale())
	}
	if got := es.Get("XESStep.Log.Saved", "s-1"); got != "Paso s-1 guardado en el repositorio" {
		t.Errorf("unexpected text %q", got)
	}
	if got := Default().Get("XESStep.Description"); got == es.Get("XESStep.Description") {
		t.Errorf("expected locales to differ, both %q", got)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"cat/en-US.yaml": {Data: []byte("key: [unterminated\n")},
	}
	if _, err := Load(fsys, "cat", "en_US"); err == nil {
		t.Error("expected parse error")
	}
}

func TestStatic(t *testing.T) {
	s := Static{"a": "A {0}"}
	if got := s.Get("a", "x"); got != "A x" {
		t.Errorf("unexpected %q", got)
	}
	if got := s.Get("b"); got != "!b!" {
		t.Errorf("unexpected %q", got)
	}
}
