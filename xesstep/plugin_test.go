package xesstep

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/kbukum/xesmeta/i18n"
)

func TestDescriptor(t *testing.T) {
	p := Descriptor(nil)
	if p.ID != PluginID {
		t.Errorf("expected id %s, got %s", PluginID, p.ID)
	}
	if p.Name == "" || p.Category == "" {
		t.Errorf("expected localized name and category, got %+v", p)
	}

	es := Descriptor(i18n.ForLocale("es_ES"))
	if es.Description != "Plugin para exportar a XES" {
		t.Errorf("unexpected es_ES description %q", es.Description)
	}
}

func TestDescriptor_ImageEmbedded(t *testing.T) {
	p := Descriptor(nil)
	data, err := fs.ReadFile(Resources, p.Image)
	if err != nil {
		t.Fatalf("image %q not embedded: %v", p.Image, err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Errorf("expected an svg document, got %q", data[:min(len(data), 16)])
	}
}
