package repository

import (
	"context"
	"errors"
	"testing"
)

func TestNewObjectID(t *testing.T) {
	a, b := NewObjectID(), NewObjectID()
	if !a.Valid() || a == b {
		t.Errorf("expected distinct valid ids, got %q and %q", a, b)
	}
	if ObjectID("").Valid() {
		t.Error("empty id must be invalid")
	}
}

func TestMemory_SaveAndGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.SaveStepAttribute(ctx, "p1", "s1", "Activity", "Check-in"); err != nil {
		t.Fatalf("SaveStepAttribute failed: %v", err)
	}
	if err := m.SaveStepAttribute(ctx, "p1", "s1", "Role", ""); err != nil {
		t.Fatalf("SaveStepAttribute failed: %v", err)
	}

	v, ok, err := m.GetStepAttributeString(ctx, "s1", "Activity")
	if err != nil || !ok || v != "Check-in" {
		t.Errorf("expected Check-in, got %q ok=%v err=%v", v, ok, err)
	}
	v, ok, _ = m.GetStepAttributeString(ctx, "s1", "Role")
	if !ok || v != "" {
		t.Errorf("expected stored empty value, got %q ok=%v", v, ok)
	}
	if _, ok, _ := m.GetStepAttributeString(ctx, "s1", "Group"); ok {
		t.Error("expected Group to be missing")
	}
	if _, ok, _ := m.GetStepAttributeString(ctx, "other", "Activity"); ok {
		t.Error("expected unknown step to have no attributes")
	}
	if m.Writes() != 2 {
		t.Errorf("expected 2 writes, got %d", m.Writes())
	}
}

func TestMemory_StepsOf(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	_ = m.SaveStepAttribute(ctx, "p1", "s2", "a", "1")
	_ = m.SaveStepAttribute(ctx, "p1", "s1", "a", "1")
	_ = m.SaveStepAttribute(ctx, "p2", "s3", "a", "1")

	steps, err := m.StepsOf(ctx, "p1")
	if err != nil {
		t.Fatalf("StepsOf failed: %v", err)
	}
	if len(steps) != 2 || steps[0] != "s1" || steps[1] != "s2" {
		t.Errorf("unexpected steps %v", steps)
	}
}

func TestMemory_FailOn(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	boom := errors.New("boom")

	m.FailOn(OpSave, "Role", boom)
	if err := m.SaveStepAttribute(ctx, "p", "s", "Role", "x"); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}
	if err := m.SaveStepAttribute(ctx, "p", "s", "Group", "x"); err != nil {
		t.Errorf("other names must not fail: %v", err)
	}

	m.FailOn(OpGet, "Group", boom)
	if _, _, err := m.GetStepAttributeString(ctx, "s", "Group"); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}

	m.FailOn(OpGet, "Group", nil)
	if _, _, err := m.GetStepAttributeString(ctx, "s", "Group"); err != nil {
		t.Errorf("expected failure to be cleared, got %v", err)
	}
}

func TestMemory_InvalidIDsAndContext(t *testing.T) {
	m := NewMemory()
	if err := m.SaveStepAttribute(context.Background(), "", "s", "a", "v"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
	if _, _, err := m.GetStepAttributeString(context.Background(), "", "a"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.SaveStepAttribute(ctx, "p", "s", "a", "v"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMemory_AttributesAndReset(t *testing.T) {
	m := NewMemory()
	_ = m.SaveStepAttribute(context.Background(), "p", "s", "a", "1")

	attrs := m.Attributes("s")
	attrs["a"] = "mutated"
	if m.Attributes("s")["a"] != "1" {
		t.Error("Attributes must return a copy")
	}

	m.Reset()
	if len(m.Attributes("s")) != 0 || m.Writes() != 0 {
		t.Error("expected Reset to drop everything")
	}
}

func TestMemory_SnapshotRestore(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	_ = m.SaveStepAttribute(ctx, "p", "s", "a", "1")

	snap := m.Snapshot()
	_ = m.SaveStepAttribute(ctx, "p", "s", "a", "2")
	_ = m.SaveStepAttribute(ctx, "p", "t", "b", "3")

	m.Restore(snap)
	if got := m.Attributes("s")["a"]; got != "1" {
		t.Errorf("expected restored value 1, got %q", got)
	}
	if len(m.Attributes("t")) != 0 {
		t.Error("expected step t to be gone after restore")
	}
	steps, _ := m.StepsOf(ctx, "p")
	if len(steps) != 1 || steps[0] != "s" {
		t.Errorf("unexpected steps after restore %v", steps)
	}

	snap.Steps["s"]["a"] = "mutated"
	if m.Attributes("s")["a"] != "1" {
		t.Error("Restore must copy the snapshot")
	}
}
