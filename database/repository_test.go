package database

import (
	"context"
	"errors"
	"testing"

	dbtest "github.com/kbukum/xesmeta/database/testutil"
	apperrors "github.com/kbukum/xesmeta/errors"
	"github.com/kbukum/xesmeta/logger"
	"github.com/kbukum/xesmeta/repository"
	"github.com/kbukum/xesmeta/testutil"
)

func newTestRepository(t *testing.T) (*Repository, *dbtest.Component) {
	t.Helper()
	comp := dbtest.NewComponent().WithModels(&StepAttribute{})
	testutil.T(t).Setup(comp)
	return NewRepository(Wrap(comp.DB(), logger.Nop())), comp
}

func TestRepository_SaveAndGet(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	if err := repo.SaveStepAttribute(ctx, "p1", "s1", "Activity", "Check-in"); err != nil {
		t.Fatalf("SaveStepAttribute failed: %v", err)
	}
	if err := repo.SaveStepAttribute(ctx, "p1", "s1", "Role", ""); err != nil {
		t.Fatalf("SaveStepAttribute failed: %v", err)
	}

	v, ok, err := repo.GetStepAttributeString(ctx, "s1", "Activity")
	if err != nil || !ok || v != "Check-in" {
		t.Errorf("expected Check-in, got %q ok=%v err=%v", v, ok, err)
	}
	v, ok, _ = repo.GetStepAttributeString(ctx, "s1", "Role")
	if !ok || v != "" {
		t.Errorf("expected stored empty value, got %q ok=%v", v, ok)
	}
	if _, ok, err := repo.GetStepAttributeString(ctx, "s1", "Group"); ok || err != nil {
		t.Errorf("expected missing attribute without error, got ok=%v err=%v", ok, err)
	}
}

func TestRepository_SaveOverwrites(t *testing.T) {
	repo, comp := newTestRepository(t)
	ctx := context.Background()

	_ = repo.SaveStepAttribute(ctx, "p1", "s1", "Activity", "first")
	if err := repo.SaveStepAttribute(ctx, "p2", "s1", "Activity", "second"); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	dbtest.AssertRowCount(t, comp.DB(), "step_attributes", 1)
	v, _, _ := repo.GetStepAttributeString(ctx, "s1", "Activity")
	if v != "second" {
		t.Errorf("expected overwritten value, got %q", v)
	}
	steps, _ := repo.StepsOf(ctx, "p2")
	if len(steps) != 1 || steps[0] != "s1" {
		t.Errorf("expected step to move to p2, got %v", steps)
	}
}

func TestRepository_StepsOfAndAttributes(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	_ = repo.SaveStepAttribute(ctx, "p", "b", "Activity", "x")
	_ = repo.SaveStepAttribute(ctx, "p", "a", "Activity", "y")
	_ = repo.SaveStepAttribute(ctx, "p", "a", "Role", "z")
	_ = repo.SaveStepAttribute(ctx, "other", "c", "Role", "z")

	steps, err := repo.StepsOf(ctx, "p")
	if err != nil {
		t.Fatalf("StepsOf failed: %v", err)
	}
	if len(steps) != 2 || steps[0] != "a" || steps[1] != "b" {
		t.Errorf("unexpected steps %v", steps)
	}

	attrs, err := repo.Attributes(ctx, "a")
	if err != nil || len(attrs) != 2 || attrs["Activity"] != "y" {
		t.Errorf("unexpected attributes %v err=%v", attrs, err)
	}
}

func TestRepository_InvalidIDs(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	if err := repo.SaveStepAttribute(ctx, "p", "", "a", "v"); !errors.Is(err, repository.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
	if _, _, err := repo.GetStepAttributeString(ctx, "", "a"); !errors.Is(err, repository.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestRepository_ClosedDatabase(t *testing.T) {
	repo, comp := newTestRepository(t)
	sqlDB, _ := comp.DB().DB()
	_ = sqlDB.Close()

	err := repo.SaveStepAttribute(context.Background(), "p", "s", "a", "v")
	if err == nil {
		t.Fatal("expected save to fail on a closed database")
	}
	if !apperrors.Is(err, apperrors.ErrCodeConnectionFailed) {
		t.Errorf("expected CONNECTION_FAILED, got %v", err)
	}
}

func TestFromDatabase(t *testing.T) {
	if FromDatabase(nil, "x") != nil {
		t.Error("expected nil for nil error")
	}
	tests := []struct {
		name      string
		err       error
		code      apperrors.ErrorCode
		retryable bool
	}{
		{"connection", errors.New("dial tcp: connection refused"), apperrors.ErrCodeConnectionFailed, true},
		{"locked", errors.New("database is locked"), apperrors.ErrCodeDatabaseError, true},
		{"constraint", errors.New("NOT NULL constraint failed"), apperrors.ErrCodeDatabaseError, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FromDatabase(tc.err, "x")
			if got.Code != tc.code || got.Retryable != tc.retryable {
				t.Errorf("got %s retryable=%v, want %s retryable=%v", got.Code, got.Retryable, tc.code, tc.retryable)
			}
			if !errors.Is(got, tc.err) {
				t.Error("expected cause to be preserved")
			}
		})
	}
}
