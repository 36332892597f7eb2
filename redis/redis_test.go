package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/xesmeta/component"
	"github.com/kbukum/xesmeta/logger"
	redistest "github.com/kbukum/xesmeta/redis/testutil"
	"github.com/kbukum/xesmeta/repository"
	"github.com/kbukum/xesmeta/testutil"
)

func startMini(t *testing.T) *redistest.Component {
	t.Helper()
	mini := redistest.NewComponent()
	testutil.T(t).Setup(mini)
	return mini
}

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.KeyPrefix != DefaultKeyPrefix || cfg.PoolSize != 10 || cfg.DialTimeout != "5s" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Addr: "localhost:6379"}, false},
		{"missing addr", Config{}, true},
		{"bad timeout", Config{Addr: "localhost:6379", ReadTimeout: "soon"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			cfg.ApplyDefaults()
			if err := cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRepository_SaveAndGet(t *testing.T) {
	mini := startMini(t)
	repo := NewRepository(Wrap(mini.Client(), logger.Nop()), "")
	ctx := context.Background()

	if err := repo.SaveStepAttribute(ctx, "p1", "s1", "Activity", "Check-in"); err != nil {
		t.Fatalf("SaveStepAttribute failed: %v", err)
	}
	if err := repo.SaveStepAttribute(ctx, "p1", "s1", "OutputPath", ""); err != nil {
		t.Fatalf("SaveStepAttribute failed: %v", err)
	}

	v, ok, err := repo.GetStepAttributeString(ctx, "s1", "Activity")
	if err != nil || !ok || v != "Check-in" {
		t.Errorf("expected Check-in, got %q ok=%v err=%v", v, ok, err)
	}
	v, ok, _ = repo.GetStepAttributeString(ctx, "s1", "OutputPath")
	if !ok || v != "" {
		t.Errorf("expected stored empty value, got %q ok=%v", v, ok)
	}
	if _, ok, err := repo.GetStepAttributeString(ctx, "s1", "Group"); ok || err != nil {
		t.Errorf("expected missing attribute without error, got ok=%v err=%v", ok, err)
	}

	if got := mini.Server().HGet("xes:step:s1", "Activity"); got != "Check-in" {
		t.Errorf("expected hash field to be written, got %q", got)
	}
	if ok, _ := mini.Server().SIsMember("xes:pipeline:p1:steps", "s1"); !ok {
		t.Error("expected step to be recorded in the pipeline set")
	}
}

func TestRepository_StepsOfAndAttributes(t *testing.T) {
	mini := startMini(t)
	repo := NewRepository(Wrap(mini.Client(), nil), "test")
	ctx := context.Background()

	_ = repo.SaveStepAttribute(ctx, "p", "b", "Activity", "x")
	_ = repo.SaveStepAttribute(ctx, "p", "a", "Activity", "y")
	_ = repo.SaveStepAttribute(ctx, "p", "a", "Role", "z")

	steps, err := repo.StepsOf(ctx, "p")
	if err != nil {
		t.Fatalf("StepsOf failed: %v", err)
	}
	if len(steps) != 2 || steps[0] != "a" || steps[1] != "b" {
		t.Errorf("unexpected steps %v", steps)
	}

	attrs, err := repo.Attributes(ctx, "a")
	if err != nil || len(attrs) != 2 || attrs["Role"] != "z" {
		t.Errorf("unexpected attributes %v err=%v", attrs, err)
	}
}

func TestRepository_InvalidIDs(t *testing.T) {
	mini := startMini(t)
	repo := NewRepository(Wrap(mini.Client(), nil), "")
	ctx := context.Background()

	if err := repo.SaveStepAttribute(ctx, "", "s", "a", "v"); !errors.Is(err, repository.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
	if _, _, err := repo.GetStepAttributeString(ctx, "", "a"); !errors.Is(err, repository.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestRepository_ServerDown(t *testing.T) {
	mini := startMini(t)
	repo := NewRepository(Wrap(mini.Client(), nil), "")
	mini.Server().Close()

	ctx := context.Background()
	if err := repo.SaveStepAttribute(ctx, "p", "s", "a", "v"); err == nil {
		t.Error("expected save to fail with the server down")
	}
	if _, _, err := repo.GetStepAttributeString(ctx, "s", "a"); err == nil {
		t.Error("expected get to fail with the server down")
	}
}

func TestComponent_Lifecycle(t *testing.T) {
	mini := startMini(t)
	comp := NewComponent(Config{Addr: mini.Addr()}, logger.Nop())
	ctx := context.Background()

	if comp.Repository() != nil {
		t.Error("Repository should be nil before Start")
	}
	if comp.Health(ctx).Status != component.StatusUnhealthy {
		t.Error("expected unhealthy before Start")
	}

	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if comp.Repository() == nil {
		t.Fatal("Repository should be set after Start")
	}
	if h := comp.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %+v", h)
	}
	if d := comp.Describe(); d.Type != "redis" {
		t.Errorf("unexpected description %+v", d)
	}

	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("second Stop failed: %v", err)
	}
}

func TestComponent_StartFailsWithoutServer(t *testing.T) {
	comp := NewComponent(Config{Addr: "127.0.0.1:1", DialTimeout: "100ms", MaxRetries: 1}, nil)
	if err := comp.Start(context.Background()); err == nil {
		t.Error("expected Start to fail against a closed port")
	}
	if comp.Repository() != nil {
		t.Error("Repository must stay nil after a failed Start")
	}
}
