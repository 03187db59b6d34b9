package dbmigrate

import (
	"errors"
	"strings"
	"testing"

	"github.com/fdg312/diet-hub/internal/config"
)

func TestSelectTarget(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.Config
		wantURL     string
		wantSource  string
		wantWarning bool
	}{
		{
			name: "direct wins",
			cfg: config.Config{
				DatabaseURLDirect: "postgres://direct/foods",
				DatabaseURLRaw:    "postgres://url/foods",
				DatabaseURLPooled: "postgres://pooled/foods",
			},
			wantURL:    "postgres://direct/foods",
			wantSource: "DATABASE_URL_DIRECT",
		},
		{
			name: "database url before pooled",
			cfg: config.Config{
				DatabaseURLRaw:    "postgres://url/foods",
				DatabaseURLPooled: "postgres://pooled/foods",
			},
			wantURL:    "postgres://url/foods",
			wantSource: "DATABASE_URL",
		},
		{
			name:        "pooled only",
			cfg:         config.Config{DatabaseURLPooled: "postgres://pooled/foods"},
			wantURL:     "postgres://pooled/foods",
			wantSource:  "DATABASE_URL_POOLED",
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := SelectTarget(&tt.cfg, false)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if target.URL != tt.wantURL || target.Source != tt.wantSource {
				t.Fatalf("expected %s from %s, got %s from %s", tt.wantURL, tt.wantSource, target.URL, target.Source)
			}
			if (target.Warning != "") != tt.wantWarning {
				t.Errorf("unexpected warning state: %q", target.Warning)
			}
		})
	}
}

func TestSelectTargetNothingConfigured(t *testing.T) {
	if _, err := SelectTarget(&config.Config{}, false); !errors.Is(err, ErrNoDatabaseURL) {
		t.Fatalf("expected ErrNoDatabaseURL, got %v", err)
	}
}

func TestSelectTargetRequireDirect(t *testing.T) {
	cfg := &config.Config{
		DatabaseURLRaw:    "postgres://url/foods",
		DatabaseURLPooled: "postgres://pooled/foods",
	}

	if _, err := SelectTarget(cfg, true); !errors.Is(err, ErrDirectURLRequired) {
		t.Fatalf("expected ErrDirectURLRequired, got %v", err)
	}

	cfg.DatabaseURLDirect = "postgres://direct/foods"
	target, err := SelectTarget(cfg, true)
	if err != nil || target.Source != "DATABASE_URL_DIRECT" {
		t.Fatalf("expected direct target, got %+v (%v)", target, err)
	}
}

func TestTargetRedacted(t *testing.T) {
	target := Target{URL: "postgres://diet:s3cret@db:5432/foods"}

	got := target.Redacted()
	if strings.Contains(got, "s3cret") {
		t.Fatalf("password leaked: %s", got)
	}
	if !strings.Contains(got, "db:5432/foods") {
		t.Errorf("expected host and database to stay, got %s", got)
	}
}

func TestEmbeddedVersions(t *testing.T) {
	names, err := EmbeddedVersions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) == 0 || names[0] != "00001_create_foods.sql" {
		t.Fatalf("expected the foods schema first, got %v", names)
	}
}
