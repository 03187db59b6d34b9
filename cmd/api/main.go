package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fdg312/diet-hub/internal/blob"
	"github.com/fdg312/diet-hub/internal/catalog"
	"github.com/fdg312/diet-hub/internal/catalog/load"
	"github.com/fdg312/diet-hub/internal/config"
	"github.com/fdg312/diet-hub/internal/dbmigrate"
	"github.com/fdg312/diet-hub/internal/diet"
	"github.com/fdg312/diet-hub/internal/httpserver"
	"github.com/fdg312/diet-hub/internal/lp"
	"github.com/fdg312/diet-hub/internal/storage"
	"github.com/fdg312/diet-hub/internal/storage/memory"
	"github.com/fdg312/diet-hub/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	printStartupBanner(cfg)

	if cfg.RunMigrationsOnStartup {
		target, err := dbmigrate.SelectTarget(cfg, true)
		if err != nil {
			log.Fatalf("FATAL startup migrations: %v", err)
		}

		log.Printf("startup migrations: command=up using=%s db=%s", target.Source, target.Redacted())
		if err := dbmigrate.Run("up", target.URL, ""); err != nil {
			log.Fatalf("FATAL startup migrations failed: %v", err)
		}
		log.Printf("startup migrations: completed")
	}

	validateProductionConfig(cfg)

	ctx := context.Background()

	store := initStorage(ctx, cfg)

	blobStore, blobMode, err := blob.NewBlobStore(ctx, cfg.Blob, log.Default())
	if err != nil {
		log.Fatalf("FATAL blob: %v", err)
	}
	log.Printf("INFO blob: effective_mode=%s", blobMode)

	loader := &load.Loader{Blob: blobStore, Foods: store, Logger: log.Default()}
	cat, _, err := loader.Load(ctx, cfg.Catalog)
	if err != nil {
		log.Fatalf("FATAL catalog: %v", err)
	}

	solver, err := newSolver(cat, cfg.Diet)
	if err != nil {
		log.Fatalf("FATAL diet: %v", err)
	}

	server := httpserver.New(cfg, httpserver.Deps{
		Catalog: cat,
		Solver:  solver,
		Storage: store,
	})
	defer server.Close()

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		log.Printf("INFO http: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("WARN http: shutdown: %v", err)
		}
	}()

	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}

// initStorage подключает PostgreSQL, при ошибке или без DATABASE_URL
// используется in-memory storage со встроенным каталогом
func initStorage(ctx context.Context, cfg *config.Config) storage.CatalogStorage {
	fallback := func() storage.CatalogStorage {
		return memory.New(load.ToFoods(catalog.Default())...)
	}

	if cfg.DatabaseURL == "" {
		log.Println("INFO storage: using in-memory storage")
		return fallback()
	}

	pgStorage, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		if cfg.Catalog.Source == config.CatalogSourcePostgres {
			log.Fatalf("FATAL storage: CATALOG_SOURCE=postgres but connection failed: %v", err)
		}
		log.Printf("WARN storage: postgres connection failed: %v", err)
		log.Println("WARN storage: fallback to in-memory storage")
		return fallback()
	}

	log.Println("INFO storage: postgres connected")
	return pgStorage
}

func newSolver(cat *catalog.Catalog, cfg config.DietConfig) (*diet.Solver, error) {
	engine, err := lp.NewEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}
	return diet.NewSolver(cat,
		diet.WithEngine(engine),
		diet.WithTolerance(cfg.Tolerance),
		diet.WithZeroEpsilon(cfg.ZeroEpsilon),
		diet.WithLogger(log.Default()),
	), nil
}

// printStartupBanner logs a one-time summary of the resolved configuration.
// Secrets are printed only as "set" / "not set".
func printStartupBanner(cfg *config.Config) {
	log.Println("========== Diet Hub API ==========")
	log.Printf("  env              = %s", cfg.Env)
	log.Printf("  port             = %d", cfg.Port)
	log.Printf("  log_level        = %s", cfg.LogLevel)

	log.Println("---- database ----")
	log.Printf("  runtime_url      = %s", describeDBURL(cfg.DatabaseURL, cfg.DatabaseURLPooled))
	log.Printf("  pooled           = %s", setOrNot(cfg.DatabaseURLPooled))
	log.Printf("  direct           = %s", setOrNot(cfg.DatabaseURLDirect))
	log.Printf("  migrations_on_startup = %t", cfg.RunMigrationsOnStartup)

	log.Println("---- catalog ----")
	log.Printf("  source           = %s", cfg.Catalog.Source)
	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		log.Printf("  file             = %s", nonEmptyOrDash(cfg.Catalog.File))
	case config.CatalogSourceBlob:
		log.Printf("  blob_key         = %s", cfg.Catalog.BlobKey)
	}

	log.Println("---- diet ----")
	log.Printf("  engine           = %s", cfg.Diet.Engine)
	log.Printf("  tolerance        = %g", cfg.Diet.Tolerance)
	log.Printf("  zero_epsilon     = %g", cfg.Diet.ZeroEpsilon)
	log.Printf("  max_bound        = %g", cfg.Diet.MaxBound)

	log.Println("---- auth ----")
	log.Printf("  auth_mode        = %s", cfg.AuthMode)
	log.Printf("  auth_required    = %t", cfg.AuthRequired)
	log.Printf("  jwt_secret       = %s", secretStatus(cfg.JWTSecret, "change_me"))

	log.Println("---- blob ----")
	log.Printf("  blob_mode        = %s", cfg.Blob.Mode)
	if cfg.Blob.Mode != config.BlobModeLocal {
		log.Printf("  s3: %s", cfg.Blob.S3.DiagnosticsSummary())
	}

	log.Println("==================================")
}

// validateProductionConfig performs fatal checks that only matter in non-local envs.
func validateProductionConfig(cfg *config.Config) {
	isProd := cfg.Env == "production" || cfg.Env == "staging"

	if cfg.Blob.Mode == config.BlobModeS3 {
		if missing := cfg.Blob.S3.MissingRequired(); len(missing) > 0 {
			log.Fatalf("FATAL blob: BLOB_MODE=s3 but S3 config is incomplete, missing: %s", strings.Join(missing, ", "))
		}
	}

	if cfg.Catalog.Source == config.CatalogSourcePostgres && cfg.DatabaseURL == "" {
		log.Fatal("FATAL catalog: CATALOG_SOURCE=postgres requires DATABASE_URL")
	}

	// JWT_SECRET must not be default in production
	if isProd && cfg.AuthRequired && cfg.JWTSecret == "change_me" {
		log.Fatalf("FATAL auth: JWT_SECRET must not be 'change_me' in %s with AUTH_REQUIRED=1", cfg.Env)
	}

	if isProd && cfg.AuthMode == "dev" {
		log.Printf("WARN auth: AUTH_MODE=dev in %s issues tokens to anyone", cfg.Env)
	}
}

// ---- helpers (no secrets) ----

func setOrNot(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not set"
	}
	return "set"
}

func nonEmptyOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func secretStatus(v, insecureDefault string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "not set"
	}
	if v == insecureDefault {
		return fmt.Sprintf("set (DEFAULT, insecure '%s')", insecureDefault)
	}
	return "set (custom)"
}

func describeDBURL(runtime, pooled string) string {
	if runtime == "" {
		return "not set (will use in-memory storage)"
	}
	if pooled != "" && runtime == pooled {
		return "set (via DATABASE_URL_POOLED)"
	}
	return "set"
}
