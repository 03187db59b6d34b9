package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fdg312/diet-hub/internal/config"
	"github.com/fdg312/diet-hub/internal/dbmigrate"
)

// commands — поддерживаемые команды goose для схемы каталога продуктов.
var commands = []string{"up", "status", "down", "version"}

var errUsage = errors.New("usage: go run ./cmd/migrate [" + strings.Join(commands, "|") + "]")

func main() {
	if err := run(os.Args[1:], config.Load(), os.Getenv("MIGRATIONS_DIR"), dbmigrate.Run); err != nil {
		log.Fatal(err)
	}
}

type runner func(command, dbURL, migrationsDir string) error

// run applies one goose command to the foods tables. An empty dir means the
// migrations embedded in the binary.
func run(args []string, cfg *config.Config, dir string, apply runner) error {
	if len(args) < 1 {
		return errUsage
	}
	command := args[0]
	if !isCommand(command) {
		return fmt.Errorf("unsupported command %q (allowed: %s)", command, strings.Join(commands, ", "))
	}

	target, err := dbmigrate.SelectTarget(cfg, false)
	if err != nil {
		return err
	}
	if target.Warning != "" {
		log.Printf("WARN migrate: %s", target.Warning)
	}
	log.Printf("INFO migrate: command=%s using=%s db=%s", command, target.Source, target.Redacted())

	if dir != "" {
		log.Printf("INFO migrate: reading migrations from %s", dir)
	} else {
		versions, err := dbmigrate.EmbeddedVersions()
		if err != nil {
			return err
		}
		log.Printf("INFO migrate: embedded foods migrations=%d latest=%s", len(versions), versions[len(versions)-1])
	}

	if err := apply(command, target.URL, dir); err != nil {
		return err
	}

	log.Printf("INFO migrate: %s completed", command)
	return nil
}

func isCommand(name string) bool {
	for _, c := range commands {
		if c == name {
			return true
		}
	}
	return false
}
