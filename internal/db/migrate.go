package db

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations opens a connection to the database and runs all pending
// migrations from the given directory. driver is "postgres" or "mysql".
func RunMigrations(driver, dsn, migrationsDir string) error {
	sqlDriver, dialect, err := migrationDriver(driver)
	if err != nil {
		return err
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func migrationDriver(driver string) (sqlDriver, dialect string, err error) {
	switch driver {
	case "postgres":
		return "pgx", "postgres", nil
	case "mysql":
		return "mysql", "mysql", nil
	default:
		return "", "", fmt.Errorf("migrations not supported for driver %q", driver)
	}
}
