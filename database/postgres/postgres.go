package postgres

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func FormatDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		sslMode(),
	)
}

func sslMode() string {
	if mode := os.Getenv("DB_SSL_MODE"); mode != "" {
		return mode
	}
	return "disable"
}

func New() (*sqlx.DB, error) {
	dsn := FormatDSN()

	logrus.Info(fmt.Sprintf("Connecting to Postgres at %s:%s...", os.Getenv("DB_HOST"), os.Getenv("DB_PORT")))

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
