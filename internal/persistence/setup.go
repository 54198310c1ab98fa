package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/config"
)

// EnsureDatabase connects to the maintenance database and creates the
// configured database when it is missing. With reset, an existing database is
// dropped and recreated first.
func EnsureDatabase(ctx context.Context, cfg config.PostgresConfig, reset bool, logger *zap.Logger) error {
	target, err := pgx.ParseConfig(cfg.ConnString())
	if err != nil {
		return fmt.Errorf("parse postgres config: %w", err)
	}
	name := target.Database
	if name == "" {
		return errors.New("no database name configured")
	}
	if name == cfg.MaintenanceDB {
		return fmt.Errorf("refusing to manage maintenance database %q", name)
	}

	admin := target.Copy()
	admin.Database = cfg.MaintenanceDB

	conn, err := pgx.ConnectConfig(ctx, admin)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.MaintenanceDB, err)
	}
	defer conn.Close(ctx)

	ident := pgx.Identifier{name}.Sanitize()

	if reset {
		logger.Info("dropping database", zap.String("database", name))
		if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
			return fmt.Errorf("drop database %s: %w", name, err)
		}
	}

	var exists bool
	if err := conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, name).Scan(&exists); err != nil {
		return fmt.Errorf("check database %s: %w", name, err)
	}
	if exists {
		logger.Info("database already exists", zap.String("database", name))
		return nil
	}

	logger.Info("creating database", zap.String("database", name))
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		return fmt.Errorf("create database %s: %w", name, err)
	}
	return nil
}
