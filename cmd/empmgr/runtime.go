package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/config"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/events"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/persistence"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/repository"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/service"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/worker"
)

// runtime holds the connections and services shared by the menu and the
// HTTP server.
type runtime struct {
	pg    *persistence.Postgres
	redis *persistence.Redis
	org   *service.OrgService
}

func newRuntime(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*runtime, error) {
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			pg.Close()
			return nil, err
		}
	}

	rt := &runtime{pg: pg}
	dispatcher := events.NewInMemoryDispatcher()
	var publisher *events.RedisPublisher
	if cfg.Redis.Enabled() {
		rt.redis = persistence.NewRedis(ctx, cfg.Redis, logger)
		publisher = events.NewRedisPublisher(rt.redis.Client, cfg.Redis.Channel)
	}
	worker.StartEventSubscribers(dispatcher, service.NewAuditService(dispatcher, logger), publisher)

	pool := pg.PoolHandle()
	rt.org = service.NewOrgService(service.OrgDependencies{
		DepartmentRepo: repository.NewDepartmentRepository(pool),
		RoleRepo:       repository.NewRoleRepository(pool),
		EmployeeRepo:   repository.NewEmployeeRepository(pool),
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	return rt, nil
}

func (rt *runtime) Close() {
	rt.redis.Close()
	rt.pg.Close()
}
