package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/tutoring-service/internal/api/http"
	"github.com/spec-kit/tutoring-service/internal/api/http/handlers"
	"github.com/spec-kit/tutoring-service/internal/auth"
	"github.com/spec-kit/tutoring-service/internal/config"
	"github.com/spec-kit/tutoring-service/internal/events"
	"github.com/spec-kit/tutoring-service/internal/observability"
	"github.com/spec-kit/tutoring-service/internal/persistence"
	"github.com/spec-kit/tutoring-service/internal/repository"
	"github.com/spec-kit/tutoring-service/internal/service"
	"github.com/spec-kit/tutoring-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	groupRepo := repository.NewClassGroupRepository(pool)
	traitRepo := repository.NewTraitRepository(pool)
	evaluationRepo := repository.NewEvaluationRepository(pool)
	planRepo := repository.NewPlanRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartActivityRecorder(dispatcher, activityRepo, logger)

	blacklist := auth.NewBlacklist()
	worker.StartBlacklistSweeper(ctx, blacklist, cfg.Auth.BlacklistSweepInterval(), logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		TeacherRepo: teacherRepo,
		Blacklist:   blacklist,
	}, logger)
	authGate := auth.NewMiddleware(authService, cfg.Auth.PublicPaths, logger)

	teacherService := service.NewTeacherService(teacherRepo)
	studentService := service.NewStudentService(studentRepo, planRepo, dispatcher, logger)
	groupService := service.NewClassGroupService(groupRepo, studentRepo, evaluationRepo, dispatcher, logger)
	traitService := service.NewTraitService(traitRepo)
	evaluationService := service.NewEvaluationService(evaluationRepo, studentRepo, traitRepo, dispatcher, logger)
	planService := service.NewPlanService(planRepo)
	dashboardService := service.NewDashboardService(cfg.Dashboard, studentRepo, groupRepo, evaluationRepo, activityRepo, redis.ClientHandle(), logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:        handlers.NewAuthHandler(authService),
		Teachers:    handlers.NewTeachersHandler(teacherService),
		Students:    handlers.NewStudentsHandler(studentService, teacherService),
		Groups:      handlers.NewGroupsHandler(groupService, teacherService),
		Traits:      handlers.NewTraitsHandler(traitService),
		Evaluations: handlers.NewEvaluationsHandler(evaluationService, teacherService),
		Plans:       handlers.NewPlansHandler(planService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService, teacherService),
		AuthGate:    authGate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
