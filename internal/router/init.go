package router

import (
	userapp "github.com/mkwon-dev/user-account-service/internal/application"
	"github.com/mkwon-dev/user-account-service/internal/container"
	repouser "github.com/mkwon-dev/user-account-service/internal/domain/repository"
	pginfra "github.com/mkwon-dev/user-account-service/internal/infrastructure/postgres"
	handlers "github.com/mkwon-dev/user-account-service/internal/interface/http"
	"github.com/mkwon-dev/user-account-service/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Service *userapp.Service
	Handler *handlers.UserHandler
}

func buildUserDeps() UserModuleDeps {
	cfg := container.GetConfig()
	repo := pginfra.NewUserRepository(container.GetPGPool())

	certifier := userapp.NewCertificationService(
		container.GetSender(),
		cfg.ExternalBaseURL,
		container.GetLogger(),
	)
	service := userapp.NewService(
		repo,
		certifier,
		container.GetRedis(),
		container.GetLogger(),
		container.GetES(),
		cfg.ESUsersIndex,
		cfg.ProfileCacheTTL,
	)
	handler := handlers.NewUserHandler(service, container.GetLogger(), cfg.VerifyRedirectURL)

	return UserModuleDeps{Repo: repo, Service: service, Handler: handler}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	userDeps := buildUserDeps()
	r.Add(modules.New(userDeps.Handler))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
