package service

import (
	"github.com/picklewheel/picklewheel/internal/cache"
	"github.com/picklewheel/picklewheel/internal/config"
	"github.com/picklewheel/picklewheel/internal/identity"
	"github.com/picklewheel/picklewheel/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Wheel   *WheelService
	Metrics *MetricsService
}

func NewServices(repos *repository.Repositories, verifier identity.Verifier, counters *cache.Counters, cfg *config.Config) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, verifier, counters, cfg),
		Wheel:   NewWheelService(repos.Wheel),
		Metrics: NewMetricsService(repos.User, repos.Wheel, counters),
	}
}
