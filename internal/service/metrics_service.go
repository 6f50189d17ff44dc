package service

import (
	"context"
	"runtime"
	"time"

	"github.com/picklewheel/picklewheel/internal/cache"
	"github.com/picklewheel/picklewheel/internal/domain"
	"github.com/picklewheel/picklewheel/internal/repository"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

type MetricsService struct {
	userRepo  repository.UserRepository
	wheelRepo repository.WheelRepository
	counters  *cache.Counters
	startedAt time.Time
}

func NewMetricsService(userRepo repository.UserRepository, wheelRepo repository.WheelRepository, counters *cache.Counters) *MetricsService {
	return &MetricsService{
		userRepo:  userRepo,
		wheelRepo: wheelRepo,
		counters:  counters,
		startedAt: time.Now(),
	}
}

// InstanceMetrics describes the process and host the server runs on.
type InstanceMetrics struct {
	MemoryUsage uint64    `json:"memoryUsage"` // process heap bytes
	CPUUsage    float64   `json:"cpuUsage"`    // host cpu percent
	Uptime      float64   `json:"uptime"`      // process uptime seconds
	LoadAvg     []float64 `json:"loadAvg"`
	FreeMem     uint64    `json:"freeMem"`
	TotalMem    uint64    `json:"totalMem"`
}

// MetricsSnapshot is the admin dashboard payload.
type MetricsSnapshot struct {
	UsersCount           int64           `json:"usersCount"`
	WheelsCount          int64           `json:"wheelsCount"`
	Visits               int64           `json:"visits"`
	RegistrationAttempts int64           `json:"registrationAttempts"`
	Instance             InstanceMetrics `json:"instance"`
	Users                []*domain.User  `json:"users"`
}

func (s *MetricsService) Snapshot(ctx context.Context) (*MetricsSnapshot, error) {
	usersCount, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	wheelsCount, err := s.wheelRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &MetricsSnapshot{
		UsersCount:           usersCount,
		WheelsCount:          wheelsCount,
		Visits:               s.counters.Visits(ctx),
		RegistrationAttempts: s.counters.Registrations(ctx),
		Instance:             s.instanceMetrics(),
		Users:                users,
	}, nil
}

func (s *MetricsService) instanceMetrics() InstanceMetrics {
	metrics := InstanceMetrics{
		Uptime:  time.Since(s.startedAt).Seconds(),
		LoadAvg: []float64{0, 0, 0},
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	metrics.MemoryUsage = ms.Alloc

	// Host stats are best effort, zero values when unavailable.
	if vm, err := mem.VirtualMemory(); err == nil {
		metrics.FreeMem = vm.Free
		metrics.TotalMem = vm.Total
	}
	if avg, err := load.Avg(); err == nil {
		metrics.LoadAvg = []float64{avg.Load1, avg.Load5, avg.Load15}
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		metrics.CPUUsage = percents[0]
	}

	return metrics
}
