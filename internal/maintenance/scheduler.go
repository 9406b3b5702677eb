package maintenance

import (
	"placestats/internal/maintenance/interfaces"
	"placestats/internal/providers"
	"placestats/internal/services"
	"placestats/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

const defaultInterval = time.Hour

// Scheduler periodically prunes history entries and day records that fell
// out of the retention window.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	history services.HistoryServiceInterface
	daily   services.DailyStatisticServiceInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Maintenance.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	s.cron.AddFunc(gron.Every(interval), func() {
		s.RunOnce()
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunOnce prunes both stores and reports what survived.
func (s *Scheduler) RunOnce() (historyKept, daysKept int) {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	historyKept = s.history.PruneOlderThan(s.config.Maintenance.HistoryRetentionDays)
	daysKept = s.daily.PruneOlderThan(s.config.Maintenance.StatisticsRetentionDays)
	s.logger.Infof(providers.TypeApp, "Pruned stores: %d history entries and %d days kept", historyKept, daysKept)
	return historyKept, daysKept
}

func NewScheduler(config *structures.Config, logger providers.Logger, history services.HistoryServiceInterface, daily services.DailyStatisticServiceInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		history: history,
		daily:   daily,
	}
}
