package tasks

import (
	"context"
	"runtime/debug"
	"sync"

	"dailybuzz/internal/constants"
	"dailybuzz/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler runs the periodic snapshot job. The schedule is a cron spec
// stored in settings so it can be changed from the admin surface; ReloadTasks
// is called after every settings update.
type Scheduler struct {
	cron           *cron.Cron
	settingService *services.SettingService
	backupService  *services.BackupService
	mu             sync.Mutex
}

func NewScheduler(settingService *services.SettingService, backupService *services.BackupService) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		settingService: settingService,
		backupService:  backupService,
	}
}

func (s *Scheduler) Start() {
	log.Info().Msg("snapshot scheduler starting")
	s.ReloadTasks()
}

func (s *Scheduler) ReloadTasks() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Stop the old cron scheduler and create a new one
	if s.cron != nil {
		s.cron.Stop()
	}
	s.cron = cron.New()

	spec, err := s.settingService.GetSetting(constants.SettingSnapshotCron)
	if err != nil || spec == "" {
		log.Info().Msg("no snapshot schedule configured")
		return
	}

	job := func() {
		path, err := s.backupService.WriteSnapshot(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("scheduled snapshot failed")
			return
		}
		log.Info().Str("path", path).Msg("scheduled snapshot written")
	}

	if _, err := s.cron.AddFunc(spec, recoveryWrapper(job)); err != nil {
		log.Error().Err(err).Str("spec", spec).Msg("invalid snapshot schedule")
		return
	}

	s.cron.Start()
	log.Info().Str("spec", spec).Msg("snapshot schedule active")
}

func recoveryWrapper(job func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).
					Msg("scheduled job panicked")
			}
		}()
		job()
	}
}
