package server

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pepo-gtm/pepo/internal/profile"
	"github.com/pepo-gtm/pepo/internal/store"
)

// Scheduler fires due daily-plan tasks on a fixed tick. A Redis SetNX lock
// keeps multiple instances from firing the same task in the same window;
// without Redis the scheduler still runs, unlocked.
type Scheduler struct {
	Profiles *profile.Store
	Runner   WorkflowRunner
	Archive  store.Archive
	Index    *store.Index
	Rdb      *redis.Client
	Interval time.Duration
	LockTTL  time.Duration
	Stop     chan struct{}

	logger *log.Logger
	now    func() time.Time
}

func NewScheduler(profiles *profile.Store, runner WorkflowRunner, archive store.Archive, index *store.Index, rdb *redis.Client) *Scheduler {
	return &Scheduler{
		Profiles: profiles,
		Runner:   runner,
		Archive:  archive,
		Index:    index,
		Rdb:      rdb,
		Interval: time.Hour,
		LockTTL:  2 * time.Minute,
		Stop:     make(chan struct{}),
		logger:   log.New(log.Writer(), "[SCHED] ", log.LstdFlags),
		now:      time.Now,
	}
}

func (s *Scheduler) Start() {
	ticker := time.NewTicker(s.Interval)
	go func() {
		for {
			select {
			case <-s.Stop:
				ticker.Stop()
				return
			case <-ticker.C:
				s.Tick(context.Background())
			}
		}
	}()
}

// Tick runs one scheduling pass: load plan, fire due tasks, stamp last-run.
func (s *Scheduler) Tick(ctx context.Context) {
	p, err := s.Profiles.LoadProfile()
	if err != nil {
		return
	}
	plan, err := s.Profiles.LoadDailyPlan()
	if err != nil {
		return
	}

	now := s.now()
	due := profile.DueTasks(plan, now)
	if len(due) == 0 {
		return
	}

	for _, i := range due {
		task := plan.Tasks[i]
		if s.Rdb != nil {
			lockKey := "sched:lock:" + string(task.Type)
			ok, err := s.Rdb.SetNX(ctx, lockKey, "1", s.LockTTL).Result()
			if err != nil || !ok {
				continue
			}
		}

		s.logger.Printf("running daily task %s (%s)", task.Name, task.Type)
		spec := profile.WorkflowSpecFor(task, p)
		result, err := s.Runner.Run(ctx, spec)
		if err != nil {
			s.logger.Printf("daily task %s failed: %v", task.Type, err)
			continue
		}

		if s.Archive != nil {
			if rec, err := store.RecordFromResult(&result); err == nil {
				if err := s.Archive.SaveRun(ctx, rec); err != nil {
					s.logger.Printf("archiving run %s: %v", rec.ID, err)
				} else if s.Index != nil {
					_ = s.Index.IndexRun(rec)
				}
			}
		}

		plan.MarkRun(i, now)
		if err := s.Profiles.SaveDailyPlan(plan); err != nil {
			s.logger.Printf("saving daily plan: %v", err)
		}
	}
}
