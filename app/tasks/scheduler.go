package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dreamlabs/dreams-server/app/cfg"
	"github.com/dreamlabs/dreams-server/app/content"
	"github.com/dreamlabs/dreams-server/app/database"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	catalogCache *content.CatalogCache
	userRepo     database.UserRepository
	postRepo     database.PostRepository
	walletRepo   database.WalletRepository
	historyLimit int
	interval     time.Duration
	workerCount  int
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	taskQueue    chan TaskInterface
}

func NewScheduler(catalogCache *content.CatalogCache, userRepo database.UserRepository,
	postRepo database.PostRepository, walletRepo database.WalletRepository) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		catalogCache: catalogCache,
		userRepo:     userRepo,
		postRepo:     postRepo,
		walletRepo:   walletRepo,
		historyLimit: cfg.HistoryLimit,
		interval:     time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount:  cfg.WorkerCount,
		ctx:          ctx,
		cancel:       cancel,
		taskQueue:    make(chan TaskInterface, 300),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueStartupTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()

}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// enqueueStartupTasks registers the curated catalog in the database so
// the feed has content before the first user signs up.
func (s *Scheduler) enqueueStartupTasks() {
	entries := s.catalogCache.GetEntries()
	if len(entries) == 0 {
		slog.Debug("No catalog entries found")
		return
	}

	slog.Debug("Registering catalog entries", "count", len(entries))

	for _, entry := range entries {
		syncTask := NewSyncCatalogTask(entry, s.userRepo, s.postRepo)
		if err := s.EnqueueTask(syncTask); err != nil {
			slog.Warn("Failed to enqueue SyncCatalogTask", "entry", entry.Name, "error", err)
		}
	}
}

// enqueueTasks runs every scheduler tick: settle pending withdrawals and
// trim earnings history.
func (s *Scheduler) enqueueTasks() {
	pending, err := s.walletRepo.GetWithdrawalsByStatus(database.WithdrawalStatusPending, 100)
	if err != nil {
		slog.Warn("Failed to load pending withdrawals", "error", err)
	} else {
		for _, w := range pending {
			task := NewProcessWithdrawalTask(w.ID, s.walletRepo)
			if err := s.EnqueueTask(task); err != nil {
				slog.Warn("Failed to enqueue ProcessWithdrawalTask", "withdrawal_id", w.ID, "error", err)
			}
		}
	}

	pruneTask := NewPruneHistoryTask(s.historyLimit, s.walletRepo)
	if err := s.EnqueueTask(pruneTask); err != nil {
		slog.Warn("Failed to enqueue PruneHistoryTask", "error", err)
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "subject", task.GetSubject(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
