// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shelflife/shelflife/internal/database/transactions"
)

// OverdueSweeper periodically scans the ledger for open transactions
// past their due date and logs them for follow-up.
type OverdueSweeper struct {
	transactions *transactions.Repository
	schedule     string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewOverdueSweeper creates a sweeper with a standard 5-field cron schedule.
func NewOverdueSweeper(txRepo *transactions.Repository, schedule string) *OverdueSweeper {
	return &OverdueSweeper{
		transactions: txRepo,
		schedule:     schedule,
		cron:         cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the sweeper.
func (s *OverdueSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runSweep()
	})
	if err != nil {
		return fmt.Errorf("invalid sweep schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Overdue sweeper: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the sweeper, waiting for a running sweep.
func (s *OverdueSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	// Release the monitor goroutine when Stop was called directly
	// rather than through context cancellation.
	if s.cancelFunc != nil {
		s.cancelFunc()
	}

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Overdue sweeper: stopped")
}

// IsRunning returns whether the sweeper is active.
func (s *OverdueSweeper) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// RunNow triggers an immediate sweep.
func (s *OverdueSweeper) RunNow() {
	s.runSweep()
}

func (s *OverdueSweeper) runSweep() {
	overdue, err := s.transactions.GetOverdue(time.Now())
	if err != nil {
		log.Printf("Overdue sweep: failed to query ledger: %v", err)
		return
	}
	if len(overdue) == 0 {
		log.Printf("Overdue sweep: no overdue loans")
		return
	}

	log.Printf("Overdue sweep: %d loan(s) past due", len(overdue))
	for _, tx := range overdue {
		log.Printf("Overdue sweep: transaction %d, book %q (%s) due %s, held by %s",
			tx.ID, tx.Book.Title, tx.Book.CatalogCode,
			tx.DueDate.Format("2006-01-02"), tx.User.AdmissionNumber)
	}
}
