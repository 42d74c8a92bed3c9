package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
)

// SweepUpdate is one applied status transition.
type SweepUpdate struct {
	InvestmentID uint   `json:"investment_id"`
	InvestmentNo int64  `json:"investment_no"`
	FromStatus   string `json:"from_status"`
	ToStatus     string `json:"to_status"`
}

// SweepResult summarizes one sweep run.
type SweepResult struct {
	UpdatesApplied int           `json:"updates_applied"`
	Updates        []SweepUpdate `json:"updates"`
}

// Sweeper periodically re-evaluates every investment against its cashflows
// and persists status transitions. Each transition commits independently so
// one failure never aborts the rest of the batch.
type Sweeper struct {
	DB       *gorm.DB
	Interval time.Duration
}

func NewSweeper(db *gorm.DB) *Sweeper {
	return &Sweeper{DB: db, Interval: time.Hour}
}

// Start runs one sweep immediately, then on every tick until the context is
// cancelled. A failed sweep is logged and retried on the next scheduled tick
// rather than in-loop.
func (s *Sweeper) Start(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	log.Printf("[sweeper] started, interval %s", interval)

	if _, err := s.RunOnce(); err != nil {
		log.Printf("[sweeper] initial sweep failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[sweeper] stopped")
			return
		case <-ticker.C:
			if _, err := s.RunOnce(); err != nil {
				log.Printf("[sweeper] sweep failed: %v", err)
			}
		}
	}
}

// RunOnce loads all investments and cashflows, decides each investment's
// status and persists only those whose decided status differs from the
// stored one. Pending investments are skipped entirely; only an external
// funding confirmation moves them.
func (s *Sweeper) RunOnce() (*SweepResult, error) {
	var investments []models.Investment
	if err := s.DB.Find(&investments).Error; err != nil {
		return nil, err
	}
	var flows []models.Cashflow
	if err := s.DB.Find(&flows).Error; err != nil {
		return nil, err
	}

	byInvestment := make(map[uint][]models.Cashflow, len(investments))
	for _, f := range flows {
		byInvestment[f.InvestmentID] = append(byInvestment[f.InvestmentID], f)
	}

	now := time.Now()
	result := &SweepResult{}
	for i := range investments {
		inv := &investments[i]
		if inv.Status == models.InvestmentStatusPending {
			continue
		}

		decision := DecideStatus(inv, byInvestment[inv.ID], now)
		if decision.Status == inv.Status {
			continue
		}

		if err := s.applyTransition(inv, decision); err != nil {
			log.Printf("[sweeper] investment #%d: %v", inv.InvestmentNo, err)
			continue
		}
		result.UpdatesApplied++
		result.Updates = append(result.Updates, SweepUpdate{
			InvestmentID: inv.ID,
			InvestmentNo: inv.InvestmentNo,
			FromStatus:   inv.Status,
			ToStatus:     decision.Status,
		})
	}
	return result, nil
}

// applyTransition commits one investment's status change (and any alert) in
// its own transaction.
func (s *Sweeper) applyTransition(inv *models.Investment, decision StatusDecision) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":         decision.Status,
			"late_date":      decision.LateDate,
			"defaulted_date": decision.DefaultedDate,
		}
		if err := tx.Model(&models.Investment{}).Where("id = ?", inv.ID).Updates(updates).Error; err != nil {
			return err
		}

		if decision.Status == models.InvestmentStatusLate || decision.Status == models.InvestmentStatusDefaulted {
			alert := models.Alert{
				InvestmentID: inv.ID,
				Kind:         decision.Status,
				Message:      fmt.Sprintf("investment #%d (%s) is %s", inv.InvestmentNo, inv.Name, decision.Status),
			}
			if err := tx.Create(&alert).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
