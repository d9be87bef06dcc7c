// Command reconcile recreates payment records that income transactions lost
// when their second write failed. It is meant to run from cron; pass group
// IDs to limit the run, or none to sweep every group.
package main

import (
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"groupledger/internal/config"
	"groupledger/internal/database"
	"groupledger/internal/logger"
	"groupledger/internal/models"
	"groupledger/internal/services"
)

const maxConcurrentGroups = 4

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("Reconcile error: %v", err)
	}
}

func run(groupIDs []string) error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dbConfig, err := database.NewConfig(cfg)
	if err != nil {
		return err
	}
	manager, err := database.NewManager(dbConfig)
	if err != nil {
		return err
	}
	defer manager.Close()

	db := manager.DB()
	if len(groupIDs) == 0 {
		if err := db.Model(&models.Group{}).Order("created_at ASC").Pluck("id", &groupIDs).Error; err != nil {
			return fmt.Errorf("failed to list groups: %w", err)
		}
	}

	paymentService := services.NewPaymentService(db)
	var created, ambiguous, failedGroups atomic.Int64

	var g errgroup.Group
	g.SetLimit(maxConcurrentGroups)
	for _, groupID := range groupIDs {
		g.Go(func() error {
			report, err := paymentService.RepairOrphans(groupID)
			if err != nil {
				// One broken group must not stop the sweep.
				failedGroups.Add(1)
				log.Errorw("repair failed", "group_id", groupID, "error", err)
				return nil
			}
			created.Add(int64(len(report.CreatedPaymentIDs)))
			ambiguous.Add(int64(report.SkippedAmbiguous))
			return nil
		})
	}
	_ = g.Wait()

	log.Infow("reconcile finished",
		"groups", len(groupIDs),
		"created_payments", created.Load(),
		"skipped_ambiguous", ambiguous.Load(),
		"failed_groups", failedGroups.Load(),
	)
	if failedGroups.Load() > 0 {
		return fmt.Errorf("%d group(s) could not be repaired", failedGroups.Load())
	}
	return nil
}
