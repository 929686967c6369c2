package jobs

import (
	"fmt"
	"log"

	"caravanas/internal/repositories"
	"caravanas/internal/services"
	"caravanas/internal/utils"

	"github.com/robfig/cron/v3"
)

// RepairRunner re-runs the reconciliation pipeline over every passenger and
// overwrites whatever status is stored. Como o insert de pagamento e o
// persist de status não são atômicos, essa varredura fecha a janela de status
// desatualizado.
type RepairRunner struct {
	TripRepo      repositories.TripRepository
	PassengerRepo repositories.PassengerRepository
	Reconciler    services.ReconciliationService
}

// RepairStatuses sweeps all trips. Individual failures are logged and
// skipped; the sweep never aborts halfway.
func (r RepairRunner) RepairStatuses() {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[JOBS] repair sweep panicked: %v", rec)
		}
	}()

	tripIDs, err := r.TripRepo.ListIDs()
	if err != nil {
		utils.LogEvent("", "jobs", "repair", "list trips failed: "+err.Error())
		return
	}

	var repaired, failed int
	for _, tripID := range tripIDs {
		passengers, err := r.PassengerRepo.ListByTrip(tripID)
		if err != nil {
			utils.LogEvent("", "jobs", "repair", fmt.Sprintf("trip_id=%d list failed: %v", tripID, err))
			failed++
			continue
		}
		for _, p := range passengers {
			if _, err := r.Reconciler.RecomputeStatus(p.ID); err != nil {
				utils.LogEvent("", "jobs", "repair", fmt.Sprintf("passenger_id=%d recompute failed: %v", p.ID, err))
				failed++
				continue
			}
			repaired++
		}
	}

	utils.LogEvent("", "jobs", "repair", fmt.Sprintf("repaired=%d failed=%d", repaired, failed))
}

// StartScheduler registers the nightly sweep and starts the cron loop.
// Empty spec disables scheduling.
func StartScheduler(spec string, runner RepairRunner) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, runner.RepairStatuses); err != nil {
		return nil, err
	}
	c.Start()

	log.Printf("Varredura de reparo agendada: %s", spec)
	return c, nil
}
