package conversationService

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	workerInterval  = 10 * time.Second
	workerBatchSize = 10
	workerTimeout   = 45 * time.Second
)

// StartPendingWorker polls for user turns that never got a reply (for
// example after a crash mid-pipeline) and replays them. Runs until the
// context is cancelled.
func (s *conversationService) StartPendingWorker(ctx context.Context) {
	ticker := time.NewTicker(workerInterval)
	defer ticker.Stop()

	s.log.Info("Pending-turn worker started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Pending-turn worker stopped")
			return
		case <-ticker.C:
			if err := s.ProcessPendingTurns(ctx); err != nil {
				s.log.WithFields(logrus.Fields{
					"error": err.Error(),
				}).Error("Pending-turn sweep failed")
			}
		}
	}
}

// ProcessPendingTurns handles one sweep. Failures are isolated per turn so
// one poisoned row cannot stall the queue.
func (s *conversationService) ProcessPendingTurns(ctx context.Context) error {
	repoClient, err := s.repo.NewClient(false)
	if err != nil {
		return err
	}

	pending, err := repoClient.Turns.GetUnprocessedTurns(ctx, workerBatchSize)
	if err != nil {
		return err
	}

	for _, turn := range pending {
		turnCtx, cancel := context.WithTimeout(ctx, workerTimeout)

		client, err := repoClient.Clients.GetClientByID(turnCtx, turn.ClientID)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"turn_id":   turn.ID,
				"client_id": turn.ClientID,
				"error":     err.Error(),
			}).Error("Pending turn references unknown client, skipping")
			cancel()
			continue
		}

		if !client.IsActive {
			// Inactive clients keep their backlog untouched until
			// reactivation.
			cancel()
			continue
		}

		if _, err := s.respond(turnCtx, repoClient, client, turn); err != nil {
			s.log.WithFields(logrus.Fields{
				"turn_id":   turn.ID,
				"client_id": turn.ClientID,
				"error":     err.Error(),
			}).Error("Failed to replay pending turn")
			cancel()
			continue
		}

		if err := repoClient.Turns.MarkTurnProcessed(turnCtx, turn.ID); err != nil {
			s.log.WithFields(logrus.Fields{
				"turn_id": turn.ID,
				"error":   err.Error(),
			}).Error("Failed to mark pending turn processed")
		}

		cancel()
	}

	return nil
}
