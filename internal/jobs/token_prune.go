package jobs

import (
	"log/slog"

	"couplegate/internal/admins"
	"couplegate/internal/database"
)

// TokenPruneJob removes expired admin auth tokens. Tokens accumulate one per
// login, so without pruning the table grows without bound.
type TokenPruneJob struct {
	dbManager *database.DBManager
	logger    *slog.Logger
}

func NewTokenPruneJob(dbManager *database.DBManager, logger *slog.Logger) *TokenPruneJob {
	return &TokenPruneJob{
		dbManager: dbManager,
		logger:    logger,
	}
}

// Run deletes every token whose expiry is in the past.
func (j *TokenPruneJob) Run() error {
	db := j.dbManager.GetConnection()

	pruned, err := admins.PruneExpiredTokens(db, j.logger)
	if err != nil {
		j.logger.Error("Failed to prune expired tokens", slog.Any("error", err))
		return err
	}

	if pruned > 0 {
		j.logger.Info("Pruned expired admin tokens", slog.Int64("count", pruned))
	} else {
		j.logger.Debug("No expired admin tokens to prune")
	}

	return nil
}
