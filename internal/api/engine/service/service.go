package engineService

import (
	"UnicornGolang/internal/api/engine"
	"UnicornGolang/pkg/audio"
	"UnicornGolang/pkg/decision"
	"context"

	"github.com/sirupsen/logrus"
)

type IEngineService interface {
	Decide(ctx context.Context, req engine.DecideRequest) (*engine.DecideResponse, error)
	CacheStats(ctx context.Context) (*engine.CacheStatsResponse, error)
}

type engineService struct {
	log          *logrus.Logger
	engine       *decision.Engine
	audioManager *audio.Manager
}

func New(
	log *logrus.Logger,
	decisionEngine *decision.Engine,
	audioManager *audio.Manager,
) IEngineService {
	return &engineService{
		log:          log,
		engine:       decisionEngine,
		audioManager: audioManager,
	}
}
