package usecase

import (
	"context"

	"spendly/internal/advisor"
	"spendly/internal/chat"
	"spendly/internal/document"
	"spendly/internal/session/repository"
	"spendly/internal/slot"
	pkgLog "spendly/pkg/log"
)

// Generator writes the cross-cutting turn summary.
type Generator interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}

// Config tunes the orchestrator.
type Config struct {
	// UploadDir is the only directory document references may resolve into.
	UploadDir           string
	HistoryWindow       int
	DefaultAnnualIncome float64
}

type implUseCase struct {
	l         pkgLog.Logger
	repo      repository.Repository
	parser    document.Parser
	advisor   advisor.Advisor
	extractor slot.Extractor
	gen       Generator
	locks     *keyedMutex
	cfg       Config
}

var _ chat.UseCase = (*implUseCase)(nil)

// New creates a new chat UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.Repository,
	parser document.Parser,
	adv advisor.Advisor,
	extractor slot.Extractor,
	gen Generator,
	cfg Config,
) chat.UseCase {
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = DefaultHistoryWindow
	}
	if cfg.DefaultAnnualIncome <= 0 {
		cfg.DefaultAnnualIncome = DefaultAnnualIncome
	}
	return &implUseCase{
		l:         l,
		repo:      repo,
		parser:    parser,
		advisor:   adv,
		extractor: extractor,
		gen:       gen,
		locks:     newKeyedMutex(),
		cfg:       cfg,
	}
}
