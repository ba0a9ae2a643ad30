package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
	"github.com/riskibarqy/pokedex-api/internal/platform/logging"
)

const (
	defaultImportWorkers = 4
	maxImportWorkers     = 32

	ImportStatusImported = "imported"
	ImportStatusNotFound = "not_found"
	ImportStatusFailed   = "failed"
)

// PokemonSource fetches a single catalog record by numeric id or name.
type PokemonSource interface {
	FetchPokemon(ctx context.Context, ref string) (pokemon.Pokemon, error)
}

type ImportFromSourceInput struct {
	Refs    []string
	Workers int
}

type ImportRefResult struct {
	Ref        string `json:"ref"`
	PokemonID  int64  `json:"pokemon_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

type ImportResult struct {
	WorkerCount   int               `json:"worker_count"`
	ImportedCount int               `json:"imported"`
	FailedCount   int               `json:"failed"`
	Refs          []ImportRefResult `json:"refs"`
}

type ImportService struct {
	repo   pokemon.Repository
	source PokemonSource
	logger *logging.Logger
}

func NewImportService(repo pokemon.Repository, source PokemonSource, logger *logging.Logger) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ImportService{
		repo:   repo,
		source: source,
		logger: logger,
	}
}

// ImportSeed replaces the whole catalog with items.
func (s *ImportService) ImportSeed(ctx context.Context, items []pokemon.Pokemon) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportSeed")
	defer span.End()

	seen := make(map[int64]struct{}, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return 0, invalidInputf("seed record %d: %v", i, err)
		}
		if _, ok := seen[item.ID]; ok {
			return 0, invalidInputf("seed record %d: duplicate pokemon id %d", i, item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	if err := s.repo.ReplaceAll(ctx, items); err != nil {
		return 0, fmt.Errorf("replace catalog: %w", err)
	}

	s.logger.InfoContext(ctx, "pokemon seed imported", "count", len(items))
	return len(items), nil
}

// ImportFromSource fetches every ref concurrently and upserts what it gets.
// A failing ref does not abort the others.
func (s *ImportService) ImportFromSource(ctx context.Context, input ImportFromSourceInput) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportFromSource")
	defer span.End()

	if s.source == nil {
		return ImportResult{}, unavailablef("pokemon source is not configured")
	}

	refs := normalizeImportRefs(input.Refs)
	if len(refs) == 0 {
		return ImportResult{}, invalidInputf("at least one pokemon id or name is required")
	}

	workerCount := normalizeImportWorkerCount(input.Workers, len(refs))
	result := ImportResult{
		WorkerCount: workerCount,
		Refs:        make([]ImportRefResult, 0, len(refs)),
	}

	results := make(chan ImportRefResult, len(refs))
	var importedCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ImportResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, ref := range refs {
		ref := ref
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := s.importOne(ctx, ref)
			if row.Status == ImportStatusImported {
				importedCount.Add(1)
			} else {
				failedCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			return ImportResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Refs = append(result.Refs, row)
	}
	sort.SliceStable(result.Refs, func(i, j int) bool {
		return result.Refs[i].Ref < result.Refs[j].Ref
	})

	result.ImportedCount = int(importedCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "pokemon import finished",
		"workers", result.WorkerCount,
		"imported", result.ImportedCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func (s *ImportService) importOne(ctx context.Context, ref string) ImportRefResult {
	start := time.Now()
	row := ImportRefResult{Ref: ref}

	item, err := s.source.FetchPokemon(ctx, ref)
	if err != nil {
		row.Message = err.Error()
		if errors.Is(err, ErrNotFound) {
			row.Status = ImportStatusNotFound
		} else {
			row.Status = ImportStatusFailed
		}
		s.logger.WarnContext(ctx, "fetch pokemon failed", "ref", ref, "error", err)
		row.DurationMs = time.Since(start).Milliseconds()
		return row
	}

	if err := item.Validate(); err != nil {
		row.Status = ImportStatusFailed
		row.Message = err.Error()
		row.DurationMs = time.Since(start).Milliseconds()
		return row
	}

	if err := s.repo.Upsert(ctx, item); err != nil {
		row.Status = ImportStatusFailed
		row.Message = err.Error()
		s.logger.ErrorContext(ctx, "upsert pokemon failed", "ref", ref, "pokemon_id", item.ID, "error", err)
		row.DurationMs = time.Since(start).Milliseconds()
		return row
	}

	row.PokemonID = item.ID
	row.Name = item.Name
	row.Status = ImportStatusImported
	row.DurationMs = time.Since(start).Milliseconds()
	return row
}

func normalizeImportRefs(refs []string) []string {
	out := make([]string, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		ref = strings.ToLower(strings.TrimSpace(ref))
		if ref == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}

func normalizeImportWorkerCount(requested, tasks int) int {
	count := requested
	if count <= 0 {
		count = defaultImportWorkers
	}
	if count > maxImportWorkers {
		count = maxImportWorkers
	}
	if tasks > 0 && count > tasks {
		count = tasks
	}
	if count < 1 {
		count = 1
	}
	return count
}
