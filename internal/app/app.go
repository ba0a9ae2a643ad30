package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pokedex-api/external/pokeapi"
	"github.com/riskibarqy/pokedex-api/internal/config"
	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
	"github.com/riskibarqy/pokedex-api/internal/domain/team"
	cacherepo "github.com/riskibarqy/pokedex-api/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/pokedex-api/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pokedex-api/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pokedex-api/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/pokedex-api/internal/platform/cache"
	"github.com/riskibarqy/pokedex-api/internal/platform/id"
	"github.com/riskibarqy/pokedex-api/internal/platform/logging"
	"github.com/riskibarqy/pokedex-api/internal/platform/resilience"
	"github.com/riskibarqy/pokedex-api/internal/usecase"
)

// Repositories is the storage backend selected by STORAGE_DRIVER.
type Repositories struct {
	Pokemons pokemon.Repository
	Teams    team.Repository
	db       *sqlx.DB
}

func (r *Repositories) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// OpenRepositories builds the catalog and team stores. The catalog is wrapped
// in the TTL cache when CACHE_ENABLED is set.
func OpenRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Repositories, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var repos Repositories
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		items, err := LoadSeed(cfg.SeedFile, logger)
		if err != nil {
			return nil, err
		}
		pokemons := memory.NewPokemonRepository(items)
		repos.Pokemons = pokemons
		repos.Teams = memory.NewTeamRepository(pokemons)
		logger.Info("storage ready", "driver", cfg.StorageDriver, "pokemons", len(items))
	case config.StorageDriverPostgres:
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.DBBootstrapSeed {
			items, err := LoadSeed(cfg.SeedFile, logger)
			if err != nil {
				_ = db.Close()
				return nil, err
			}
			seeded, err := postgres.BootstrapSeed(ctx, db, items)
			if err != nil {
				_ = db.Close()
				return nil, err
			}
			logger.Info("bootstrap seed checked", "seeded", seeded, "records", len(items))
		}
		repos.db = db
		repos.Pokemons = postgres.NewPokemonRepository(db)
		repos.Teams = postgres.NewTeamRepository(db)
		logger.Info("storage ready", "driver", cfg.StorageDriver, "db_name", dbNameFromDSN(cfg.DBURL))
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		go store.RunJanitor(ctx, cfg.CacheTTL, func(removed int) {
			if removed > 0 {
				stats := store.Stats()
				logger.Debug("catalog cache swept", "removed", removed, "entries", stats.Entries, "hits", stats.Hits, "misses", stats.Misses)
			}
		})
		repos.Pokemons = cacherepo.NewPokemonRepository(repos.Pokemons, store)
	}

	return &repos, nil
}

// LoadSeed reads the seed catalog from path. A missing file falls back to the
// built-in sample records.
func LoadSeed(path string, logger *logging.Logger) ([]pokemon.Pokemon, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if path == "" {
		return memory.SeedPokemons(), nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("seed file not found, using built-in sample", "path", path)
		return memory.SeedPokemons(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open seed file %s: %w", path, err)
	}
	defer f.Close()

	items, err := pokeapi.DecodeSeed(f)
	if err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}

	return items, nil
}

func NewHTTPServer(cfg config.Config, repos *Repositories, logger *logging.Logger) (*http.Server, error) {
	if repos == nil {
		return nil, fmt.Errorf("repositories cannot be nil")
	}

	pokemonSvc := usecase.NewPokemonService(repos.Pokemons, logger)
	searchSvc := usecase.NewSearchService(repos.Pokemons, logger)
	teamSvc := usecase.NewTeamService(repos.Teams, repos.Pokemons, logger)

	handler := httpapi.NewHandler(pokemonSvc, searchSvc, teamSvc, cfg.BaseURL, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AuthToken:          cfg.AuthToken,
		RequestIDs:         id.NewUUIDGenerator(),
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// NewImportService wires the catalog store to a PokeAPI client built from cfg.
func NewImportService(cfg config.Config, repos *Repositories, logger *logging.Logger) *usecase.ImportService {
	client := pokeapi.NewClient(pokeapi.ClientConfig{
		BaseURL:      cfg.PokeAPIBaseURL,
		Timeout:      cfg.PokeAPITimeout,
		MaxRetries:   cfg.PokeAPIMaxRetries,
		RateLimitRPS: cfg.PokeAPIRateLimitRPS,
		Logger:       logger,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          cfg.PokeAPICircuitEnabled,
			FailureThreshold: cfg.PokeAPICircuitFailureCount,
			OpenTimeout:      cfg.PokeAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.PokeAPICircuitHalfOpenMaxReq,
		},
	})

	return usecase.NewImportService(repos.Pokemons, client, logger)
}
