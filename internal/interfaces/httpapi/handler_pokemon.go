package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
	"github.com/riskibarqy/pokedex-api/internal/usecase"
)

type pokemonPageDTO struct {
	Items    []usecase.PokemonSummaryView `json:"items"`
	Metadata usecase.PaginationMetadata   `json:"metadata"`
}

func (h *Handler) ListPokemons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPokemons")
	defer span.End()

	sort := h.sortParam(r)
	items, err := h.pokemonService.List(ctx, sort)
	if err != nil {
		h.logger.ErrorContext(ctx, "list pokemons failed", "sort", sort, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, usecase.NewPokemonSummaryViews(items))
}

func (h *Handler) GetPokemon(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPokemon")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.pokemonService.GetByID(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get pokemon failed", "pokemon_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, usecase.NewPokemonDetailView(item))
}

func (h *Handler) ListPokemonsPaginated(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPokemonsPaginated")
	defer span.End()

	limit, err := queryInt(r, "limit", usecase.DefaultPageLimit, 1)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	offset, err := queryInt(r, "offset", usecase.DefaultPageOffset, 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.pokemonService.ListPaginated(ctx, usecase.ListPokemonPageInput{
		Limit:  limit,
		Offset: offset,
		Sort:   h.sortParam(r),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list pokemon page failed", "limit", limit, "offset", offset, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pokemonPageDTO{
		Items:    usecase.NewPokemonSummaryViews(page.Items),
		Metadata: usecase.NewPaginationMetadata(h.baseURL+"/api/v2/pokemons", page),
	})
}

func (h *Handler) sortParam(r *http.Request) string {
	sort := strings.TrimSpace(r.URL.Query().Get("sort"))
	if sort != "" && !pokemon.IsKnownSortKey(sort) {
		h.logger.DebugContext(r.Context(), "unknown sort key, using id order", "sort", sort)
	}

	return sort
}
