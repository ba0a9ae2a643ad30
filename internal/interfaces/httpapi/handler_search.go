package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/pokedex-api/internal/usecase"
)

func (h *Handler) SearchPokemons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPokemons")
	defer span.End()

	query := r.URL.Query()
	if !query.Has("query") {
		writeError(ctx, w, fmt.Errorf("%w: query parameter is required", usecase.ErrInvalidInput))
		return
	}
	limit, err := queryInt(r, "limit", 0, 1)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.searchService.Search(ctx, usecase.SearchInput{
		Query: query.Get("query"),
		Limit: limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "search pokemons failed", "query", query.Get("query"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, usecase.NewPokemonSummaryViews(items))
}
