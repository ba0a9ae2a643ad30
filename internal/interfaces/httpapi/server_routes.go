package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/v1/pokemons", handler.ListPokemons)
	mux.HandleFunc("GET /api/v1/pokemons/{id}", handler.GetPokemon)
	mux.HandleFunc("GET /api/v2/pokemons", handler.ListPokemonsPaginated)
	mux.HandleFunc("GET /api/v1/search", handler.SearchPokemons)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler, authToken string) {
	mux.Handle("GET /api/v1/teams", RequireBearerToken(authToken, http.HandlerFunc(handler.ListTeams)))
	mux.Handle("POST /api/v1/teams", RequireBearerToken(authToken, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("GET /api/v1/teams/{id}", RequireBearerToken(authToken, http.HandlerFunc(handler.GetTeam)))
	mux.Handle("POST /api/v1/teams/{id}", RequireBearerToken(authToken, http.HandlerFunc(handler.SetTeamMembers)))
}
