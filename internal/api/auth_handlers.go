package api

import (
	"net/http"

	"github.com/5outh/towerlog/internal/auth"
	"github.com/5outh/towerlog/internal/db/repositories"
)

// LoginHandler handles POST /auth/token: exchanges a provisioned API key
// for a short-lived admin session token.
func LoginHandler(tokens *auth.TokenService, keysRepo *repositories.KeysRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized. Missing API Key")
			return
		}

		keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized. Invalid API Key")
			return
		}
		if !keyRes.Status {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized. Inactive API Key")
			return
		}

		token, err := tokens.IssueToken("admin", auth.RoleAdmin, 0)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		result := map[string]string{"token": token}
		respondWithSuccess(w, http.StatusOK, &result)
	}
}
