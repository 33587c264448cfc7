package handler

import (
	"encoding/json"
	"net/http"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/infrastructure/http/response"
	"github.com/franquianet/portal/infrastructure/http/validator"
)

// decodeJSON reads the request body into dst and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body")
		return false
	}
	return true
}

func pageRequest(r *http.Request) inbound.PageRequest {
	q := r.URL.Query()
	return inbound.PageRequest{
		Page:  validator.QueryInt(q, "page"),
		Limit: validator.QueryInt(q, "limit"),
	}
}
