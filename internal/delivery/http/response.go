package http

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// respondWithJSON writes a JSON response.
func respondWithJSON(ctx *fasthttp.RequestCtx, statusCode int, response any) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(statusCode)

	body, err := json.Marshal(response)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"success":false,"error":"failed to encode response"}`)
		return
	}

	ctx.SetBody(body)
}

func respondWithError(ctx *fasthttp.RequestCtx, statusCode int, message string) {
	respondWithJSON(ctx, statusCode, APIResponse{
		Success: false,
		Error:   message,
	})
}

func respondWithSuccess(ctx *fasthttp.RequestCtx, data any, message string) {
	respondWithJSON(ctx, fasthttp.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}
