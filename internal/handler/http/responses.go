package http

import (
	"net/http"

	"github.com/notsus/site-backend/internal/utils"
)

// errorBody is the JSON shape of every non-2xx API response.
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// respondError writes the standard failure envelope.
func respondError(w http.ResponseWriter, statusCode int, errText, message string) {
	utils.WriteJSON(w, errorBody{Success: false, Error: errText, Message: message}, statusCode)
}

// redirect sends the browser to target with 302 Found; every
// browser-navigated endpoint reports outcomes this way instead of JSON.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusFound)
}
