package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/service"
)

// downloadPlatform authorizes one artifact download under a download token
// and redirects to the static artifact URL.
//
// Platform problems are API-style errors (404 unknown, 503 unpublished)
// because the links are generated by the download page; token problems
// redirect home with a generic outcome because the endpoint is navigated
// by the browser.
func (h *Handler) downloadPlatform(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	platform := chi.URLParam(r, "platform")
	token := r.URL.Query().Get("token")

	if token == "" {
		// platform recognition and availability are checked before the token
		if _, err := h.services.DownloadService.ResolveArtifact(platform); err != nil {
			switch {
			case errors.Is(err, service.ErrPlatformUnknown):
				respondError(w, http.StatusNotFound, "Platform not supported", "")
			case errors.Is(err, service.ErrPlatformUnavailable):
				respondPlatformUnavailable(w, platform)
			default:
				log.Err(err).Str("platform", platform).Msg("resolving artifact failed")
				redirect(w, r, h.homeURL("download", downloadOutcomeError))
			}
			return
		}
		redirect(w, r, h.homeURL("download", downloadOutcomeTokenRequired))
		return
	}

	url, err := h.services.DownloadService.RedeemForDownload(ctx, token, platform, r.UserAgent(), clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlatformUnknown):
			respondError(w, http.StatusNotFound, "Platform not supported", "")
			return
		case errors.Is(err, service.ErrPlatformUnavailable):
			respondPlatformUnavailable(w, platform)
			return
		case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
			redirect(w, r, h.homeURL("download", downloadOutcomeInvalid))
			return
		default:
			log.Err(err).Str("platform", platform).Msg("download redemption failed")
			redirect(w, r, h.homeURL("download", downloadOutcomeError))
			return
		}
	}

	redirect(w, r, url)
}

// respondPlatformUnavailable answers for a platform that is recognized but
// has no published artifact yet.
func respondPlatformUnavailable(w http.ResponseWriter, platform string) {
	respondError(w, http.StatusServiceUnavailable, "Download not available",
		fmt.Sprintf("The %s download is not yet available. Please check back soon.", platform))
}

// clientIP returns the requester's address, preferring the first
// X-Forwarded-For hop set by the fronting proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return r.RemoteAddr
}
