package http

import (
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/service"
)

// Query-parameter outcomes the browser-navigated endpoints redirect home
// with. The site script renders them as banners; the cause of a token
// failure is never disclosed beyond these generic markers.
const (
	verifyOutcomeMissing = "missing"
	verifyOutcomeInvalid = "invalid"
	verifyOutcomeError   = "error"

	downloadOutcomeTokenRequired = "token_required"
	downloadOutcomeInvalid       = "invalid"
	downloadOutcomeError         = "error"
)

//go:embed templates/download_now.html
var downloadNowHTML string

var downloadNowTemplate = template.Must(template.New("download-now").Parse(downloadNowHTML))

// downloadNowLink is one platform row of the download page.
type downloadNowLink struct {
	Href  string
	Label string
}

// verifyEmail redeems a verification token and forwards the browser to the
// download page carrying the freshly issued download token.
func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token := r.URL.Query().Get("token")
	if token == "" {
		redirect(w, r, h.homeURL("verify", verifyOutcomeMissing))
		return
	}

	downloadToken, err := h.services.TokenService.RedeemVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrTokenIsExpiredOrInvalid) {
			redirect(w, r, h.homeURL("verify", verifyOutcomeInvalid))
			return
		}
		log.Err(err).Msg("verification redemption failed")
		redirect(w, r, h.homeURL("verify", verifyOutcomeError))
		return
	}

	target := fmt.Sprintf("%s/download-now?token=%s", h.baseURL, url.QueryEscape(downloadToken.Token))
	redirect(w, r, target)
}

// downloadNow renders the platform-links page, each link carrying the
// download token. The page is only shown for a valid token; anything else
// bounces back home with a generic outcome.
func (h *Handler) downloadNow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token := r.URL.Query().Get("token")
	if token == "" {
		redirect(w, r, h.homeURL("download", downloadOutcomeTokenRequired))
		return
	}

	if _, err := h.services.TokenService.ResolveDownloadToken(ctx, token); err != nil {
		if errors.Is(err, service.ErrTokenIsExpiredOrInvalid) {
			redirect(w, r, h.homeURL("download", downloadOutcomeInvalid))
			return
		}
		log.Err(err).Msg("download token resolution failed")
		redirect(w, r, h.homeURL("download", downloadOutcomeError))
		return
	}

	escaped := url.QueryEscape(token)
	links := []downloadNowLink{
		{Href: fmt.Sprintf("/download/%s?token=%s", service.PlatformWindows, escaped), Label: "Download for Windows"},
		{Href: fmt.Sprintf("/download/%s?token=%s", service.PlatformMac, escaped), Label: "Download for Mac (Apple Silicon)"},
		{Href: fmt.Sprintf("/download/%s?token=%s", service.PlatformMacIntel, escaped), Label: "Download for Mac (Intel)"},
		{Href: fmt.Sprintf("/download/%s?token=%s", service.PlatformLinux, escaped), Label: "Download for Linux"},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := downloadNowTemplate.Execute(w, links); err != nil {
		log.Err(err).Msg("rendering download page failed")
	}
}

// homeURL builds a redirect target back to the site root with one outcome
// query parameter, e.g. "https://www.notsus.net/?verify=invalid".
func (h *Handler) homeURL(param, outcome string) string {
	return fmt.Sprintf("%s/?%s=%s", h.baseURL, param, outcome)
}
