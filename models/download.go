package models

import "time"

// Tracking actions recorded in download_tracking.
const (
	ActionClick    = "click"
	ActionComplete = "complete"
)

// BrowserInfo carries browser and OS metadata derived from a user agent,
// either parsed server-side or supplied by the client script.
type BrowserInfo struct {
	BrowserName    string `json:"browserName"`
	BrowserVersion string `json:"browserVersion"`
	OSName         string `json:"osName"`
	OSVersion      string `json:"osVersion"`
	UserAgent      string `json:"userAgent"`
}

// TrackingEvent is one append-only telemetry row. Email may be empty when the
// visitor has not verified yet.
type TrackingEvent struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Platform       string    `json:"platform"`
	Action         string    `json:"action"`
	BrowserName    string    `json:"browser_name"`
	BrowserVersion string    `json:"browser_version"`
	OSName         string    `json:"os_name"`
	OSVersion      string    `json:"os_version"`
	UserAgent      string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the TrackingEvent model.
func (TrackingEvent) TableName() string {
	return "download_tracking"
}

// AppDownload is an append-only record of a completed, token-authorized
// artifact download.
type AppDownload struct {
	ID           int64     `json:"id"`
	Platform     string    `json:"platform"`
	Email        string    `json:"email"`
	DownloadTime time.Time `json:"download_time"`
	UserAgent    string    `json:"-"`
	IPAddress    string    `json:"-"`
}

// TableName returns the name of the database table
// associated with the AppDownload model.
func (AppDownload) TableName() string {
	return "app_downloads"
}

// DownloadStat is one row of the grouped download report.
type DownloadStat struct {
	Platform    string    `json:"platform"`
	Action      string    `json:"action"`
	Count       int64     `json:"count"`
	LastAttempt time.Time `json:"last_attempt"`
}

// FeedbackStats is the aggregate block of the feedback report.
type FeedbackStats struct {
	Total      int64  `json:"total"`
	Today      int64  `json:"today"`
	TopConcern string `json:"topConcern"`
}

// TrackRequest is the request payload of the track-download endpoint.
// Either Email or Token identifies the visitor; both may be absent for
// anonymous events. BrowserInfo is optional client-supplied metadata that
// takes precedence over server-side user-agent parsing.
type TrackRequest struct {
	Email       string       `json:"email"`
	Token       string       `json:"token"`
	Platform    string       `json:"platform"`
	Action      string       `json:"action"`
	BrowserInfo *BrowserInfo `json:"browserInfo"`

	// UserAgent is filled from the User-Agent request header, not the body.
	UserAgent string `json:"-"`
}

// FeedbackReport is the response body of the admin feedback endpoint.
type FeedbackReport struct {
	Feedback []Feedback    `json:"feedback"`
	Stats    FeedbackStats `json:"stats"`
}

// DownloadsReport is the response body of the admin downloads endpoint.
type DownloadsReport struct {
	Stats  []DownloadStat  `json:"stats"`
	Recent []TrackingEvent `json:"recent"`
}
