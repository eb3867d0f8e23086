package models

import "time"

// Concern tags recognized by the feedback form. Anything else submitted in
// the concerns array is silently ignored.
const (
	ConcernScreenTime    = "screen-time"
	ConcernConsumptive   = "consumptive"
	ConcernInappropriate = "inappropriate"
	ConcernInfluences    = "influences"
	ConcernSafety        = "safety"
	ConcernFalseInfo     = "false-info"
	ConcernSocial        = "social"
	ConcernOther         = "other"
)

// Feedback is one questionnaire submission. Rows are immutable once written.
type Feedback struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	ScreenTimeAddiction  bool      `json:"screen_time_addiction"`
	ConsumptiveHabits    bool      `json:"consumptive_habits"`
	InappropriateContent bool      `json:"inappropriate_content"`
	BadInfluences        bool      `json:"bad_influences"`
	Safety               bool      `json:"safety"`
	FalseInformation     bool      `json:"false_information"`
	SocialDistortion     bool      `json:"social_distortion"`
	OtherConcern         bool      `json:"other_concern"`
	OtherDescription     string    `json:"other_description"`
	GainsDescription     string    `json:"gains_description"`
	CreatedAt            time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Feedback model.
func (Feedback) TableName() string {
	return "user_feedback"
}

// FeedbackInput is the request payload of the feedback endpoint.
type FeedbackInput struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Concerns         []string `json:"concerns"`
	OtherDescription string   `json:"otherDescription"`
	GainsDescription string   `json:"gainsDescription"`
}

// ApplyConcerns maps the recognized tags of in.Concerns onto f's boolean
// columns. Unrecognized tags are treated as absent.
func (f *Feedback) ApplyConcerns(concerns []string) {
	for _, c := range concerns {
		switch c {
		case ConcernScreenTime:
			f.ScreenTimeAddiction = true
		case ConcernConsumptive:
			f.ConsumptiveHabits = true
		case ConcernInappropriate:
			f.InappropriateContent = true
		case ConcernInfluences:
			f.BadInfluences = true
		case ConcernSafety:
			f.Safety = true
		case ConcernFalseInfo:
			f.FalseInformation = true
		case ConcernSocial:
			f.SocialDistortion = true
		case ConcernOther:
			f.OtherConcern = true
		}
	}
}
