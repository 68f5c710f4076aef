// Package moments defines the domain types for extracted podcast moments:
// one structured decision/problem/lesson/signal/advice record per moment,
// with its source episode attribution.
package moments

// Moment types.
const (
	TypeDecision = "decision"
	TypeProblem  = "problem"
	TypeLesson   = "lesson"
	TypeSignal   = "signal"
	TypeAdvice   = "advice"
)

// Startup stages.
const (
	StageIdea     = "idea"
	StageMVP      = "mvp"
	StageTraction = "traction"
	StageScale    = "scale"
	StageMature   = "mature"
)

// Types lists the closed set of moment types.
var Types = []string{TypeDecision, TypeProblem, TypeLesson, TypeSignal, TypeAdvice}

// Stages lists the closed set of startup stages.
var Stages = []string{StageIdea, StageMVP, StageTraction, StageScale, StageMature}

// Source is the episode attribution attached to a moment. URLAtMoment is the
// source URL with the moment's timestamp offset appended, when derivable.
type Source struct {
	Podcast     string `json:"podcast,omitempty"`
	Episode     string `json:"episode,omitempty"`
	Guest       string `json:"guest,omitempty"`
	Date        string `json:"date,omitempty"`
	URL         string `json:"url,omitempty"`
	URLAtMoment string `json:"url_at_moment,omitempty"`
}

// Moment is a single extracted experience. The ID is assigned at ingestion
// and immutable; Timestamp is a free-text position marker ("3:26", "1:23:45")
// within the source episode.
type Moment struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Timestamp string   `json:"timestamp,omitempty"`
	Summary   string   `json:"summary"`
	Quote     string   `json:"quote,omitempty"`
	Decision  string   `json:"decision,omitempty"`
	Outcome   string   `json:"outcome,omitempty"`
	Lesson    string   `json:"lesson,omitempty"`
	Stage     string   `json:"stage,omitempty"`
	Situation string   `json:"situation,omitempty"`
	Tags      []string `json:"tags"`
	Source    Source   `json:"source"`
}
