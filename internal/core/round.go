package core

import "encoding/json"

// Round holds the user story under discussion. It is shared by every room
// and starts out absent; there is no way back to absent once set.
type Round struct {
	story json.RawMessage
	set   bool
}

func NewRound() *Round { return &Round{} }

// Set stores a copy of story as-is.
func (r *Round) Set(story json.RawMessage) {
	r.story = append(json.RawMessage(nil), story...)
	r.set = true
}

func (r *Round) Get() (json.RawMessage, bool) {
	if !r.set {
		return nil, false
	}
	return r.story, true
}
