package session

import (
	"time"

	"github.com/abhisek/jlptquiz/internal/knowledge"
	sess "github.com/abhisek/jlptquiz/internal/session"
)

// sessionStartedMsg is sent when the question sequence has been drawn.
type sessionStartedMsg struct {
	Session *sess.Session
	Err     error
}

// labelSavedMsg confirms a knowledge label write.
type labelSavedMsg struct {
	Key   string
	Label knowledge.Label
	Err   error
}

// explainTickMsg polls for a background explanation.
type explainTickMsg time.Time
