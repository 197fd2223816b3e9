package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abhisek/jlptquiz/internal/quiz"
	"github.com/abhisek/jlptquiz/internal/session"
)

// questionView is a session question without its answer.
type questionView struct {
	Index    int       `json:"index"`
	Mode     quiz.Mode `json:"mode"`
	Prompt   string    `json:"prompt"`
	Native   string    `json:"native,omitempty"`
	Example  string    `json:"example,omitempty"`
	Onyomi   string    `json:"onyomi,omitempty"`
	Kunyomi  string    `json:"kunyomi,omitempty"`
	Reading  string    `json:"reading,omitempty"`
	Text     string    `json:"question"`
	Options  []string  `json:"options,omitempty"`
	FreeText bool      `json:"free_text"`
}

func viewOf(q quiz.Question, index int) *questionView {
	return &questionView{
		Index:    index,
		Mode:     q.Mode,
		Prompt:   q.Prompt,
		Native:   q.Native,
		Example:  q.Example,
		Onyomi:   q.Onyomi,
		Kunyomi:  q.Kunyomi,
		Reading:  q.Reading,
		Text:     q.Text,
		Options:  q.Options,
		FreeText: q.FreeText,
	}
}

type sessionResponse struct {
	Token    string        `json:"token"`
	Mode     quiz.Mode     `json:"mode"`
	State    session.State `json:"state"`
	Size     int           `json:"size"`
	Answered int           `json:"answered"`
	Score    int           `json:"score"`
	Question *questionView `json:"question,omitempty"`
}

func sessionView(token string, sess *session.Session) sessionResponse {
	resp := sessionResponse{
		Token:    token,
		Mode:     sess.Mode,
		State:    sess.State(),
		Size:     sess.Size(),
		Answered: sess.Answered(),
		Score:    sess.Score(),
	}
	if q, i, err := sess.Current(); err == nil {
		resp.Question = viewOf(q, i)
	}
	return resp
}

type createSessionRequest struct {
	Mode string `json:"mode"`
	Size int    `json:"size"`
}

func (s *Server) createSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("malformed request body")
	}
	mode, err := quiz.ParseMode(req.Mode)
	if err != nil {
		return badRequest(err.Error())
	}
	size := req.Size
	if size <= 0 {
		size = s.deps.SessionSize
	}

	labels, err := s.labels(c, mode)
	if err != nil {
		return err
	}
	token, sess := s.deps.Sessions.Create(mode)
	src := session.SourceFunc(func(n int) ([]quiz.Question, error) {
		return s.deps.Engine.Questions(mode, labels, n)
	})
	if err := sess.Start(src, size); err != nil {
		s.deps.Sessions.Delete(token)
		return err
	}
	s.deps.Recorder.Started(c.Request().Context(), sess)

	return c.JSON(http.StatusCreated, sessionView(token, sess))
}

func (s *Server) getSession(c echo.Context) error {
	token := c.Param("token")
	sess, err := s.deps.Sessions.Get(token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionView(token, sess))
}

type answerRequest struct {
	Index  *int   `json:"index"`
	Answer string `json:"answer"`
}

type answerResponse struct {
	sessionResponse
	Result  session.Result   `json:"result"`
	Summary *session.Summary `json:"summary,omitempty"`
}

func (s *Server) answer(c echo.Context) error {
	token := c.Param("token")
	sess, err := s.deps.Sessions.Get(token)
	if err != nil {
		return err
	}

	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("malformed request body")
	}
	if req.Index == nil {
		return badRequest("index is required")
	}

	res, err := sess.Answer(*req.Index, req.Answer)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	q, _ := sess.Question(res.Index)
	s.deps.Recorder.Answered(ctx, sess, q, res)

	resp := answerResponse{sessionResponse: sessionView(token, sess), Result: res}
	if resp.State == session.StateCompleted {
		sum := sess.Summary()
		resp.Summary = &sum
		s.deps.Recorder.Ended(ctx, sess)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) deleteSession(c echo.Context) error {
	token := c.Param("token")
	sess, err := s.deps.Sessions.Get(token)
	if err != nil {
		return err
	}
	if sess.State() == session.StateInProgress {
		s.deps.Recorder.Ended(c.Request().Context(), sess)
	}
	s.deps.Sessions.Delete(token)
	return c.NoContent(http.StatusNoContent)
}
