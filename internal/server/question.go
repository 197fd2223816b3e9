package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/abhisek/jlptquiz/internal/quiz"
)

// requireData rejects single-question requests until the grammar sheet
// is loaded.
func (s *Server) requireData(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.deps.Engine.Library().Loaded() {
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: dataNotLoaded})
		}
		return next(c)
	}
}

func (s *Server) question(c echo.Context, mode quiz.Mode) (*quiz.Question, error) {
	labels, err := s.labels(c, mode)
	if err != nil {
		return nil, err
	}
	return s.deps.Engine.Question(mode, labels)
}

type grammarQuestionResponse struct {
	Grammar  string   `json:"grammar"`
	Japanese string   `json:"japanese"`
	Example  string   `json:"example"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
}

func (s *Server) grammarQuestion(c echo.Context) error {
	q, err := s.question(c, quiz.ModeGrammar)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, grammarQuestionResponse{
		Grammar:  q.Prompt,
		Japanese: q.Native,
		Example:  q.Example,
		Options:  q.Options,
		Correct:  q.Correct,
	})
}

type sentenceQuestionResponse struct {
	Japanese string   `json:"japanese"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
}

func (s *Server) sentenceQuestion(c echo.Context) error {
	q, err := s.question(c, quiz.ModeSentence)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sentenceQuestionResponse{
		Japanese: q.Prompt,
		Options:  q.Options,
		Correct:  q.Correct,
	})
}

// kanjiQuestionResponse is either a classic meaning question or a free
// text sentence translation, told apart by Type.
type kanjiQuestionResponse struct {
	Type     string   `json:"type"`
	Kanji    string   `json:"kanji,omitempty"`
	Onyomi   string   `json:"onyomi,omitempty"`
	Kunyomi  string   `json:"kunyomi,omitempty"`
	Question string   `json:"question,omitempty"`
	Japanese string   `json:"japanese,omitempty"`
	Options  []string `json:"options,omitempty"`
	Correct  string   `json:"correct"`
}

func (s *Server) kanjiQuestion(c echo.Context) error {
	q, err := s.question(c, quiz.ModeKanjiMixed)
	if err != nil {
		return err
	}
	if q.Mode == quiz.ModeKanjiSentence {
		return c.JSON(http.StatusOK, kanjiQuestionResponse{
			Type:     "sentence",
			Japanese: q.Prompt,
			Correct:  q.Correct,
		})
	}
	return c.JSON(http.StatusOK, kanjiQuestionResponse{
		Type:     "classic",
		Kanji:    q.Prompt,
		Onyomi:   q.Onyomi,
		Kunyomi:  q.Kunyomi,
		Question: q.Text,
		Options:  q.Options,
		Correct:  q.Correct,
	})
}

type vocabularyQuestionResponse struct {
	Word     string   `json:"word"`
	Reading  string   `json:"reading"`
	Example  string   `json:"example"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
}

func (s *Server) vocabularyQuestion(c echo.Context) error {
	q, err := s.question(c, quiz.ModeVocabulary)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vocabularyQuestionResponse{
		Word:     q.Prompt,
		Reading:  q.Reading,
		Example:  q.Example,
		Question: q.Text,
		Options:  q.Options,
		Correct:  q.Correct,
	})
}

type checkAnswerRequest struct {
	Answer  string `json:"answer"`
	Correct string `json:"correct"`
}

type checkAnswerResponse struct {
	Correct       bool   `json:"correct"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
}

func (s *Server) checkKanjiAnswer(c echo.Context) error {
	var req checkAnswerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("malformed request body")
	}
	user := strings.TrimSpace(req.Answer)
	correct := strings.TrimSpace(req.Correct)
	if user == "" || correct == "" {
		return badRequest("Missing answer or correct answer")
	}
	return c.JSON(http.StatusOK, checkAnswerResponse{
		Correct:       quiz.CheckAnswer(user, correct),
		UserAnswer:    user,
		CorrectAnswer: correct,
	})
}
