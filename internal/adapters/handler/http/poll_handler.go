package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

type PollHandler struct {
	service  ports.QuestionService
	renderer *Renderer
	links    Links
}

func NewPollHandler(service ports.QuestionService, renderer *Renderer, links Links) *PollHandler {
	return &PollHandler{
		service:  service,
		renderer: renderer,
		links:    links,
	}
}

type questionItem struct {
	ID      uuid.UUID
	Text    string
	PubDate time.Time
	Recent  bool
}

type indexPage struct {
	Questions []questionItem
}

type detailPage struct {
	Question     *domain.Question
	ErrorMessage string
}

// Index renders the latest published questions.
func (h *PollHandler) Index(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.LatestPublished(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}

	now := h.service.Now()
	page := indexPage{Questions: make([]questionItem, 0, len(questions))}
	for _, q := range questions {
		page.Questions = append(page.Questions, questionItem{
			ID:      q.ID,
			Text:    q.Text,
			PubDate: q.PubDate,
			Recent:  q.WasPublishedRecently(now),
		})
	}

	h.renderer.HTML(w, http.StatusOK, "index.html", page)
}

func (h *PollHandler) Detail(w http.ResponseWriter, r *http.Request) {
	question, err := h.service.GetPublished(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		pageError(w, r, err)
		return
	}

	h.renderer.HTML(w, http.StatusOK, "detail.html", detailPage{Question: question})
}

func (h *PollHandler) Results(w http.ResponseWriter, r *http.Request) {
	question, err := h.service.Results(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		pageError(w, r, err)
		return
	}

	h.renderer.HTML(w, http.StatusOK, "results.html", detailPage{Question: question})
}

type questionResponse struct {
	ID                   uuid.UUID        `json:"id"`
	URL                  string           `json:"url"`
	Text                 string           `json:"question_text"`
	PubDate              time.Time        `json:"pub_date"`
	WasPublishedRecently bool             `json:"was_published_recently"`
	Choices              []choiceResponse `json:"choices,omitempty"`
}

type choiceResponse struct {
	ID    uuid.UUID `json:"id"`
	Text  string    `json:"choice_text"`
	Votes int64     `json:"votes"`
}

type createQuestionRequest struct {
	Text    string     `json:"question_text"`
	PubDate *time.Time `json:"pub_date"`
	Choices []string   `json:"choices"`
}

// ListQuestions serves the latest published questions as JSON.
func (h *PollHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.LatestPublished(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	now := h.service.Now()
	out := make([]questionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, h.questionResponse(r, q, now))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateQuestion is restricted to staff.
func (h *PollHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	if !actor.IsStaff {
		writeServiceError(w, r, domain.ErrForbidden)
		return
	}

	var req createQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.service.Create(r.Context(), ports.CreateQuestionInput{
		Text:    req.Text,
		PubDate: req.PubDate,
		Choices: req.Choices,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.questionResponse(r, question, h.service.Now()))
}

func (h *PollHandler) questionResponse(r *http.Request, q *domain.Question, now time.Time) questionResponse {
	resp := questionResponse{
		ID:                   q.ID,
		URL:                  h.links.URL(r, "/polls/"+q.ID.String()+"/"),
		Text:                 q.Text,
		PubDate:              q.PubDate,
		WasPublishedRecently: q.WasPublishedRecently(now),
	}
	for _, c := range q.Choices {
		resp.Choices = append(resp.Choices, choiceResponse{ID: c.ID, Text: c.Text, Votes: c.Votes})
	}
	return resp
}

// pageError answers HTML views: unknown or unpublished questions are 404.
func pageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrQuestionNotFound) || errors.Is(err, domain.ErrInvalidQuestionID) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	internalError(w, r, err)
}
