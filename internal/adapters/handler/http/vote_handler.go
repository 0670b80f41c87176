package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

const noChoiceMessage = "You didn't select a choice."

type VoteHandler struct {
	service  ports.VoteService
	renderer *Renderer
}

func NewVoteHandler(service ports.VoteService, renderer *Renderer) *VoteHandler {
	return &VoteHandler{
		service:  service,
		renderer: renderer,
	}
}

// Vote records a vote from the detail form and redirects to the results.
// An invalid choice redisplays the form without changing any count.
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	question, err := h.service.Vote(r.Context(), ports.VoteInput{
		QuestionID: questionID,
		ChoiceID:   r.PostFormValue("choice"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidChoice) {
			h.renderer.HTML(w, http.StatusOK, "detail.html", detailPage{
				Question:     question,
				ErrorMessage: noChoiceMessage,
			})
			return
		}
		pageError(w, r, err)
		return
	}

	log.WithField("question_id", question.ID).Info("vote recorded")
	http.Redirect(w, r, "/polls/"+question.ID.String()+"/results/", http.StatusFound)
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
