package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/mathdrills/internal/activity"
	"github.com/abhisek/mathdrills/internal/logging"
	"github.com/abhisek/mathdrills/internal/present"
	"github.com/abhisek/mathdrills/internal/problemgen"
	"github.com/abhisek/mathdrills/internal/session"
)

type topicGroup struct {
	Name       string
	Activities []activity.Activity
}

type homePage struct {
	Topics []topicGroup
}

type activityPage struct {
	View     present.View
	Accuracy string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	byTopic := s.catalog.ByTopic()
	var page homePage
	for _, t := range s.catalog.Topics() {
		page.Topics = append(page.Topics, topicGroup{Name: t.DisplayName(), Activities: byTopic[t]})
	}
	s.render(w, r, http.StatusOK, "home.html", page)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			logging.FromContext(r.Context()).Warn("health check failed", "error", err)
			http.Error(w, "Unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// drill is the state shared by the activity handlers: the engine, the
// learner's storage scope and the opened session.
type drill struct {
	eng *session.Engine
	kv  session.KV
	s   *session.Session
}

// open resolves the activity in the URL and opens the learner's session,
// starting a new one when nothing is stored. It writes the error response
// itself and returns nil on failure.
func (s *Server) open(w http.ResponseWriter, r *http.Request) *drill {
	return s.openSession(w, r, true)
}

// openStored is open for requests that act on the question on screen. When
// the stored session is gone (expired, or lost with a restart) it redirects
// to the activity page instead of starting a new one, and returns nil.
func (s *Server) openStored(w http.ResponseWriter, r *http.Request) *drill {
	return s.openSession(w, r, false)
}

func (s *Server) openSession(w http.ResponseWriter, r *http.Request, create bool) *drill {
	id := chi.URLParam(r, "id")
	eng, ok := s.engines[id]
	if !ok {
		s.renderError(w, r, http.StatusNotFound, fmt.Sprintf("There is no activity called %q.", id))
		return nil
	}
	kv := s.backend.Scope(learnerFromContext(r.Context()))
	var sess *session.Session
	var err error
	if create {
		sess, err = eng.Open(r.Context(), kv)
	} else {
		sess, err = session.Load(r.Context(), kv, eng)
	}
	if errors.Is(err, session.ErrNoSession) {
		logging.FromContext(r.Context()).Info("no stored session, showing a new question", "activity", id)
		http.Redirect(w, r, "/a/"+id, http.StatusSeeOther)
		return nil
	}
	if err != nil {
		s.serverError(w, r, "open session", err)
		return nil
	}
	return &drill{eng: eng, kv: kv, s: sess}
}

func (s *Server) save(ctx context.Context, d *drill) error {
	if err := session.Save(ctx, d.kv, d.s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	d := s.open(w, r)
	if d == nil {
		return
	}
	// A freshly generated question must be stored so a reload shows it again.
	if err := s.save(r.Context(), d); err != nil {
		s.serverError(w, r, "show activity", err)
		return
	}
	s.render(w, r, http.StatusOK, "activity.html", s.page(d, ""))
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	d := s.openStored(w, r)
	if d == nil {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "The answer form could not be read.")
		return
	}

	answer := present.AnswerFromForm(d.s.Active, r.PostForm.Get)
	res, err := d.eng.Submit(d.s, answer)
	switch {
	case errors.Is(err, problemgen.ErrEmptyAnswer):
		s.render(w, r, http.StatusUnprocessableEntity, "activity.html", s.page(d, "Please enter an answer before checking."))
		return
	case errors.Is(err, session.ErrAlreadySubmitted):
		// A resubmitted form lands on the feedback already shown.
		s.redirect(w, r, d)
		return
	case err != nil:
		s.serverError(w, r, "grade answer", err)
		return
	}

	logging.FromContext(r.Context()).Info("answer graded",
		"activity", d.eng.Activity().ID,
		"correct", res.Correct,
		"tier", d.s.Tier(),
	)
	if err := s.save(r.Context(), d); err != nil {
		s.serverError(w, r, "grade answer", err)
		return
	}
	s.redirect(w, r, d)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	d := s.openStored(w, r)
	if d == nil {
		return
	}
	// Next without feedback would skip an unanswered question.
	if d.s.ShowFeedback {
		if err := d.eng.Next(d.s); err != nil {
			s.serverError(w, r, "next question", err)
			return
		}
		if err := s.save(r.Context(), d); err != nil {
			s.serverError(w, r, "next question", err)
			return
		}
	}
	s.redirect(w, r, d)
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	d := s.openStored(w, r)
	if d == nil {
		return
	}
	if s.tutor.Annotate(r.Context(), d.eng.Activity().Name, d.s) {
		if err := s.save(r.Context(), d); err != nil {
			s.serverError(w, r, "explain", err)
			return
		}
	}
	s.redirect(w, r, d)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.engines[id]; !ok {
		s.renderError(w, r, http.StatusNotFound, fmt.Sprintf("There is no activity called %q.", id))
		return
	}
	kv := s.backend.Scope(learnerFromContext(r.Context()))
	if err := session.Forget(r.Context(), kv, id); err != nil {
		s.serverError(w, r, "restart", err)
		return
	}
	http.Redirect(w, r, "/a/"+id, http.StatusSeeOther)
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, d *drill) {
	http.Redirect(w, r, "/a/"+d.eng.Activity().ID, http.StatusSeeOther)
}

func (s *Server) page(d *drill, warning string) activityPage {
	v := present.Render(d.eng.Activity(), d.s)
	if warning != "" {
		v = v.WithWarning(warning)
	}
	p := activityPage{View: v}
	if d.s.TotalAttempted > 0 {
		p.Accuracy = fmt.Sprintf("%.0f%%", d.s.Accuracy()*100)
	}
	return p
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logging.FromContext(r.Context()).Error(op+" failed", "error", err)
	s.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
