package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/myhealth/internal/client/backend"
	"github.com/dmitrijs2005/myhealth/internal/client/editsession"
	"github.com/dmitrijs2005/myhealth/internal/client/forms"
	"github.com/dmitrijs2005/myhealth/internal/client/kinds"
	"github.com/dmitrijs2005/myhealth/internal/client/models"
	"github.com/dmitrijs2005/myhealth/internal/client/services"
	"github.com/dmitrijs2005/myhealth/internal/common"
)

// editPage describes one page driving an edit session.
type editPage[T any] struct {
	kind      *editsession.Kind[T]
	key       string
	title     string
	backURL   string
	backLabel string
	// saved returns the message shown once the record is stored.
	saved func(T) string
}

// serveEdit renders the session of p on GET and submits the posted form on
// POST. Re-rendering never fetches the record again. Only GET starts a
// session: a post with no session opened by this browser is redirected to the
// form, and a post to an already saved session is not submitted again.
func serveEdit[T any](s *Server, w http.ResponseWriter, r *http.Request, p editPage[T]) {
	ctx := r.Context()
	ws := workspaceFrom(ctx)

	if r.Method != http.MethodPost {
		sess := editsession.Open(ws, p.kind, p.key)
		_ = sess.Load(ctx)
		renderEdit(s, w, r, p, sess, http.StatusOK, "")
		return
	}

	sess, ok := editsession.Lookup(ws, p.kind, p.key)
	if !ok {
		http.Redirect(w, r, r.URL.RequestURI(), http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if sess.Status() == editsession.StatusSucceeded {
		renderEdit(s, w, r, p, sess, http.StatusConflict, "This form was already saved. Open the page again to make another change.")
		return
	}

	status := http.StatusOK
	if err := sess.Submit(ctx, formValues(r.PostForm)); errors.Is(err, editsession.ErrSubmitInProgress) {
		status = http.StatusConflict
	}
	renderEdit(s, w, r, p, sess, status, "")
}

func renderEdit[T any](s *Server, w http.ResponseWriter, r *http.Request, p editPage[T], sess *editsession.Session[T], status int, info string) {
	out := page{Title: p.title}

	v := sess.View()
	if v.Notice != "" {
		out.Info = v.Notice
	}
	describe(&out, v.Err)

	switch {
	case v.InputErr != nil:
		status = http.StatusUnprocessableEntity
		if out.Error == "" {
			out.Error = "Please correct the highlighted fields."
		}
	case v.Status == editsession.StatusSubmitting:
		out.Info = "A save of this record is already in progress."
	case v.Status == editsession.StatusFailed && v.FailedFrom == editsession.StatusLoading:
		out.Info = "Reload the page to retry."
		if errors.Is(v.Err, common.ErrEmptyKey) || errors.Is(v.Err, common.ErrInvalidKey) {
			status = http.StatusBadRequest
		}
	}

	body := editBody{
		Action:    r.URL.RequestURI(),
		View:      v,
		BackURL:   p.backURL,
		BackLabel: p.backLabel,
	}
	if saved, ok := sess.Saved(); ok {
		body.Saved = p.saved(saved)
	}
	if info != "" {
		out.Info = info
	}
	out.Body = body

	s.render(w, r, status, "edit", out)
}

func formValues(form url.Values) forms.Values {
	out := make(forms.Values, len(form))
	for name := range form {
		out[name] = form.Get(name)
	}
	return out
}

// describe routes err to the page: unreachable backend as a dismissible
// notice, anything else inline.
func describe(p *page, err error) {
	switch {
	case err == nil:
	case backend.KindOf(err) == backend.KindTransport:
		p.Notice = err.Error()
	default:
		p.Error = err.Error()
	}
}

// failureStatus picks the response status of a failed list or delete.
func failureStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrEmptyKey), errors.Is(err, common.ErrInvalidKey):
		return http.StatusBadRequest
	case backend.KindOf(err) == backend.KindTransport:
		return http.StatusBadGateway
	}
	return http.StatusOK
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	if err := s.pages.render(w, status, name, p); err != nil {
		s.logger.Error(r.Context(), "failed to render page", "page", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home", page{Title: "myhealth"})
}

func (s *Server) handleFoodList(w http.ResponseWriter, r *http.Request) {
	s.renderFoodList(w, r, nil)
}

// renderFoodList always fetches a fresh list. failure is an earlier error of
// the request, e.g. a rejected delete.
func (s *Server) renderFoodList(w http.ResponseWriter, r *http.Request, failure error) {
	filter := r.URL.Query().Get("q")
	out := page{Title: "Food"}
	status := http.StatusOK

	items, err := s.foods.List(r.Context(), filter)
	if err != nil {
		failure = errors.Join(failure, err)
	}
	if failure != nil {
		describe(&out, failure)
		status = failureStatus(failure)
	}

	out.Body = foodListBody{Filter: filter, Items: items}
	s.render(w, r, status, "food_list", out)
}

func (s *Server) handleFoodCreate(w http.ResponseWriter, r *http.Request) {
	serveEdit(s, w, r, editPage[models.Food]{
		kind:      s.food,
		key:       common.CreateKey,
		title:     "New food",
		backURL:   "/food",
		backLabel: "Back to food list",
		saved: func(f models.Food) string {
			return fmt.Sprintf("Created food %s.", f.Name)
		},
	})
}

func (s *Server) handleFoodEdit(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	serveEdit(s, w, r, editPage[models.Food]{
		kind:      s.food,
		key:       key,
		title:     "Edit food",
		backURL:   "/food",
		backLabel: "Back to food list",
		saved:     func(models.Food) string { return "Saved." },
	})
}

func (s *Server) handleFoodDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := r.URL.Query().Get("key")

	if err := s.foods.Delete(ctx, key); err != nil {
		s.renderFoodList(w, r, err)
		return
	}
	if err := workspaceFrom(ctx).Discard(ctx, kinds.FoodName, key); err != nil {
		s.logger.Warn(ctx, "discard edit session failed", "error", err)
	}
	http.Redirect(w, r, "/food", http.StatusSeeOther)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	serveEdit(s, w, r, editPage[models.UserSettings]{
		kind:      s.settings,
		key:       common.UserSettingsKey,
		title:     "User settings",
		backURL:   "/",
		backLabel: "Back to start",
		saved:     func(models.UserSettings) string { return "Settings saved." },
	})
}

func (s *Server) handleWeightList(w http.ResponseWriter, r *http.Request) {
	s.renderWeightList(w, r, nil)
}

func (s *Server) renderWeightList(w http.ResponseWriter, r *http.Request, failure error) {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days <= 0 {
		days = services.DefaultWeightDays
	}
	out := page{Title: "Weight"}
	status := http.StatusOK

	items, err := s.weights.List(r.Context(), days)
	if err != nil {
		failure = errors.Join(failure, err)
	}
	if failure != nil {
		describe(&out, failure)
		status = failureStatus(failure)
	}

	out.Body = weightListBody{Days: days, Items: items}
	s.render(w, r, status, "weight_list", out)
}

func (s *Server) handleWeightCreate(w http.ResponseWriter, r *http.Request) {
	serveEdit(s, w, r, editPage[models.Weight]{
		kind:      s.weight,
		key:       common.CreateKey,
		title:     "Record weight",
		backURL:   "/weight",
		backLabel: "Back to weight journal",
		saved: func(v models.Weight) string {
			return fmt.Sprintf("Recorded weight for %s.", v.Day())
		},
	})
}

func (s *Server) handleWeightEdit(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	title := "Edit weight entry"
	if ts, err := kinds.ParseWeightKey(key); err == nil {
		title = "Edit weight for " + models.Weight{Timestamp: ts}.Day()
	}
	serveEdit(s, w, r, editPage[models.Weight]{
		kind:      s.weight,
		key:       key,
		title:     title,
		backURL:   "/weight",
		backLabel: "Back to weight journal",
		saved:     func(models.Weight) string { return "Saved." },
	})
}

func (s *Server) handleWeightDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := r.URL.Query().Get("key")

	ts, err := kinds.ParseWeightKey(key)
	if err == nil {
		err = s.weights.Delete(ctx, ts)
	}
	if err != nil {
		s.renderWeightList(w, r, err)
		return
	}
	if err := workspaceFrom(ctx).Discard(ctx, kinds.WeightName, key); err != nil {
		s.logger.Warn(ctx, "discard edit session failed", "error", err)
	}
	http.Redirect(w, r, "/weight", http.StatusSeeOther)
}
