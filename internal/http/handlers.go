package http

import (
	"errors"
	"net/http"

	"argentvault/internal/core"
	applog "argentvault/internal/log"
	"argentvault/internal/services"
)

// handleCalculate runs the engine without saving.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	in, err := ParseBudgetInput(r)
	if err != nil {
		s.badInput(w, r, err)
		return
	}
	OK(w, s.budgets.Calculate(r.Context(), in.Income, in.Expenses))
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	OK(w, s.budgets.List(r.Context()))
}

func (s *Server) handleSaveBudget(w http.ResponseWriter, r *http.Request) {
	in, err := ParseBudgetInput(r)
	if err != nil {
		s.badInput(w, r, err)
		return
	}
	saved, err := s.budgets.SaveInput(r.Context(), in.Income, in.Expenses)
	if err != nil {
		s.serverError(w, r, applog.OpPersist, "Failed to save budget", err)
		return
	}
	Created(w, saved)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	id, err := ParseBudgetID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	snap, err := s.budgets.Get(r.Context(), id)
	if services.IsNotFound(err) {
		NotFoundError("Budget not found").Write(w)
		return
	}
	if err != nil {
		s.serverError(w, r, applog.OpRead, "Failed to load budget", err)
		return
	}
	OK(w, snap)
}

func (s *Server) handleBudgetTips(w http.ResponseWriter, r *http.Request) {
	id, err := ParseBudgetID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	tips, err := s.budgets.Tips(r.Context(), id)
	if services.IsNotFound(err) {
		NotFoundError("Budget not found").Write(w)
		return
	}
	if err != nil {
		s.serverError(w, r, applog.OpRead, "Failed to load budget", err)
		return
	}
	OK(w, tips)
}

// handleDeleteBudget answers 204 whether or not the id existed.
func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := ParseBudgetID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if err := s.budgets.Delete(r.Context(), id); err != nil && !services.IsNotFound(err) {
		s.serverError(w, r, applog.OpDelete, "Failed to delete budget", err)
		return
	}
	NoContent(w)
}

func (s *Server) handleVisit(w http.ResponseWriter, r *http.Request) {
	OK(w, s.visits.Record(r.Context(), visitorID(w, r)))
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	req, err := ParseSubscriptionRequest(r)
	if err != nil {
		s.badInput(w, r, err)
		return
	}
	sub, err := s.newsletter.Subscribe(r.Context(), req)
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		UnprocessableEntityError("Invalid subscription", verr.Messages...).Write(w)
		return
	}
	if err != nil {
		s.serverError(w, r, applog.OpCreate, "Failed to subscribe", err)
		return
	}
	Created(w, sub)
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	content, err := s.content.Content(r.Context())
	if err != nil {
		ServiceUnavailableError(core.ContentLoadFailed).Write(w)
		return
	}
	OK(w, content)
}

func (s *Server) handlePlaces(w http.ResponseWriter, r *http.Request) {
	places, err := s.content.Places(r.Context())
	if err != nil {
		ServiceUnavailableError(core.ContentLoadFailed).Write(w)
		return
	}
	OK(w, places)
}

func (s *Server) handleExpenseNames(w http.ResponseWriter, r *http.Request) {
	OK(w, core.DefaultExpenseNames(parseCount(r)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	OK(w, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			applog.FromContext(r.Context()).WithComponent(applog.ComponentHTTP).Warn("Readiness check failed",
				applog.FieldError, err)
			ServiceUnavailableError("not ready").Write(w)
			return
		}
	}
	OK(w, map[string]string{"status": "ready"})
}

func (s *Server) badInput(w http.ResponseWriter, r *http.Request, err error) {
	applog.FromContext(r.Context()).WithComponent(applog.ComponentHTTP).Info("Rejected request body",
		applog.FieldError, err, applog.FieldErrorType, applog.ErrorTypeValidation, applog.FieldOperation, applog.OpParse)
	BadRequestError(err.Error()).Write(w)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, op, msg string, err error) {
	logger := applog.FromContext(r.Context()).WithComponent(applog.ComponentHTTP)
	applog.NewStructuredLogger(logger).LogError(r.Context(), msg, err, applog.ErrorTypeInternal, op, nil)
	InternalServerError(msg).Write(w)
}
