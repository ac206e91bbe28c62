package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/pdstore/internal/server/auth"
	"github.com/dmitrijs2005/pdstore/internal/server/metrics"
	"github.com/dmitrijs2005/pdstore/internal/server/models"
	"github.com/xeipuuv/gojsonschema"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type surveyRequest struct {
	Name                       *string `json:"name"`
	Location                   *string `json:"location"`
	AgeRange                   *string `json:"age_range"`
	InteractionPreference      *string `json:"interaction_preference"`
	OtherInteractionPreference *string `json:"other_interaction_preference"`
	Challenges                 []int64 `json:"challenges"`
}

type profileResponse struct {
	Message                    string             `json:"message,omitempty"`
	Name                       *string            `json:"name"`
	Location                   *string            `json:"location"`
	AgeRange                   *string            `json:"age_range"`
	InteractionPreference      *string            `json:"interaction_preference"`
	OtherInteractionPreference *string            `json:"other_interaction_preference"`
	Challenges                 []models.Challenge `json:"challenges"`
}

func newProfileResponse(v *models.ProfileView, message string) profileResponse {
	list := v.Challenges
	if list == nil {
		list = []models.Challenge{}
	}
	return profileResponse{
		Message:                    message,
		Name:                       v.Fields.Name,
		Location:                   v.Fields.Location,
		AgeRange:                   v.Fields.AgeRange,
		InteractionPreference:      v.Fields.InteractionPreference,
		OtherInteractionPreference: v.Fields.OtherInteractionPreference,
		Challenges:                 list,
	}
}

func (h *Handler) handleWelcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, WelcomeMessage)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.decode(w, r, credentialsLoader, &req) {
		h.metrics.AuthAttempt("signup", metrics.OutcomeRejected)
		return
	}

	token, err := h.users.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.AuthAttempt("signup", outcome(err))
		h.writeError(w, r, err)
		return
	}

	h.metrics.AuthAttempt("signup", metrics.OutcomeSuccess)
	h.writeJSON(w, r, http.StatusCreated, tokenResponse{Token: token})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.decode(w, r, credentialsLoader, &req) {
		h.metrics.AuthAttempt("login", metrics.OutcomeRejected)
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.AuthAttempt("login", outcome(err))
		h.writeError(w, r, err)
		return
	}

	h.metrics.AuthAttempt("login", metrics.OutcomeSuccess)
	h.writeJSON(w, r, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	view, err := h.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newProfileResponse(view, ""))
}

func (h *Handler) handleSubmitSurvey(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req surveyRequest
	if !h.decode(w, r, surveyLoader, &req) {
		h.metrics.SurveySubmission(metrics.OutcomeRejected)
		return
	}

	fields := models.ProfileFields{
		Name:                       req.Name,
		Location:                   req.Location,
		AgeRange:                   req.AgeRange,
		InteractionPreference:      req.InteractionPreference,
		OtherInteractionPreference: req.OtherInteractionPreference,
	}

	view, err := h.profiles.SubmitSurvey(r.Context(), userID, fields, req.Challenges)
	if err != nil {
		h.metrics.SurveySubmission(outcome(err))
		h.writeError(w, r, err)
		return
	}

	h.metrics.SurveySubmission(metrics.OutcomeSuccess)
	h.writeJSON(w, r, http.StatusOK, newProfileResponse(view, "Survey updated"))
}

func (h *Handler) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	list, err := h.profiles.ListChallenges(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []models.Challenge{}
	}
	h.writeJSON(w, r, http.StatusOK, list)
}

// decode reads the body, validates it against schema and unmarshals it
// into dst. On failure it writes the error answer and returns false.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, schema gojsonschema.JSONLoader, dst any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeJSON(w, r, http.StatusRequestEntityTooLarge, errorResponse{
				Message: fmt.Sprintf("request body larger than %d bytes", tooLarge.Limit),
			})
			return false
		}
		h.writeJSON(w, r, http.StatusBadRequest, errorResponse{Message: "cannot read request body"})
		return false
	}

	if err := validateJSONSchema(schema, body); err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, errorResponse{Message: err.Error()})
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, errorResponse{Message: fmt.Sprintf("malformed JSON body: %v", err)})
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	switch {
	case abandoned(err):
		h.logger.Debug(r.Context(), "request abandoned", "status", status, "error", err)
	case status >= http.StatusInternalServerError:
		h.logger.Error(r.Context(), "request failed", "status", status, "error", err)
	}
	h.writeJSON(w, r, status, errorResponse{Message: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn(r.Context(), "write response", "error", err)
	}
}

// outcome classifies a service error for the counters.
func outcome(err error) string {
	status, _ := statusFor(err)
	if status >= http.StatusInternalServerError {
		return metrics.OutcomeError
	}
	return metrics.OutcomeRejected
}

