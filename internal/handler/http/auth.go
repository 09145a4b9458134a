package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/utils"
	"github.com/MKhiriev/go-identity/models"
)

func (h *Handler) signupStepOne(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.SignupStepOneRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	createdUser, err := h.services.AuthService.SignupStepOne(ctx, request)
	if err != nil {
		respondError(w, log, err, "signup step one failed")
		return
	}

	log.Debug().Str("user_id", createdUser.UserID).Msg("signup step one completed")

	utils.WriteJSON(w, models.SignupStepOneResponse{UserID: createdUser.UserID}, http.StatusCreated)
}

func (h *Handler) signupStepTwo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID := chi.URLParam(r, "userID")

	var request models.SignupStepTwoRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updatedUser, token, record, err := h.services.AuthService.SignupStepTwo(ctx, userID, request)
	if err != nil {
		respondError(w, log, err, "signup step two failed")
		return
	}

	log.Debug().Str("user_id", updatedUser.UserID).Msg("signup step two completed")

	utils.WriteJSON(w, models.SignupStepTwoResponse{
		Token:   token.String(),
		Profile: updatedUser,
		OTPID:   record.ID,
	}, http.StatusOK)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, token, err := h.services.AuthService.SignIn(ctx, request)
	if err != nil {
		respondError(w, log, err, "signin failed")
		return
	}

	log.Debug().Str("user_id", foundUser.UserID).Msg("user successfully signed in")

	utils.WriteJSON(w, models.SignInResponse{
		Token:   token.String(),
		Profile: foundUser,
	}, http.StatusOK)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	verifiedUser, err := h.services.AuthService.VerifyEmail(ctx, request)
	if err != nil {
		respondError(w, log, err, "email verification failed")
		return
	}

	log.Debug().Str("user_id", verifiedUser.UserID).Msg("email verified")

	utils.WriteJSON(w, verifiedUser, http.StatusOK)
}

func (h *Handler) resendCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.ResendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	record, err := h.services.AuthService.ResendCode(ctx, request)
	if err != nil {
		respondError(w, log, err, "code resend failed")
		return
	}

	utils.WriteJSON(w, models.OTPIssuedResponse{OTPID: record.ID}, http.StatusOK)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	record, err := h.services.AuthService.ForgotPassword(ctx, request)
	if err != nil {
		respondError(w, log, err, "password reset request failed")
		return
	}

	utils.WriteJSON(w, models.ForgotPasswordResponse{OTPID: record.ID}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ResetPassword(ctx, request); err != nil {
		respondError(w, log, err, "password reset failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	subjectID, ok := utils.GetSubjectIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "Handler.profile").Msg("authenticated subject missing from context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	foundUser, err := h.services.AuthService.Profile(ctx, subjectID)
	if err != nil {
		respondError(w, log, err, "profile lookup failed")
		return
	}

	utils.WriteJSON(w, foundUser, http.StatusOK)
}

func (h *Handler) requestEmailVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	subjectID, ok := utils.GetSubjectIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "Handler.requestEmailVerification").Msg("authenticated subject missing from context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	record, err := h.services.AuthService.RequestEmailVerification(ctx, subjectID)
	if err != nil {
		respondError(w, log, err, "verification code request failed")
		return
	}

	utils.WriteJSON(w, models.OTPIssuedResponse{OTPID: record.ID}, http.StatusOK)
}
