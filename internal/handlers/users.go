package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skin-diagnosis-api/internal/apperrors"
	"skin-diagnosis-api/internal/models"
	"skin-diagnosis-api/internal/services"
)

// UsersHandler serves doctor and patient registration and lookups
type UsersHandler struct {
	doctors  *services.DoctorService
	patients *services.PatientService
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(doctors *services.DoctorService, patients *services.PatientService) *UsersHandler {
	return &UsersHandler{doctors: doctors, patients: patients}
}

// RegisterDoctor handles POST /users/register-doctor
func (h *UsersHandler) RegisterDoctor(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.New(apperrors.KindValidation, "Invalid request body."))
		return
	}

	doctor, err := h.doctors.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, doctor)
}

// Login handles POST /users/login
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.New(apperrors.KindValidation, "Invalid request body."))
		return
	}

	token, err := h.doctors.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, token)
}

// RegisterPatient handles POST /users/register-patient
func (h *UsersHandler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.New(apperrors.KindValidation, "Invalid request body."))
		return
	}

	patient, err := h.patients.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, patient)
}

// GetDoctors handles GET /users/doctors
func (h *UsersHandler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctors.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"doctors": doctors})
}

// GetPatient handles GET /users/patients/{patientNumber}
func (h *UsersHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientNumber, err := strconv.ParseInt(chi.URLParam(r, "patientNumber"), 10, 64)
	if err != nil {
		writeError(w, r, apperrors.New(apperrors.KindValidation, "Invalid patient number."))
		return
	}

	patient, err := h.patients.GetByNumber(r.Context(), patientNumber)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"patient": patient,
	})
}
