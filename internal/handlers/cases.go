package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"skin-diagnosis-api/internal/apperrors"
	"skin-diagnosis-api/internal/middleware"
	"skin-diagnosis-api/internal/services"
)

// maxUploadSize bounds the in-memory portion of multipart parsing (32 MB).
const maxUploadSize = 32 << 20

// CasesHandler serves the case creation workflow and case lookups
type CasesHandler struct {
	cases *services.CaseService
}

// NewCasesHandler creates a new cases handler
func NewCasesHandler(cases *services.CaseService) *CasesHandler {
	return &CasesHandler{cases: cases}
}

// CreateCase handles POST /cases/new_case (multipart form)
func (h *CasesHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		writeError(w, r, apperrors.New(apperrors.KindUnauthorized, "Invalid doctor credentials."))
		return
	}
	doctorID, err := uuid.Parse(claims.DoctorID)
	if err != nil {
		writeError(w, r, apperrors.New(apperrors.KindUnauthorized, "Invalid doctor credentials."))
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, r, apperrors.New(apperrors.KindValidation, "Invalid multipart form."))
		return
	}

	patientNumber, err := strconv.ParseInt(r.FormValue("patient_number"), 10, 64)
	if err != nil {
		writeError(w, r, apperrors.New(apperrors.KindValidation, "Invalid patient number."))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, apperrors.New(apperrors.KindValidation, "Image file is required."))
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, apperrors.Internal("Error reading uploaded file.", err))
		return
	}

	created, err := h.cases.Create(r.Context(), services.CreateCaseInput{
		PatientNumber: patientNumber,
		Notes:         r.Form["case_notes"],
		ImageBytes:    imageBytes,
		Filename:      header.Filename,
		DoctorID:      doctorID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"case":   created,
	})
}

// GetCase handles GET /cases/cases/{caseID}
func (h *CasesHandler) GetCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := uuid.Parse(chi.URLParam(r, "caseID"))
	if err != nil {
		writeError(w, r, apperrors.New(apperrors.KindNotFound, "Case not found"))
		return
	}

	c, err := h.cases.GetByID(r.Context(), caseID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// GetDoctorCases handles GET /cases/get_cases, scoped to the caller
func (h *CasesHandler) GetDoctorCases(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		writeError(w, r, apperrors.New(apperrors.KindUnauthorized, "Invalid doctor credentials."))
		return
	}
	doctorID, err := uuid.Parse(claims.DoctorID)
	if err != nil {
		writeError(w, r, apperrors.New(apperrors.KindUnauthorized, "Invalid doctor credentials."))
		return
	}

	cases, err := h.cases.GetByDoctor(r.Context(), doctorID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"cases": cases})
}

// GetPatientCases handles GET /cases/cases/patient/{patientID}
func (h *CasesHandler) GetPatientCases(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(chi.URLParam(r, "patientID"))
	if err != nil {
		// An unknown patient id has no cases; collection reads return an
		// empty list rather than an error.
		writeJSON(w, http.StatusOK, map[string]interface{}{"cases": []struct{}{}})
		return
	}

	cases, err := h.cases.GetByPatient(r.Context(), patientID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"cases": cases})
}

// GetImage handles GET /cases/images/{imageID}, returning the raw bytes
func (h *CasesHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := uuid.Parse(chi.URLParam(r, "imageID"))
	if err != nil {
		writeError(w, r, apperrors.New(apperrors.KindNotFound, "Image not found."))
		return
	}

	image, err := h.cases.GetImage(r.Context(), imageID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(image.Data))
	w.WriteHeader(http.StatusOK)
	w.Write(image.Data)
}
