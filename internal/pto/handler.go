package pto

import (
	"context"
	"net/http"

	"github.com/frahmantamala/pto-portal/internal"
	"github.com/frahmantamala/pto-portal/internal/transport"
	"github.com/frahmantamala/pto-portal/pkg/logger"
)

type ServiceAPI interface {
	Submit(ctx context.Context, employeeID int64, dto SubmitRequestDTO) (*Request, error)
	ListFor(employeeID int64) ([]Request, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

// RequestView is the rendered shape of a request, with calendar dates in
// their stable string form.
type RequestView struct {
	ID        int64  `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func viewOf(req Request) RequestView {
	return RequestView{
		ID:        req.ID,
		StartDate: req.StartDate.Format(DateLayout),
		EndDate:   req.EndDate.Format(DateLayout),
		Reason:    req.Reason,
		Status:    req.Status,
		CreatedAt: req.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// RequestForm returns the context the PTO form needs: who is signed in.
func (h *Handler) RequestForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"employee_id":   sess.EmployeeID,
		"employee_name": sess.EmployeeName,
	})
}

// SubmitRequest handles the PTO form post for the signed-in employee.
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.Logger.Error("SubmitRequest: malformed form data", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	dto := SubmitRequestDTO{
		StartDate: r.PostFormValue("start_date"),
		EndDate:   r.PostFormValue("end_date"),
		Reason:    r.PostFormValue("reason"),
	}

	req, err := h.Service.Submit(r.Context(), sess.EmployeeID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "PTO request submitted.",
		"request": viewOf(*req),
	})
}

// ListRequests returns the caller's own request history, most recent first.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	requests, err := h.Service.ListFor(sess.EmployeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	views := make([]RequestView, 0, len(requests))
	for _, req := range requests {
		views = append(views, viewOf(req))
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"employee_id":   sess.EmployeeID,
		"employee_name": sess.EmployeeName,
		"requests":      views,
	})
}
