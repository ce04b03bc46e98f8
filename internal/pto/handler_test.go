package pto_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/pto-portal/internal"
	"github.com/frahmantamala/pto-portal/internal/pto"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockHandlerService struct {
	submitted []pto.SubmitRequestDTO
	requests  []pto.Request
	submitErr error
}

func (m *mockHandlerService) Submit(_ context.Context, employeeID int64, dto pto.SubmitRequestDTO) (*pto.Request, error) {
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	m.submitted = append(m.submitted, dto)
	start, end, err := dto.Validate()
	if err != nil {
		return nil, err
	}
	return &pto.Request{
		ID:         int64(len(m.submitted)),
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		Reason:     dto.Reason,
		Status:     pto.StatusPending,
		CreatedAt:  time.Now(),
	}, nil
}

func (m *mockHandlerService) ListFor(employeeID int64) ([]pto.Request, error) {
	var result []pto.Request
	for _, req := range m.requests {
		if req.EmployeeID == employeeID {
			result = append(result, req)
		}
	}
	return result, nil
}

var _ = Describe("PTO Handler", func() {
	var (
		service *mockHandlerService
		handler *pto.Handler
	)

	sessionCtx := func(r *http.Request) *http.Request {
		ctx := internal.ContextWithSession(r.Context(), &internal.SessionInfo{
			SessionID:    "test-session",
			EmployeeID:   1002,
			EmployeeName: "Bob Smith",
		})
		return r.WithContext(ctx)
	}

	formRequest := func(values url.Values) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/pto", strings.NewReader(values.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return sessionCtx(r)
	}

	BeforeEach(func() {
		service = &mockHandlerService{}
		handler = pto.NewHandler(service)
	})

	Describe("SubmitRequest", func() {
		It("should accept a valid form post", func() {
			w := httptest.NewRecorder()
			handler.SubmitRequest(w, formRequest(url.Values{
				"start_date": {"2026-09-14"},
				"end_date":   {"2026-09-18"},
				"reason":     {"family trip"},
			}))

			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp struct {
				Message string          `json:"message"`
				Request pto.RequestView `json:"request"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Message).To(Equal("PTO request submitted."))
			Expect(resp.Request.StartDate).To(Equal("2026-09-14"))
			Expect(resp.Request.Status).To(Equal(pto.StatusPending))
		})

		It("should render the validation message for a bad range", func() {
			service.submitErr = internal.ErrInvalidRange

			w := httptest.NewRecorder()
			handler.SubmitRequest(w, formRequest(url.Values{
				"start_date": {"2026-09-18"},
				"end_date":   {"2026-09-14"},
			}))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("End date must not be before start date."))
		})

		It("should redirect to sign-in without a session", func() {
			r := httptest.NewRequest(http.MethodPost, "/pto", nil)
			w := httptest.NewRecorder()
			handler.SubmitRequest(w, r)

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("/"))
		})
	})

	Describe("ListRequests", func() {
		It("should return the caller's history with rendered dates", func() {
			service.requests = []pto.Request{
				{
					ID:         7,
					EmployeeID: 1002,
					StartDate:  time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
					EndDate:    time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
					Status:     pto.StatusApproved,
					CreatedAt:  time.Date(2026, time.February, 1, 9, 30, 0, 0, time.UTC),
				},
				{ID: 8, EmployeeID: 1003, Status: pto.StatusPending},
			}

			r := sessionCtx(httptest.NewRequest(http.MethodGet, "/requests", nil))
			w := httptest.NewRecorder()
			handler.ListRequests(w, r)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp struct {
				EmployeeName string            `json:"employee_name"`
				Requests     []pto.RequestView `json:"requests"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.EmployeeName).To(Equal("Bob Smith"))
			Expect(resp.Requests).To(HaveLen(1))
			Expect(resp.Requests[0].StartDate).To(Equal("2026-03-10"))
			Expect(resp.Requests[0].CreatedAt).To(Equal("2026-02-01 09:30:00"))
		})

		It("should return an empty list rather than null", func() {
			r := sessionCtx(httptest.NewRequest(http.MethodGet, "/requests", nil))
			w := httptest.NewRecorder()
			handler.ListRequests(w, r)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"requests":[]`))
		})
	})

	Describe("RequestForm", func() {
		It("should expose the signed-in employee", func() {
			r := sessionCtx(httptest.NewRequest(http.MethodGet, "/pto", nil))
			w := httptest.NewRecorder()
			handler.RequestForm(w, r)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Bob Smith"))
		})
	})
})
