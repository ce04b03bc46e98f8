package schedule_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/pto-portal/internal"
	"github.com/frahmantamala/pto-portal/internal/schedule"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockExporter struct {
	csv  *schedule.Export
	json *schedule.Export
}

func (m *mockExporter) ExportCSV() (*schedule.Export, error)  { return m.csv, nil }
func (m *mockExporter) ExportJSON() (*schedule.Export, error) { return m.json, nil }

var _ = Describe("Schedule Handler", func() {
	var handler *schedule.Handler

	sessionRequest := func(target string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, target, nil)
		ctx := internal.ContextWithSession(r.Context(), &internal.SessionInfo{
			SessionID:  "test-session",
			EmployeeID: 1002,
		})
		return r.WithContext(ctx)
	}

	BeforeEach(func() {
		handler = schedule.NewHandler(&mockExporter{
			csv: &schedule.Export{
				Filename:    "pto_schedule.csv",
				ContentType: "text/csv",
				Data:        []byte("Employee ID,Employee Name,Start Date,End Date,Reason,Status\n"),
			},
			json: &schedule.Export{
				Filename:    "pto_schedule.json",
				ContentType: "application/json",
				Data:        []byte("{}"),
			},
		})
	})

	Describe("Export", func() {
		It("should default to a CSV attachment", func() {
			w := httptest.NewRecorder()
			handler.Export(w, sessionRequest("/schedule"))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("text/csv"))
			Expect(w.Header().Get("Content-Disposition")).To(Equal("attachment; filename=pto_schedule.csv"))
		})

		It("should serve JSON when requested", func() {
			w := httptest.NewRecorder()
			handler.Export(w, sessionRequest("/schedule?format=json"))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))
			Expect(w.Header().Get("Content-Disposition")).To(Equal("attachment; filename=pto_schedule.json"))
		})

		It("should reject an unsupported format", func() {
			w := httptest.NewRecorder()
			handler.Export(w, sessionRequest("/schedule?format=xml"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should redirect to sign-in without a session", func() {
			w := httptest.NewRecorder()
			handler.Export(w, httptest.NewRequest(http.MethodGet, "/schedule", nil))

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("/"))
		})
	})
})
