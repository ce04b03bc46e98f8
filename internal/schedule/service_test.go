package schedule_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/frahmantamala/pto-portal/internal/employee"
	"github.com/frahmantamala/pto-portal/internal/pto"
	"github.com/frahmantamala/pto-portal/internal/schedule"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func splitCSV(data []byte) []string {
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

type mockDirectory struct {
	employees []employee.Employee
	failError error
}

func (m *mockDirectory) ListAll() ([]employee.Employee, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	return m.employees, nil
}

type mockRequestSource struct {
	requests  []pto.Request
	failError error
}

func (m *mockRequestSource) ListActive() ([]pto.Request, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	return m.requests, nil
}

type mockArchiver struct {
	snapshots []*schedule.Snapshot
	failError error
}

func (m *mockArchiver) Archive(snap *schedule.Snapshot) error {
	if m.failError != nil {
		return m.failError
	}
	m.snapshots = append(m.snapshots, snap)
	return nil
}

var _ = Describe("Schedule Service", func() {
	var (
		directory *mockDirectory
		requests  *mockRequestSource
		archiver  *mockArchiver
		service   *schedule.Service
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	newRequest := func(id, employeeID int64, start, end time.Time, reason, status string) pto.Request {
		return pto.Request{
			ID:         id,
			EmployeeID: employeeID,
			StartDate:  start,
			EndDate:    end,
			Reason:     reason,
			Status:     status,
		}
	}

	BeforeEach(func() {
		directory = &mockDirectory{
			employees: []employee.Employee{
				{ID: 1001, FirstName: "Alice", LastName: "Johnson", Email: "alice.johnson@example.com"},
				{ID: 1002, FirstName: "Bob", LastName: "Smith", Email: "bob.smith@example.com"},
			},
		}
		requests = &mockRequestSource{}
		archiver = &mockArchiver{}
		service = schedule.NewService(directory, requests, archiver, testLogger)
	})

	Describe("BuildSchedule", func() {
		It("should include every employee, with empty dates for those without requests", func() {
			requests.requests = []pto.Request{
				newRequest(1, 1002, day(2026, time.March, 10), day(2026, time.March, 12), "trip", pto.StatusApproved),
			}

			sched, err := service.BuildSchedule()
			Expect(err).NotTo(HaveOccurred())
			Expect(sched).To(HaveLen(2))

			Expect(sched[1001].Name).To(Equal("Alice Johnson"))
			Expect(sched[1001].Dates).To(BeEmpty())
			Expect(sched[1001].Dates).NotTo(BeNil())

			Expect(sched[1002].Dates).To(Equal([]string{"2026-03-10", "2026-03-11", "2026-03-12"}))
		})

		It("should accumulate days from overlapping requests without deduplication", func() {
			requests.requests = []pto.Request{
				newRequest(1, 1001, day(2026, time.April, 1), day(2026, time.April, 2), "", pto.StatusPending),
				newRequest(2, 1001, day(2026, time.April, 2), day(2026, time.April, 3), "", pto.StatusPending),
			}

			sched, err := service.BuildSchedule()
			Expect(err).NotTo(HaveOccurred())
			Expect(sched[1001].Dates).To(Equal([]string{
				"2026-04-01", "2026-04-02", "2026-04-02", "2026-04-03",
			}))
		})

		It("should skip requests whose employee is missing from the directory", func() {
			requests.requests = []pto.Request{
				newRequest(1, 9999, day(2026, time.May, 1), day(2026, time.May, 1), "", pto.StatusPending),
			}

			sched, err := service.BuildSchedule()
			Expect(err).NotTo(HaveOccurred())
			Expect(sched).To(HaveLen(2))
			Expect(sched).NotTo(HaveKey(int64(9999)))
		})

		It("should surface storage failures", func() {
			directory.failError = errors.New("connection refused")

			_, err := service.BuildSchedule()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ExportJSON", func() {
		BeforeEach(func() {
			requests.requests = []pto.Request{
				newRequest(1, 1002, day(2026, time.March, 10), day(2026, time.March, 12), "trip", pto.StatusApproved),
			}
		})

		It("should serialize the schedule keyed by employee identifier", func() {
			export, err := service.ExportJSON()
			Expect(err).NotTo(HaveOccurred())
			Expect(export.Filename).To(Equal("pto_schedule.json"))
			Expect(export.ContentType).To(Equal("application/json"))

			var decoded map[string]schedule.EmployeeSchedule
			Expect(json.Unmarshal(export.Data, &decoded)).To(Succeed())
			Expect(decoded).To(HaveKey("1002"))
			Expect(decoded["1002"].Name).To(Equal("Bob Smith"))
			Expect(decoded["1002"].Dates).To(HaveLen(3))
		})

		It("should archive a snapshot of the schedule", func() {
			_, err := service.ExportJSON()
			Expect(err).NotTo(HaveOccurred())

			Expect(archiver.snapshots).To(HaveLen(1))
			Expect(archiver.snapshots[0].BackupType).To(Equal(schedule.SnapshotTypeSchedule))

			var archived map[string]schedule.EmployeeSchedule
			Expect(json.Unmarshal([]byte(archiver.snapshots[0].BackupData), &archived)).To(Succeed())
			Expect(archived).To(HaveKey("1002"))
		})

		It("should still export when archival fails", func() {
			archiver.failError = errors.New("backups table gone")

			export, err := service.ExportJSON()
			Expect(err).NotTo(HaveOccurred())
			Expect(export.Data).NotTo(BeEmpty())
		})
	})

	Describe("ExportCSV", func() {
		It("should render the fixed header and one row per active request", func() {
			requests.requests = []pto.Request{
				newRequest(1, 1001, day(2026, time.March, 2), day(2026, time.March, 4), "dentist", pto.StatusPending),
				newRequest(2, 1002, day(2026, time.March, 10), day(2026, time.March, 12), "", pto.StatusApproved),
			}

			export, err := service.ExportCSV()
			Expect(err).NotTo(HaveOccurred())
			Expect(export.Filename).To(Equal("pto_schedule.csv"))
			Expect(export.ContentType).To(Equal("text/csv"))

			lines := splitCSV(export.Data)
			Expect(lines).To(HaveLen(3))
			Expect(lines[0]).To(Equal("Employee ID,Employee Name,Start Date,End Date,Reason,Status"))
			Expect(lines[1]).To(Equal("1001,Alice Johnson,2026-03-02,2026-03-04,dentist,Pending"))
			Expect(lines[2]).To(Equal("1002,Bob Smith,2026-03-10,2026-03-12,N/A,Approved"))
		})

		It("should emit only the header when no requests are active", func() {
			export, err := service.ExportCSV()
			Expect(err).NotTo(HaveOccurred())

			lines := splitCSV(export.Data)
			Expect(lines).To(HaveLen(1))
			Expect(lines[0]).To(Equal("Employee ID,Employee Name,Start Date,End Date,Reason,Status"))
		})

		It("should skip rows for requests without a directory entry", func() {
			requests.requests = []pto.Request{
				newRequest(1, 9999, day(2026, time.May, 1), day(2026, time.May, 1), "", pto.StatusPending),
			}

			export, err := service.ExportCSV()
			Expect(err).NotTo(HaveOccurred())
			Expect(splitCSV(export.Data)).To(HaveLen(1))
		})
	})
})
