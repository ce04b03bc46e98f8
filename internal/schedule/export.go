package schedule

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/frahmantamala/pto-portal/internal"
	"github.com/frahmantamala/pto-portal/internal/pto"
)

// Export is a complete, in-memory downloadable document.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CSVHeader is the fixed first row of every CSV export, in this exact order.
var CSVHeader = []string{"Employee ID", "Employee Name", "Start Date", "End Date", "Reason", "Status"}

// ExportJSON serializes the aggregate schedule keyed by employee identifier,
// archiving a snapshot as a side effect.
func (s *Service) ExportJSON() (*Export, error) {
	sched, err := s.BuildSchedule()
	if err != nil {
		return nil, err
	}

	s.archive(sched)

	data, err := json.Marshal(sched)
	if err != nil {
		s.logger.Error("schedule export: json marshal failed", "error", err)
		return nil, internal.NewInternalError("failed to serialize schedule", err)
	}

	return &Export{
		Filename:    "pto_schedule.json",
		ContentType: "application/json",
		Data:        data,
	}, nil
}

// ExportCSV renders one row per active request. Unlike the JSON variant it
// keeps the raw ranges; no per-day expansion.
func (s *Service) ExportCSV() (*Export, error) {
	emps, err := s.employees.ListAll()
	if err != nil {
		s.logger.Error("schedule export: employee enumeration failed", "error", err)
		return nil, internal.NewStorageError(err)
	}

	requests, err := s.requests.ListActive()
	if err != nil {
		s.logger.Error("schedule export: active request load failed", "error", err)
		return nil, internal.NewStorageError(err)
	}

	names := make(map[int64]string, len(emps))
	for _, emp := range emps {
		names[emp.ID] = emp.DisplayName()
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(CSVHeader); err != nil {
		return nil, internal.NewInternalError("failed to serialize schedule", err)
	}

	for _, req := range requests {
		name, ok := names[req.EmployeeID]
		if !ok {
			s.logger.Warn("schedule export: request without employee row",
				"request_id", req.ID,
				"employee_id", req.EmployeeID)
			continue
		}

		reason := strings.TrimSpace(req.Reason)
		if reason == "" {
			reason = "N/A"
		}

		record := []string{
			strconv.FormatInt(req.EmployeeID, 10),
			name,
			req.StartDate.Format(pto.DateLayout),
			req.EndDate.Format(pto.DateLayout),
			reason,
			capitalize(req.Status),
		}
		if err := writer.Write(record); err != nil {
			return nil, internal.NewInternalError("failed to serialize schedule", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, internal.NewInternalError("failed to serialize schedule", err)
	}

	return &Export{
		Filename:    "pto_schedule.csv",
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
