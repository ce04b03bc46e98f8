package schedule

import (
	"fmt"
	"net/http"

	"github.com/frahmantamala/pto-portal/internal"
	"github.com/frahmantamala/pto-portal/internal/transport"
	"github.com/frahmantamala/pto-portal/pkg/logger"
)

type ServiceAPI interface {
	ExportCSV() (*Export, error)
	ExportJSON() (*Export, error)
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

// Export streams the aggregate schedule as a file download. Format is chosen
// by the ?format query parameter; CSV is the default.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	if _, ok := internal.SessionFromContext(r.Context()); !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var (
		export *Export
		err    error
	)
	switch format := r.URL.Query().Get("format"); format {
	case "json":
		export, err = h.Service.ExportJSON()
	case "", "csv":
		export, err = h.Service.ExportCSV()
	default:
		h.Logger.Warn("Export: unsupported format requested", "format", format)
		h.WriteError(w, http.StatusBadRequest, "unsupported export format")
		return
	}
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename))
	if _, err := w.Write(export.Data); err != nil {
		h.Logger.Error("Export: failed to write response", "error", err)
	}
}
