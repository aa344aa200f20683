package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/swift-payments-portal/src/internal/commons"
	"github.com/api-sage/swift-payments-portal/src/internal/domain"
)

type EmployeeProvisioner interface {
	Provision(ctx context.Context, req models.CreateEmployeeRequest) (domain.Employee, error)
}

// AdminController provisions staff accounts. It is only mounted when admin
// channel credentials are configured.
type AdminController struct {
	service EmployeeProvisioner
	opts    Options
}

func NewAdminController(service EmployeeProvisioner, opts Options) *AdminController {
	return &AdminController{service: service, opts: opts}
}

func (c *AdminController) RegisterRoutes(mux *http.ServeMux, channelAuth func(http.Handler) http.Handler) {
	mux.Handle("/admin/employees", middleware.Chain(http.HandlerFunc(c.createEmployee), channelAuth))
}

func (c *AdminController) createEmployee(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, start)
		return
	}

	var req models.CreateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	logRequest(r, req)

	employee, err := c.service.Provision(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateRecord) {
			logError(r, err, nil)
			body := commons.ErrorResponse("Employee already exists")
			writeJSON(w, http.StatusBadRequest, body)
			logResponse(r, http.StatusBadRequest, body, start)
			return
		}
		writeError(w, r, err, c.opts, serverErrorMessage, start)
		return
	}

	response := models.CreateEmployeeResponse{
		Message:  "Employee created successfully",
		Employee: models.NewEmployeeResponse(employee),
	}
	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}
