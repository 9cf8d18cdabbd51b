package api

import (
	"net/http"

	"homehero/internal/models"
)

const msgInvalidServiceID = "Invalid service id"

var (
	opCreateService = operation{name: "create_service", failed: "Failed to add service"}
	opListServices  = operation{name: "list_services", failed: "Failed to fetch services"}
	opHomeServices  = operation{name: "home_services", failed: "Failed to load home services"}
	opGetService    = operation{name: "get_service", failed: "Failed to get service", notFound: "Service not found", badID: msgInvalidServiceID}
	opUpdateService = operation{name: "update_service", failed: "Failed to update service", badID: msgInvalidServiceID}
	opDeleteService = operation{name: "delete_service", failed: "Failed to delete service", notFound: "Service not found", badID: msgInvalidServiceID}
)

func (s *HTTPServer) handleCreateService(w http.ResponseWriter, r *http.Request) {
	var req models.NewServiceRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := s.deps.Catalog.CreateService(r.Context(), req)
	if err != nil {
		s.fail(w, r, opCreateService, err)
		return
	}
	writeData(w, "Service added successfully", res)
}

func (s *HTTPServer) handleListServices(w http.ResponseWriter, r *http.Request) {
	services, err := s.deps.Catalog.ListServices(r.Context())
	if err != nil {
		s.fail(w, r, opListServices, err)
		return
	}
	writeData(w, "", services)
}

func (s *HTTPServer) handleHomeServices(w http.ResponseWriter, r *http.Request) {
	services, err := s.deps.Catalog.HomeServices(r.Context())
	if err != nil {
		s.fail(w, r, opHomeServices, err)
		return
	}
	writeData(w, "", services)
}

func (s *HTTPServer) handleGetService(w http.ResponseWriter, r *http.Request) {
	service, err := s.deps.Catalog.GetService(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, opGetService, err)
		return
	}
	writeData(w, "", service)
}

func (s *HTTPServer) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	var patch models.ServicePatch
	if err := decodeBody(r, &patch); err != nil {
		writeFailure(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := s.deps.Catalog.UpdateService(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.fail(w, r, opUpdateService, err)
		return
	}
	writeData(w, "Service updated successfully", res)
}

func (s *HTTPServer) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Catalog.DeleteService(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, opDeleteService, err)
		return
	}
	writeMessage(w, http.StatusOK, "Service deleted successfully")
}
