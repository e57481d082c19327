// Package api exposes the bridge HTTP api. It is a thin pass-through
// layer: handlers decode plain request parameters, relay them to the
// facade and encode the uniform result, mapping the typed core errors
// onto HTTP statuses. No domain logic lives here.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/lorahub/chirpstack-bridge/internal/facade"
)

// Server serves the bridge HTTP api.
type Server struct {
	facade *facade.Facade
	bind   string
}

// NewServer creates a new api server.
func NewServer(f *facade.Facade, bind string) *Server {
	return &Server{
		facade: f,
		bind:   bind,
	}
}

// Start starts the api server. It does not block.
func (s *Server) Start() error {
	log.WithFields(log.Fields{
		"bind": s.bind,
	}).Info("api: starting bridge api server")

	server := http.Server{
		Handler: s.Routes(),
		Addr:    s.bind,
	}

	go func() {
		err := server.ListenAndServe()
		log.WithError(err).Error("api: api server error")
	}()

	return nil
}

// Routes returns the api route tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.health)

	r.Route("/applications", func(r chi.Router) {
		r.Get("/", s.listApplications)
		r.Post("/", s.createApplication)
		r.Get("/{applicationID}", s.getApplication)
		r.Put("/{applicationID}", s.updateApplication)
		r.Delete("/{applicationID}", s.deleteApplication)
	})

	r.Route("/devices", func(r chi.Router) {
		r.Get("/", s.listDevices)
		r.Post("/", s.createDevice)
		r.Get("/{devEUI}", s.getDevice)
		r.Put("/{devEUI}", s.updateDevice)
		r.Delete("/{devEUI}", s.deleteDevice)
		r.Post("/{devEUI}/activate", s.activateDevice)
		r.Get("/{devEUI}/metrics", s.getDeviceMetrics)
		r.Get("/{devEUI}/events", s.getDeviceEvents)
		r.Post("/{devEUI}/queue", s.enqueueDownlink)
		r.Get("/{devEUI}/queue", s.listDownlinkQueue)
		r.Delete("/{devEUI}/queue", s.flushDownlinkQueue)
	})

	r.Route("/gateways", func(r chi.Router) {
		r.Get("/", s.listGateways)
		r.Post("/", s.createGateway)
		r.Get("/{gatewayID}", s.getGateway)
		r.Put("/{gatewayID}", s.updateGateway)
		r.Delete("/{gatewayID}", s.deleteGateway)
		r.Get("/{gatewayID}/stats", s.getGatewayStats)
	})

	r.Route("/device-profiles", func(r chi.Router) {
		r.Get("/", s.listDeviceProfiles)
		r.Get("/{deviceProfileID}", s.getDeviceProfile)
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "chirpstack-bridge",
	})
}

func (s *Server) listApplications(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	out, err := s.facade.ListApplications(r.Context(), r.URL.Query().Get("tenantId"), limit, offset)
	respond(w, out, err)
}

func (s *Server) getApplication(w http.ResponseWriter, r *http.Request) {
	out, err := s.facade.GetApplication(r.Context(), chi.URLParam(r, "applicationID"))
	respond(w, out, err)
}

func (s *Server) createApplication(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := s.facade.CreateApplication(r.Context(), payload)
	respond(w, out, err)
}

func (s *Server) updateApplication(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := s.facade.UpdateApplication(r.Context(), chi.URLParam(r, "applicationID"), payload)
	respond(w, out, err)
}

func (s *Server) deleteApplication(w http.ResponseWriter, r *http.Request) {
	out, err := s.facade.DeleteApplication(r.Context(), chi.URLParam(r, "applicationID"))
	respond(w, out, err)
}

func (s *Server) listDevices(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	out, err := s.facade.ListDevices(r.Context(), r.URL.Query().Get("applicationId"), limit, offset)
	respond(w, out, err)
}

func (s *Server) getDevice(w http.ResponseWriter, r *http.Request) {
	out, err := s.facade.GetDevice(r.Context(), chi.URLParam(r, "devEUI"))
	respond(w, out, err)
}

func (s *Server) createDevice(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := s.facade.CreateDevice(r.Context(), payload)
	respond(w, out, err)
}

func (s *Server) updateDevice(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := s.facade.UpdateDevice(r.Context(), chi.URLParam(r, "devEUI"), payload)
	respond(w, out, err)
}

func (s *Server) deleteDevice(w http.ResponseWriter, r *http.Request) {
	out, err := s.facade.DeleteDevice(r.Context(), chi.URLParam(r, "devEUI"))
	respond(w, out, err)
}

func (s *Server) activateDevice(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := s.facade.ActivateDevice(r.Context(), chi.URLParam(r, "devEUI"), payload)
	respond(w, out, err)
}

func (s *Server) getDeviceMetrics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := s.facade.GetDeviceMetrics(r.Context(), chi.URLParam(r, "devEUI"), q.Get("start"), q.Get("end"), aggregationParam(r))
	respond(w, out, err)
}

func (s *Server) getDeviceEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	out, err := s.facade.GetDeviceEvents(r.Context(), chi.URLParam(r, "devEUI"), limit, offset)
	respond(w, out, err)
}

func (s *Server) enqueueDownlink(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := s.facade.EnqueueDownlink(r.Context(), chi.URLParam(r, "devEUI"), payload)
	respond(w, out, err)
}

func (s *Server) listDownlinkQueue(w http.ResponseWriter, r *http.Request) {
	out, err := s.facade.ListDownlinkQueue(r.Context(), chi.URLParam(r, "devEUI"))
	respond(w, out, err)
}

func (s *Server) flushDownlinkQueue(w http.ResponseWriter, r *http.Request) {
	out, err := s.facade.FlushDownlinkQueue(r.Context(), chi.URLParam(r, "devEUI"))
	respond(w, out, err)
}

func (s *Server) listGateways(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	out, err := s.facade.ListGateways(r.Context(), r.URL.Query().Get("tenantId"), limit, offset)
	respond(w, out, err)
}

func (s *Server) getGateway(w http.ResponseWriter, r *http.Request) {
	out, err := s.facade.GetGateway(r.Context(), chi.URLParam(r, "gatewayID"))
	respond(w, out, err)
}

func (s *Server) createGateway(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := s.facade.CreateGateway(r.Context(), payload)
	respond(w, out, err)
}

func (s *Server) updateGateway(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := s.facade.UpdateGateway(r.Context(), chi.URLParam(r, "gatewayID"), payload)
	respond(w, out, err)
}

func (s *Server) deleteGateway(w http.ResponseWriter, r *http.Request) {
	out, err := s.facade.DeleteGateway(r.Context(), chi.URLParam(r, "gatewayID"))
	respond(w, out, err)
}

func (s *Server) getGatewayStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := s.facade.GetGatewayStats(r.Context(), chi.URLParam(r, "gatewayID"), q.Get("start"), q.Get("end"), aggregationParam(r))
	respond(w, out, err)
}

func (s *Server) listDeviceProfiles(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	out, err := s.facade.ListDeviceProfiles(r.Context(), r.URL.Query().Get("tenantId"), limit, offset)
	respond(w, out, err)
}

func (s *Server) getDeviceProfile(w http.ResponseWriter, r *http.Request) {
	out, err := s.facade.GetDeviceProfile(r.Context(), chi.URLParam(r, "deviceProfileID"))
	respond(w, out, err)
}

func paginationParams(r *http.Request) (int, int) {
	limit := 10
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func aggregationParam(r *http.Request) string {
	if v := r.URL.Query().Get("aggregation"); v != "" {
		return v
	}
	return "HOUR"
}

func readBody(r *http.Request) (map[string]interface{}, error) {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, errBadBody(err)
	}
	return payload, nil
}

func respond(w http.ResponseWriter, out map[string]interface{}, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("api: write response error")
	}
}
