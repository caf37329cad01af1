package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/contactkeeper/internal/logging"
	"github.com/dmitrijs2005/contactkeeper/internal/server/config"
	"github.com/dmitrijs2005/contactkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/contactkeeper/internal/server/services"
	"github.com/gorilla/mux"
)

type Server struct {
	address         string
	logger          logging.Logger
	metrics         *metrics.Metrics
	users           *services.UserService
	contacts        *services.ContactService
	addresses       *services.AddressService
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
}

func NewServer(c *config.Config, l logging.Logger, m *metrics.Metrics, us *services.UserService, cs *services.ContactService, as *services.AddressService) *Server {
	return &Server{
		address:         c.EndpointAddrHTTP,
		logger:          l.With("module", "rest_server"),
		metrics:         m,
		users:           us,
		contacts:        cs,
		addresses:       as,
		readTimeout:     c.ReadTimeout,
		writeTimeout:    c.WriteTimeout,
		shutdownTimeout: c.ShutdownTimeout,
	}
}

// Handler builds the router with every route and middleware installed.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.metrics.Middleware(), s.accessLog)

	// mux runs r.Use middleware on matched routes only.
	unmatched := func(h http.HandlerFunc) http.Handler {
		return s.metrics.Middleware()(s.accessLog(h))
	}
	r.NotFoundHandler = unmatched(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = unmatched(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.HandleFunc("/", s.home).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/users", s.register).Methods(http.MethodPost)
	r.HandleFunc("/users/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/users/current", s.authenticated(s.currentUser)).Methods(http.MethodGet)
	r.HandleFunc("/users/current", s.authenticated(s.updateCurrentUser)).Methods(http.MethodPatch)
	r.HandleFunc("/users/logout", s.authenticated(s.logout)).Methods(http.MethodDelete)

	r.HandleFunc("/contacts", s.authenticated(s.listContacts)).Methods(http.MethodGet)
	r.HandleFunc("/contacts", s.authenticated(s.createContact)).Methods(http.MethodPost)
	r.HandleFunc("/contacts/{contactId:[0-9]+}", s.authenticated(s.getContact)).Methods(http.MethodGet)
	r.HandleFunc("/contacts/{contactId:[0-9]+}", s.authenticated(s.updateContact)).Methods(http.MethodPut)
	r.HandleFunc("/contacts/{contactId:[0-9]+}", s.authenticated(s.deleteContact)).Methods(http.MethodDelete)

	r.HandleFunc("/contacts/{contactId:[0-9]+}/addresses", s.authenticated(s.listAddresses)).Methods(http.MethodGet)
	r.HandleFunc("/contacts/{contactId:[0-9]+}/addresses", s.authenticated(s.createAddress)).Methods(http.MethodPost)
	r.HandleFunc("/contacts/{contactId:[0-9]+}/addresses/{addressId:[0-9]+}", s.authenticated(s.getAddress)).Methods(http.MethodGet)
	r.HandleFunc("/contacts/{contactId:[0-9]+}/addresses/{addressId:[0-9]+}", s.authenticated(s.updateAddress)).Methods(http.MethodPut)
	r.HandleFunc("/contacts/{contactId:[0-9]+}/addresses/{addressId:[0-9]+}", s.authenticated(s.deleteAddress)).Methods(http.MethodDelete)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-done
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, "ok")
}
