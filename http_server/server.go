package http_server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/agriassist/agriassist-llm-server/http_server/routes"
	"github.com/agriassist/agriassist-llm-server/service"
	"github.com/gorilla/mux"
)

// In-flight form submissions wait on the model, so give them time to finish.
const shutdownTimeout = 30 * time.Second

func NewRouter(s service.Service) *mux.Router {
	// creates a new instance of a mux router
	router := mux.NewRouter().StrictSlash(true)
	routes.FormRoute(router, s)
	routes.APIRoute(router, s)
	if s.Config.FlaggingEnabled() {
		routes.FlagRoute(router, s)
	}
	return router
}

func NewServer(s service.Service) *http.Server {
	return &http.Server{Addr: s.Config.Addr(), Handler: NewRouter(s)}
}

// HandleRequests serves the form on the configured address until ctx is done.
func HandleRequests(ctx context.Context, s service.Service) error {
	srv := NewServer(s)
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	log.Printf("Form server is running on http://%s\n", srv.Addr)
	return Run(ctx, srv, ln, shutdownTimeout)
}

// Run serves on ln until ctx is done, then stops accepting connections and
// waits up to grace for in-flight requests.
func Run(ctx context.Context, srv *http.Server, ln net.Listener, grace time.Duration) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down form server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
