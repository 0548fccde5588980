package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// DefaultMirrorPort is the port the mirror listens on unless told otherwise.
const DefaultMirrorPort = 50000

// ServeCmd starts an http server that serves files from the data directory.
// This server listens only on localhost and is used to hand staged artifacts
// to air-gapped hosts on the same machine or network namespace.
func ServeCmd(cli *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the data directory over localhost HTTP",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if cli.ServeRequiresRoot && os.Getuid() != 0 {
				return fmt.Errorf("serve command must be run as root")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cli.V.GetString("data-dir")
			port := cli.V.GetInt("port")
			addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
			return serve(cmd.Context(), addr, dir)
		},
	}

	cmd.Flags().Int("port", DefaultMirrorPort, "Port to listen on")

	return cmd
}

func serve(ctx context.Context, addr, dir string) error {
	server := &http.Server{Addr: addr, Handler: newRouter(dir)}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("unable to serve: %w", err)
	case <-ctx.Done():
	}

	logrus.Infof("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("unable to shutdown server: %w", err)
	}
	logrus.Infof("Server gracefully stopped")
	return nil
}

// newRouter builds the mirror routes: artifacts are served from the data
// directory, logs are never served.
func newRouter(dir string) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	fileServer := http.FileServer(http.Dir(dir))
	router.PathPrefix("/").Handler(fileServer)
	router.Use(logAndFilterRequest)
	return router
}

// logAndFilterRequest is a middleware that logs the HTTP request details.
// Returns 404 if attempting to read the log files as those are not served
// by this server.
func logAndFilterRequest(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Debugf("%s %s %s", r.RemoteAddr, r.Method, r.URL)
		if strings.HasPrefix(r.URL.Path, "/logs") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
