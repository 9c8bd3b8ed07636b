package profiling

import (
	"net"
	"net/http"
	"net/http/pprof"

	"github.com/kaspanet/txancestry/infrastructure/logger"
	"github.com/kaspanet/txancestry/util/panics"
	"github.com/pkg/errors"
)

// Start binds the profiling server to port on all interfaces and serves the
// pprof endpoints under /debug/pprof/ until the process exits. "/" redirects
// there. A port that cannot be bound is reported before Start returns.
func Start(port string, log *logger.Logger) (net.Addr, error) {
	listener, err := net.Listen("tcp", net.JoinHostPort("", port))
	if err != nil {
		return nil, errors.Wrapf(err, "error starting the profile server on port %s", port)
	}
	log.Infof("Profile server listening on %s", listener.Addr())

	spawn := panics.GoroutineWrapperFunc(log)
	spawn(func() {
		err := http.Serve(listener, newHandler())
		log.Errorf("Profile server stopped: %s", err)
	})
	return listener.Addr(), nil
}

func newHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/", http.RedirectHandler("/debug/pprof/", http.StatusSeeOther))
	return mux
}
