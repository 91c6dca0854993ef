package mobile

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"

	httpserver "taqi/internal/server/http"
)

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, port string) {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	h := httpserver.NewHandler(logger)
	router := httpserver.NewRouter(h, webDir)

	go h.Hub().Run(make(chan struct{}))

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := http.ListenAndServe("127.0.0.1:"+port, router); err != nil {
			logger.Error().Err(err).Msg("server error")
		}
	}()
}
