package main

import (
	_ "embed"
	"html/template"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/meteors/internal/config"
	"github.com/tomz197/meteors/internal/leaderboard"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

var page = template.Must(template.New("index").Parse(htmlPage))

// pageData is what index.html renders.
type pageData struct {
	SSHHost string
	Scores  []int
	Saved   bool // False when the save data could not be read
}

func main() {
	settings := config.Load()
	logger := config.NewLogger(os.Stderr, settings.LogLevel)

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	var store leaderboard.Store
	if gd, err := leaderboard.OpenGData(settings.SaveName); err != nil {
		logger.Warn("leaderboard unavailable", "err", err)
		store = leaderboard.Unavailable(err)
	} else {
		store = gd
	}

	http.Handle("/", leaderboardHandler(store, sshHost, logger))

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	srv := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// leaderboardHandler renders the saved scores on every request, so games
// finishing elsewhere show up on reload.
func leaderboardHandler(store leaderboard.Store, sshHost string, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		data := pageData{SSHHost: sshHost, Saved: true}
		scores, err := store.Load()
		if err != nil {
			logger.Debug("load leaderboard", "err", err)
			data.Saved = false
		}
		data.Scores = leaderboard.Normalize(scores)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			logger.Error("render page", "err", err)
		}
	})
}
