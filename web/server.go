package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/agroth3/nfl-playoff-picks/controller"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

//go:embed templates
var templates embed.FS

type Server struct {
	server *http.Server
	logger *zap.Logger
}

func NewServer(port int, ctrl controller.C, sessions *SessionManager, logger *zap.Logger) (*Server, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}

	render := newRender()
	router := getRouter(ctrl, render, sessions, logger)

	s := &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			s.logger.Fatal("fatal error shutting down server", zap.Error(err))
		}
	}()

	s.logger.Info("web server is listening", zap.String("addr", s.server.Addr))
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.logger.Fatal("fatal error with server", zap.Error(err))
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		Directory: "templates",
		Layout:    "layout",
		FileSystem: &render.EmbedFileSystem{
			FS: templates,
		},
		Funcs: []template.FuncMap{
			{
				"date":         dateFormatter,
				"pointOptions": pointOptions,
				"fieldError":   fieldError,
				"teamKey":      teamKey,
			},
		},
	})
}

func dateFormatter(t time.Time) string {
	if t.IsZero() {
		return "Never"
	}
	return t.Format("Jan 2, 2006")
}

// pointOptions lists the point values a member can assign in a league with n teams.
func pointOptions(n int) []int {
	opts := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		opts = append(opts, i)
	}
	return opts
}

func fieldError(errs map[string]string, key string) string {
	if errs == nil {
		return ""
	}
	return errs[key]
}

func teamKey(id int32) string {
	return fmt.Sprintf("%d", id)
}
