// Package server is a self-hosted backend speaking the same HTTP
// surface as the hosted ORDS deployment, for development and testing.
package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/oan-pulse/pulse/internal/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Server is the dev backend
type Server struct {
	db     *sql.DB
	driver string
	echo   *echo.Echo
}

// New creates a server over the given database. A postgres:// URL picks
// the postgres driver; anything else is treated as a sqlite path.
func New(dbURL string) (*Server, error) {
	driver := DriverSQLite
	if strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://") {
		driver = DriverPostgres
	}

	db, err := sql.Open(driver, dbURL)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// In-memory and file sqlite both need a single connection so
		// every statement sees the same database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &Server{db: db, driver: driver}

	if err := s.migrate(); err != nil {
		return nil, err
	}

	s.setupEcho()

	return s, nil
}

// NewMemory creates a server over an in-memory sqlite database, for
// tests and quick local runs.
func NewMemory() (*Server, error) {
	return New(":memory:")
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Custom logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("HTTP",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("duration", time.Since(start).String()))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", s.handleHealth)

	// Auth endpoints (public)
	e.POST("/auth/login", s.handleLogin)
	e.POST("/auth/logout", s.handleLogout)
	e.GET("/auth/me", s.handleMe)

	// Protected endpoints
	protected := e.Group("", s.authMiddleware)
	protected.GET("/time-entries/", s.handleListTimeEntries)
	protected.POST("/time-entries/", s.handleCreateTimeEntry)
	protected.GET("/time-entries/:id", s.handleGetTimeEntry)
	protected.PUT("/time-entries/:id", s.handleUpdateTimeEntry)
	protected.DELETE("/time-entries/:id", s.handleDeleteTimeEntry)

	protected.GET("/projects/", s.handleListProjects)
	protected.POST("/projects/", s.handleCreateProject)
	protected.PUT("/projects/:id", s.handleUpdateProject)
	protected.DELETE("/projects/:id", s.handleDeleteProject)

	protected.GET("/tasks/", s.handleListTasks)
	protected.POST("/tasks/", s.handleCreateTask)
	protected.DELETE("/tasks/:id", s.handleDeleteTask)

	protected.GET("/clients/", s.handleListClients)
	protected.POST("/clients/", s.handleCreateClient)
	protected.DELETE("/clients/:id", s.handleDeleteClient)

	protected.GET("/users/", s.handleListUsers)
	protected.POST("/users/", s.handleCreateUser)
	protected.PUT("/users/:id", s.handleUpdateUser)
	protected.DELETE("/users/:id", s.handleDeleteUser)

	// Manager workflow
	manager := e.Group("/manager", s.authMiddleware, s.managerMiddleware)
	manager.GET("/team", s.handleTeam)
	manager.GET("/pending", s.handlePendingApprovals)
	manager.GET("/time-entries", s.handleTeamTimeEntries)
	manager.POST("/approve/:id", s.handleApprove)
	manager.POST("/reject/:id", s.handleReject)
	manager.GET("/stats", s.handleStats)

	s.echo = e
}

// Close closes the database connection
func (s *Server) Close() error {
	return s.db.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// bind rewrites ? placeholders to $n for postgres. Queries are written
// once in sqlite style and rebound per driver.
func (s *Server) bind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// insertID runs an INSERT and returns the generated id for the given
// key column, covering both drivers.
func (s *Server) insertID(query, idColumn string, args ...interface{}) (int64, error) {
	if s.driver == DriverPostgres {
		var id int64
		err := s.db.QueryRow(s.bind(query)+" RETURNING "+idColumn, args...).Scan(&id)
		return id, err
	}
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
