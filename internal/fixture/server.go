// Package fixture serves a local, reqres-compatible users API for demos and
// integration tests.
package fixture

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jask/cardfriends/internal/usersapi"
)

//go:embed users.yaml
var defaultUsers []byte

const maxDelay = 10 * time.Second

// Dataset is the fixture's user table.
type Dataset struct {
	PerPage int             `yaml:"per_page"`
	Users   []usersapi.User `yaml:"users"`
}

// LoadDataset reads a YAML dataset from path, or the embedded default when
// path is empty.
func LoadDataset(path string) (Dataset, error) {
	raw := defaultUsers
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Dataset{}, fmt.Errorf("read fixture data: %w", err)
		}
		raw = b
	}
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse fixture data: %w", err)
	}
	if ds.PerPage <= 0 {
		return Dataset{}, fmt.Errorf("parse fixture data: per_page must be positive")
	}
	return ds, nil
}

// TotalPages is the page count for the dataset, at least 1.
func (d Dataset) TotalPages() int {
	return max(1, (len(d.Users)+d.PerPage-1)/d.PerPage)
}

// Page returns page n (1-based). Pages past the end are empty.
func (d Dataset) Page(n int) usersapi.Page {
	start := (n - 1) * d.PerPage
	data := []usersapi.User{}
	if start >= 0 && start < len(d.Users) {
		end := min(start+d.PerPage, len(d.Users))
		data = append(data, d.Users[start:end]...)
	}
	return usersapi.Page{
		Page:       n,
		PerPage:    d.PerPage,
		Total:      len(d.Users),
		TotalPages: d.TotalPages(),
		Data:       data,
	}
}

type Server struct {
	app  *fiber.App
	data Dataset
	log  *zap.Logger
}

func New(data Dataset, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{data: data, log: log}
	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(recover.New())
	s.app.Use(s.logRequests)
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Get("/api/users", s.listUsers)
	return s
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.log.Info("fixture server listening", zap.String("addr", addr), zap.Int("users", len(s.data.Users)))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) listUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	if delay := time.Duration(c.QueryInt("delay", 0)) * time.Second; delay > 0 {
		select {
		case <-time.After(min(delay, maxDelay)):
		case <-c.Context().Done():
			return nil
		}
	}
	return c.JSON(s.data.Page(page))
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Debug("fixture request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("query", string(c.Request().URI().QueryString())),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return err
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
	}
	s.log.Warn("fixture error", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
