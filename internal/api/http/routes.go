package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/metrics"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const sessionCookie = "wd_session"

var validate = validator.New()

// Dashboard serves the weather page. Lookups started from the form run in the
// background so the page can show the Loading state while they are in flight.
type Dashboard struct {
	ctx      context.Context
	looker   dashboard.Looker
	sessions *store.SessionStore
	logger   *slog.Logger
	inflight sync.WaitGroup
}

// NewDashboard creates a Dashboard. ctx bounds every background lookup.
func NewDashboard(ctx context.Context, looker dashboard.Looker, sessions *store.SessionStore, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{
		ctx:      ctx,
		looker:   looker,
		sessions: sessions,
		logger:   logger,
	}
}

// Wait blocks until all background lookups have finished.
func (d *Dashboard) Wait() {
	d.inflight.Wait()
}

// ErrorHandler renders every handler error as a JSON body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. m may be nil.
func RegisterRoutes(app *fiber.App, d *Dashboard, m *metrics.Metrics) {
	app.Get("/", d.handleIndex)
	app.Post("/search", d.handleSearch)

	v1 := app.Group("/api/v1")
	v1.Get("/weather", d.handleWeather)

	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}
}

func (d *Dashboard) handleIndex(c *fiber.Ctx) error {
	return d.renderPage(c, fiber.StatusOK, d.session(c))
}

func (d *Dashboard) handleSearch(c *fiber.Ctx) error {
	sess := d.session(c)
	city := utils.CopyString(c.FormValue("city"))
	sess.SetCity(city)

	query, started, err := sess.Submit(city)
	if errors.Is(err, dashboard.ErrLookupInProgress) {
		d.logger.Debug("search rejected, lookup in progress", "city", city)
		return d.renderPage(c, fiber.StatusConflict, sess)
	}
	if err != nil {
		return err
	}

	if started {
		d.inflight.Add(1)
		go func() {
			defer d.inflight.Done()
			snap, lookupErr := d.looker.Lookup(d.ctx, query)
			sess.Finish(snap, lookupErr)
		}()
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

func (d *Dashboard) handleWeather(c *fiber.Ctx) error {
	city := utils.CopyString(c.Query("city"))
	if err := validate.Var(strings.TrimSpace(city), "required"); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "city query parameter is required")
	}

	snap, err := d.looker.Lookup(c.UserContext(), city)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, weather.LookupFailedMessage)
	}
	return c.JSON(snap)
}

// session returns the caller's session, creating one and setting the cookie
// when the request carries none or an expired one.
func (d *Dashboard) session(c *fiber.Ctx) *dashboard.Session {
	if sess, err := d.sessions.Get(c.Cookies(sessionCookie)); err == nil {
		return sess
	}

	id, sess := d.sessions.Create()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return sess
}

func (d *Dashboard) renderPage(c *fiber.Ctx, status int, sess *dashboard.Session) error {
	view := dashboard.Render(sess.State(), sess.City())

	c.Status(status)
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Type("html", "utf-8")
	return dashboard.WritePage(c, view)
}
