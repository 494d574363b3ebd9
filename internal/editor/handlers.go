package editor

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/garethjevans/GPXviz/internal/anomaly"
	"github.com/garethjevans/GPXviz/internal/auth"
	"github.com/garethjevans/GPXviz/internal/gpxio"
	"github.com/garethjevans/GPXviz/internal/stream"
	"github.com/garethjevans/GPXviz/internal/track"
)

func RegisterRoutes(r fiber.Router, svc *Service, store *Store, throttle *stream.Throttle, secret string, authMiddleware fiber.Handler) {
	r.Post("/sessions", func(c *fiber.Ctx) error {
		var body struct {
			Name   string             `json:"name"`
			GPX    string             `json:"gpx"`
			Points []track.TrackPoint `json:"points"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}

		points := body.Points
		name := body.Name
		if body.GPX != "" {
			parsed, gpxName, err := gpxio.Parse([]byte(body.GPX))
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			points = parsed
			if name == "" {
				name = gpxName
			}
		}
		if len(points) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "gpx or points required")
		}

		session, err := svc.CreateSession(c.Context(), name, points)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		token, err := auth.IssueSessionToken(secret, session.ID, svc.ttl)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"session": svc.viewOf(session),
			"token":   token,
		})
	})

	r.Get("/sessions/:id", authMiddleware, func(c *fiber.Ctx) error {
		id, ok := sessionParam(c)
		if !ok {
			return errWrongSession
		}
		view, err := svc.ViewSession(c.Context(), id)
		if err != nil {
			return statusError(err)
		}
		return c.JSON(view)
	})

	r.Get("/sessions/:id/problems", authMiddleware, func(c *fiber.Ctx) error {
		id, ok := sessionParam(c)
		if !ok {
			return errWrongSession
		}

		options := anomaly.Options{
			GradientChangeThreshold: c.QueryFloat("gradient", svc.options.GradientChangeThreshold),
			BearingChangeThreshold:  c.QueryFloat("bearing", svc.options.BearingChangeThreshold),
		}
		problems, err := svc.Problems(c.Context(), id, options)
		if err != nil {
			return statusError(err)
		}
		return c.JSON(problems)
	})

	r.Post("/sessions/:id/edits", authMiddleware, func(c *fiber.Ctx) error {
		id, ok := sessionParam(c)
		if !ok {
			return errWrongSession
		}
		var req EditRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		view, err := svc.ApplyEdit(c.Context(), id, req)
		if err != nil {
			return statusError(err)
		}
		return c.JSON(view)
	})

	r.Post("/sessions/:id/preview", authMiddleware, func(c *fiber.Ctx) error {
		id, ok := sessionParam(c)
		if !ok {
			return errWrongSession
		}
		if throttle != nil && !throttle.Allow(id) {
			return fiber.NewError(fiber.StatusTooManyRequests, "preview rate exceeded")
		}
		var req EditRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		result, err := svc.Preview(c.Context(), id, req)
		if err != nil {
			return statusError(err)
		}
		return c.JSON(result)
	})

	r.Get("/sessions/:id/gpx", authMiddleware, func(c *fiber.Ctx) error {
		id, ok := sessionParam(c)
		if !ok {
			return errWrongSession
		}
		session, err := svc.GetSession(c.Context(), id)
		if err != nil {
			return statusError(err)
		}
		data, err := gpxio.Serialize(session.Points, session.Name)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "application/gpx+xml")
		return c.Send(data)
	})

	r.Get("/sessions/:id/geojson", authMiddleware, func(c *fiber.Ctx) error {
		id, ok := sessionParam(c)
		if !ok {
			return errWrongSession
		}
		session, err := svc.GetSession(c.Context(), id)
		if err != nil {
			return statusError(err)
		}
		data, err := gpxio.ToGeoJSON(session.Points, session.Name)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "application/geo+json")
		return c.Send(data)
	})

	r.Post("/sessions/:id/save", authMiddleware, func(c *fiber.Ctx) error {
		id, ok := sessionParam(c)
		if !ok {
			return errWrongSession
		}
		if store == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "track storage not configured")
		}

		var body struct {
			Name string `json:"name"`
		}
		_ = c.BodyParser(&body)

		view, err := svc.ViewSession(c.Context(), id)
		if err != nil {
			return statusError(err)
		}
		name := body.Name
		if name == "" {
			name = view.Name
		}
		saved, err := store.Save(c.Context(), name, view.Points, view.Summary)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	})

	r.Get("/tracks", func(c *fiber.Ctx) error {
		if store == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "track storage not configured")
		}
		tracks, err := store.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(tracks)
	})

	r.Get("/tracks/:id", func(c *fiber.Ctx) error {
		if store == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "track storage not configured")
		}
		saved, err := store.Get(c.Context(), c.Params("id"))
		if err != nil {
			return statusError(err)
		}
		return c.JSON(saved)
	})

	r.Get("/tracks/:id/gpx", func(c *fiber.Ctx) error {
		if store == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "track storage not configured")
		}
		saved, err := store.Get(c.Context(), c.Params("id"))
		if err != nil {
			return statusError(err)
		}
		data, err := gpxio.Serialize(saved.Points, saved.Name)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "application/gpx+xml")
		return c.Send(data)
	})

	r.Delete("/tracks/:id", authMiddleware, func(c *fiber.Ctx) error {
		if store == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "track storage not configured")
		}
		if err := store.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

var errWrongSession = fiber.NewError(fiber.StatusForbidden, "token not valid for this session")

// sessionParam returns the :id path parameter if the bearer token was issued
// for that session.
func sessionParam(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	sid, _ := c.Locals("session_id").(string)
	return id, sid == id && id != ""
}

func statusError(err error) *fiber.Error {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, pgx.ErrNoRows):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrUnknownOperation), errors.Is(err, track.ErrInvalidRange):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, track.ErrDegenerateGeometry):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
