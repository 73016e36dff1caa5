package server

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cleared-dev/catexplorer/internal/aggregate"
	"github.com/cleared-dev/catexplorer/internal/importer"
	"github.com/cleared-dev/catexplorer/internal/logger"
)

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(indexHTML)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleExplore runs the pipeline over the uploaded file.
// Form fields: file (required), include_incoming, category, q.
func (s *Server) handleExplore(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	includeIncoming := s.includeIncoming
	if v := c.FormValue("include_incoming"); v != "" {
		includeIncoming, err = parseToggle(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "include_incoming must be a boolean")
		}
	}

	src, err := fh.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to open upload")
	}
	defer src.Close()

	tbl, err := s.registry.Load(fh.Filename, src)
	if err != nil {
		return err
	}

	req := aggregate.Request{
		IncludeIncoming: includeIncoming,
		Category:        c.FormValue("category"),
		Query:           c.FormValue("q"),
	}
	d, err := s.pipeline.Explore(tbl, req)
	if err != nil {
		return err
	}

	log := logger.FromContext(c.UserContext())
	log.Debug().
		Str("file", fh.Filename).
		Int("rows", d.RowsIngested).
		Int("filtered", d.RowsFiltered).
		Str("category", d.SelectedCategory).
		Bool("no_match", d.NoMatch).
		Msg("explored upload")

	return c.JSON(d)
}

// parseToggle accepts strconv booleans plus the HTML checkbox value "on".
func parseToggle(v string) (bool, error) {
	if v == "on" {
		return true, nil
	}
	return strconv.ParseBool(v)
}

// handleError maps pipeline failures to status codes and a JSON body.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status, kind := classify(err)

	log := logger.FromContext(c.UserContext())
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	} else {
		log.Warn().Err(err).Str("kind", kind).Msg("request rejected")
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"kind":  kind,
	})
}

func classify(err error) (int, string) {
	var (
		mc importer.MissingColumnError
		dc importer.DuplicateColumnError
		ia importer.InvalidAmountError
		uc aggregate.UnknownCategoryError
		fe *fiber.Error
	)
	switch {
	case errors.As(err, &mc):
		return fiber.StatusUnprocessableEntity, "missing_column"
	case errors.As(err, &dc):
		return fiber.StatusUnprocessableEntity, "duplicate_column"
	case errors.As(err, &ia):
		return fiber.StatusUnprocessableEntity, "invalid_amount"
	case errors.Is(err, importer.ErrEmptyInput):
		return fiber.StatusUnprocessableEntity, "empty_input"
	case importer.IsInputError(err):
		return fiber.StatusUnprocessableEntity, "malformed_input"
	case errors.As(err, &uc):
		return fiber.StatusBadRequest, "unknown_category"
	case errors.As(err, &fe):
		return fe.Code, "request"
	default:
		return fiber.StatusInternalServerError, "internal"
	}
}
