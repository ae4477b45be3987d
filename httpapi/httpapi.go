// Package httpapi exposes quest graph conversion and storage over HTTP.
package httpapi

import (
	"bytes"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/meikuraledutech/questgraph"
	"github.com/meikuraledutech/questgraph/yamldoc"
)

// New returns a fiber app serving the quest graph routes backed by store.
func New(store questgraph.Store, logger *slog.Logger) *fiber.App {
	h := &handlers{store: store, logger: logger}
	app := fiber.New()

	// ── Schema ────────────────────────────────────────────────────────
	app.Post("/schema", h.createSchema)
	app.Delete("/schema", h.dropSchema)

	// ── Conversion ────────────────────────────────────────────────────
	app.Post("/convert", h.convert)

	// ── Graphs ────────────────────────────────────────────────────────
	app.Get("/graphs", h.listGraphs)
	app.Put("/graphs/:id", h.saveGraph)
	app.Get("/graphs/:id", h.getGraph)
	app.Delete("/graphs/:id", h.deleteGraph)
	app.Get("/graphs/:id/nodes", h.listNodes)
	app.Get("/graphs/:id/edges", h.listEdges)

	return app
}

type handlers struct {
	store  questgraph.Store
	logger *slog.Logger
}

func (h *handlers) createSchema(c fiber.Ctx) error {
	if err := h.store.CreateSchema(c.Context()); err != nil {
		return h.internal(c, err)
	}
	return c.JSON(fiber.Map{"message": "schema created"})
}

func (h *handlers) dropSchema(c fiber.Ctx) error {
	if err := h.store.DropSchema(c.Context()); err != nil {
		return h.internal(c, err)
	}
	return c.JSON(fiber.Map{"message": "schema dropped"})
}

func (h *handlers) convert(c fiber.Ctx) error {
	g, err := convertBody(c.Body())
	if err != nil {
		return badDocument(c, err)
	}
	return c.JSON(g)
}

func (h *handlers) saveGraph(c fiber.Ctx) error {
	g, err := convertBody(c.Body())
	if err != nil {
		return badDocument(c, err)
	}
	id := c.Params("id")
	if err := h.store.SaveGraph(c.Context(), id, g); err != nil {
		return h.internal(c, err)
	}
	h.logger.Info("Graph saved.", "graph", id, "nodes", len(g.Nodes), "edges", len(g.Edges))
	return c.Status(fiber.StatusCreated).JSON(g)
}

func (h *handlers) listGraphs(c fiber.Ctx) error {
	ids, err := h.store.ListGraphs(c.Context())
	if err != nil {
		return h.internal(c, err)
	}
	return c.JSON(ids)
}

func (h *handlers) getGraph(c fiber.Ctx) error {
	g, err := h.store.GetGraph(c.Context(), c.Params("id"))
	if err != nil {
		return h.internal(c, err)
	}
	if g == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "graph not found"})
	}
	return c.JSON(g)
}

func (h *handlers) deleteGraph(c fiber.Ctx) error {
	if err := h.store.DeleteGraph(c.Context(), c.Params("id")); err != nil {
		return h.internal(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handlers) listNodes(c fiber.Ctx) error {
	nodes, err := h.store.ListNodes(c.Context(), c.Params("id"))
	if errors.Is(err, questgraph.ErrGraphNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "graph not found"})
	}
	if err != nil {
		return h.internal(c, err)
	}
	return c.JSON(nodes)
}

func (h *handlers) listEdges(c fiber.Ctx) error {
	edges, err := h.store.ListEdges(c.Context(), c.Params("id"))
	if errors.Is(err, questgraph.ErrGraphNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "graph not found"})
	}
	if err != nil {
		return h.internal(c, err)
	}
	return c.JSON(edges)
}

func (h *handlers) internal(c fiber.Ctx, err error) error {
	h.logger.Error("Request failed.", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// convertBody decodes a YAML quest document and converts it.
func convertBody(body []byte) (*questgraph.Graph, error) {
	doc, err := yamldoc.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return questgraph.Convert(doc)
}

func badDocument(c fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest
	if errors.Is(err, questgraph.ErrMalformedQuestRecord) {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
