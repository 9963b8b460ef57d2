package main

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/meikuraledutech/wfgraph"
	"github.com/meikuraledutech/wfgraph/render"
)

type handler struct {
	store  wfgraph.Store
	logger *slog.Logger
}

// graphBody is the POST /graphs payload; ID is optional.
type graphBody struct {
	ID string `json:"id"`
	wfgraph.Document
}

func newApp(store wfgraph.Store, logger *slog.Logger, bodyLimit int) *fiber.App {
	h := &handler{store: store, logger: logger}

	app := fiber.New(fiber.Config{
		BodyLimit:    bodyLimit,
		ErrorHandler: h.errorHandler,
	})

	// ── Schema ────────────────────────────────────────────────────────
	app.Post("/schema", h.createSchema)
	app.Delete("/schema", h.dropSchema)

	// ── Graphs ────────────────────────────────────────────────────────
	app.Post("/graphs", h.saveGraph)
	app.Get("/graphs", h.listGraphs)
	app.Get("/graphs/:id", h.getGraph)
	app.Delete("/graphs/:id", h.deleteGraph)
	app.Get("/graphs/:id/nodes", h.listNodes)
	app.Get("/graphs/:id/edges", h.listEdges)
	app.Get("/graphs/:id/dot", h.dot)
	app.Get("/graphs/:id/image", h.image)

	// ── Loop topology ─────────────────────────────────────────────────
	app.Get("/graphs/:id/nodes/:node/driver", h.loopDriver)
	app.Get("/graphs/:id/nodes/:node/reset", h.resetPaths)
	app.Get("/graphs/:id/nodes/:node/failure", h.failurePaths)

	return app
}

// errorHandler renders every error as {"error": msg} and logs server-side failures.
func (h *handler) errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := err.Error()

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code, msg = fe.Code, fe.Message
	case errors.Is(err, wfgraph.ErrInvalidGraph), errors.Is(err, wfgraph.ErrTopology):
		code = fiber.StatusUnprocessableEntity
	case errors.Is(err, wfgraph.ErrNodeNotFound):
		code = fiber.StatusNotFound
	}

	if code >= fiber.StatusInternalServerError {
		h.logger.Error("request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Any("error", err))
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func (h *handler) createSchema(c fiber.Ctx) error {
	if err := h.store.CreateSchema(c.Context()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "schema created"})
}

func (h *handler) dropSchema(c fiber.Ctx) error {
	if err := h.store.DropSchema(c.Context()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "schema dropped"})
}

func (h *handler) saveGraph(c fiber.Ctx) error {
	var body graphBody
	if err := c.Bind().JSON(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	g, err := body.Build()
	if err != nil {
		h.logger.Info("rejected graph", slog.String("graph_id", body.ID), slog.Any("error", err))
		return err
	}
	id, err := h.store.SaveGraph(c.Context(), body.ID, g)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *handler) listGraphs(c fiber.Ctx) error {
	infos, err := h.store.ListGraphs(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(infos)
}

// loadGraph fetches the graph named by the :id route parameter.
func (h *handler) loadGraph(c fiber.Ctx) (*wfgraph.Graph, error) {
	g, err := h.store.GetGraph(c.Context(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "graph not found")
	}
	return g, nil
}

func (h *handler) getGraph(c fiber.Ctx) error {
	g, err := h.loadGraph(c)
	if err != nil {
		return err
	}
	return c.JSON(g)
}

func (h *handler) deleteGraph(c fiber.Ctx) error {
	if err := h.store.DeleteGraph(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handler) listNodes(c fiber.Ctx) error {
	nodes, err := h.store.ListNodes(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(nodes)
}

func (h *handler) listEdges(c fiber.Ctx) error {
	edges, err := h.store.ListEdges(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(edges)
}

func (h *handler) dot(c fiber.Ctx) error {
	g, err := h.loadGraph(c)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/vnd.graphviz")
	return c.SendString(g.DOT())
}

func (h *handler) image(c fiber.Ctx) error {
	format, err := render.ParseFormat(c.Query("format", string(render.PNG)))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	g, err := h.loadGraph(c)
	if err != nil {
		return err
	}
	img, err := render.Render(c.Context(), g, format)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, format.ContentType())
	return c.Send(img)
}

func (h *handler) loopDriver(c fiber.Ctx) error {
	g, err := h.loadGraph(c)
	if err != nil {
		return err
	}
	node := c.Params("node")
	driver, err := g.LoopDriver(node)
	if err != nil {
		h.queryFailed(c, "loop driver", err)
		return err
	}
	return c.JSON(fiber.Map{"node": node, "driver": driver})
}

func (h *handler) resetPaths(c fiber.Ctx) error {
	g, err := h.loadGraph(c)
	if err != nil {
		return err
	}
	driver := c.Params("node")
	paths, err := g.ResetPaths(driver)
	if err != nil {
		h.queryFailed(c, "reset paths", err)
		return err
	}
	return c.JSON(fiber.Map{"driver": driver, "paths": paths})
}

func (h *handler) failurePaths(c fiber.Ctx) error {
	g, err := h.loadGraph(c)
	if err != nil {
		return err
	}
	node := c.Params("node")
	paths, err := g.FailurePaths(node)
	if err != nil {
		h.queryFailed(c, "failure paths", err)
		return err
	}
	return c.JSON(fiber.Map{"node": node, "paths": paths})
}

func (h *handler) queryFailed(c fiber.Ctx, query string, err error) {
	h.logger.Warn(query+" query failed",
		slog.String("graph_id", c.Params("id")),
		slog.String("node", c.Params("node")),
		slog.Any("error", err))
}
