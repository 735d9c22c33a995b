// Package api exposes a table workspace over HTTP so remote editors can
// browse tables, follow references and install edited tables.
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/hexdbc/internal/dbccache"
	"github.com/samcharles93/hexdbc/internal/logger"
	"github.com/samcharles93/hexdbc/internal/version"
)

const (
	HeaderVersion = "X-Hexdbc-Version"

	defaultRowLimit = 100
	maxRowLimit     = 1000
	maxUploadBytes  = 256 << 20
)

type Server struct {
	ws  *Workspace
	log logger.Logger
}

func NewServer(ws *Workspace, log logger.Logger) *Server {
	if ws == nil {
		ws = NewWorkspace(nil, nil)
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Server{ws: ws, log: log}
}

func (s *Server) Register(e *echo.Echo) {
	e.Use(versionHeader(version.String()))

	// Tables
	e.GET("/v1/tables", s.handleListTables)
	e.GET("/v1/tables/:name", s.handleGetTable)
	e.PUT("/v1/tables/:name", s.handlePutTable)
	e.GET("/v1/tables/:name/rows", s.handleRows)
	e.GET("/v1/tables/:name/entries/:id", s.handleGetEntry)
	e.GET("/v1/tables/:name/entries/:id/preview", s.handlePreview)

	// Relations
	e.GET("/v1/relations/:table", s.handleRelations)
	e.GET("/v1/relations/:table/:field", s.handleResolve)
}

func versionHeader(v string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			c.Response().Header().Set(HeaderVersion, v)
			return next(c)
		}
	}
}

func (s *Server) handleListTables(c *echo.Context) error {
	root, names := s.ws.Tables()
	return c.JSON(http.StatusOK, TableListResponse{Object: "list", Root: root, Data: names})
}

func (s *Server) handleGetTable(c *echo.Context) error {
	resp, err := s.ws.Table(c.Param("name"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePutTable(c *echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return writeBadRequest(c, "table name is required")
	}
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxUploadBytes+1))
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if len(data) > maxUploadBytes {
		return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error",
			fmt.Sprintf("table body exceeds %d bytes", maxUploadBytes), "", "")
	}

	rev, f, err := s.ws.Install(name, data)
	if err != nil {
		return writeErr(c, err)
	}
	s.log.Info("table installed", "table", name, "revision", rev, "records", len(f.Records))
	return c.JSON(http.StatusOK, OverrideResponse{
		Object:      "table.revision",
		Table:       name,
		Revision:    rev,
		RecordCount: uint32(len(f.Records)),
	})
}

func (s *Server) handleRows(c *echo.Context) error {
	name := c.Param("name")
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return writeErr(c, err)
	}
	limit, err := queryInt(c, "limit", defaultRowLimit)
	if err != nil {
		return writeErr(c, err)
	}
	limit = min(limit, maxRowLimit)

	rows, total, err := s.ws.Rows(name, offset, limit)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, RowsResponse{
		Object: "list",
		Table:  name,
		Offset: offset,
		Total:  total,
		Data:   rows,
	})
}

func (s *Server) handleGetEntry(c *echo.Context) error {
	name := c.Param("name")
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		return writeErr(c, err)
	}
	e, err := s.ws.Entry(name, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, EntryResponse{Object: "entry", Entry: e})
}

func (s *Server) handlePreview(c *echo.Context) error {
	name := c.Param("name")
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		return writeErr(c, err)
	}
	maxFields, err := queryInt(c, "max_fields", dbccache.DefaultPreviewFields)
	if err != nil {
		return writeErr(c, err)
	}
	text, err := s.ws.Preview(name, id, maxFields)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, PreviewResponse{Object: "preview", Table: name, ID: id, Preview: text})
}

func (s *Server) handleRelations(c *echo.Context) error {
	table := c.Param("table")
	return c.JSON(http.StatusOK, RelationsResponse{
		Object: "relations",
		Table:  table,
		Data:   s.ws.Relations(table),
	})
}

func (s *Server) handleResolve(c *echo.Context) error {
	var value *uint32
	if raw := c.QueryParam("value"); raw != "" {
		v, err := parseID(raw, "value")
		if err != nil {
			return writeErr(c, err)
		}
		value = &v
	}
	resp, err := s.ws.Resolve(c.Param("table"), c.Param("field"), value)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("resolve failed", "table", c.Param("table"), "field", c.Param("field"), "err", err)
		}
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
