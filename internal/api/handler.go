package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Spoje-NET/abo-parser/internal/models"
	"github.com/Spoje-NET/abo-parser/internal/parser"
	"github.com/Spoje-NET/abo-parser/internal/report"
	"github.com/Spoje-NET/abo-parser/internal/store"
	"github.com/Spoje-NET/abo-parser/internal/writer"
)

// ParseResponse is the JSON response from the /api/parse endpoint.
type ParseResponse struct {
	Success  bool                   `json:"success"`
	Error    string                 `json:"error,omitempty"`
	ID       string                 `json:"id,omitempty"`
	Archived bool                   `json:"archived,omitempty"`
	Format   models.Format          `json:"format,omitempty"`
	Summary  *report.Summary        `json:"summary,omitempty"`
	Document *models.ParsedDocument `json:"document,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	// Parser is the default input normalization; requests may override it.
	Parser parser.Config
	// Store archives documents on request. Nil disables archiving.
	Store   store.Repository
	Log     logrus.FieldLogger
	Version string
	// IncludeHeader is passed to the CSV writer.
	IncludeHeader bool
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(r fiber.Router) {
	r.Get("/api/health", h.HandleHealth)
	r.Post("/api/parse", h.HandleParse)
	r.Get("/api/documents", h.HandleListDocuments)
	r.Get("/api/documents/:id", h.HandleGetDocument)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": h.Version,
		"archive": h.Store != nil,
	})
}

// HandleParse decodes an uploaded ABO file. The document is taken from the
// multipart field "file" or, for any other accepted content type, from the
// raw request body.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	data, name, err := readUpload(c)
	if err != nil {
		return err
	}

	cfg := h.Parser
	if enc := c.FormValue("encoding"); enc != "" {
		cfg.Encoding = enc
	}
	if convert := c.FormValue("convert"); convert != "" {
		cfg.ConvertEncoding = convert != "false" && convert != "0"
	}

	format := strings.ToLower(c.FormValue("format", writer.FormatJSON))
	var w writer.Writer
	if format != writer.FormatJSON {
		if w, err = writer.New(format, writer.Options{IncludeHeader: h.IncludeHeader}); err != nil {
			return writeError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	doc, err := parser.New(cfg, parser.WithLogger(h.logger())).Parse(data)
	if err != nil {
		if errors.Is(err, parser.ErrUnknownEncoding) {
			return writeError(c, fiber.StatusBadRequest, err.Error())
		}
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Parsing failed: %v", err))
	}
	if len(doc.RawRecords) == 0 {
		return writeError(c, fiber.StatusUnprocessableEntity, "No records found in the uploaded document.")
	}

	var id string
	archived := false
	if c.FormValue("archive") == "true" {
		if h.Store == nil {
			return writeError(c, fiber.StatusBadRequest, "Archiving is not enabled on this server.")
		}
		if id, err = h.Store.SaveDocument(name, doc); err != nil {
			return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("Archiving failed: %v", err))
		}
		archived = true
	}

	h.logger().WithFields(logrus.Fields{
		"id":           id,
		"name":         name,
		"format":       doc.Format,
		"transactions": len(doc.Transactions),
		"archived":     archived,
	}).Info("document parsed")

	if w != nil {
		var buf bytes.Buffer
		if err := w.Write(&buf, doc); err != nil {
			return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("Rendering failed: %v", err))
		}
		if archived {
			c.Set("X-Document-Id", id)
		}
		c.Set(fiber.HeaderContentType, writer.ContentType(format))
		return c.Send(buf.Bytes())
	}

	summary := report.Summarize(doc)
	return c.JSON(ParseResponse{
		Success:  true,
		ID:       id,
		Archived: archived,
		Format:   doc.Format,
		Summary:  &summary,
		Document: doc,
	})
}

func (h *Handler) HandleListDocuments(c *fiber.Ctx) error {
	if h.Store == nil {
		return writeError(c, fiber.StatusNotFound, "Archiving is not enabled on this server.")
	}
	docs, err := h.Store.ListDocuments()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "documents": docs})
}

func (h *Handler) HandleGetDocument(c *fiber.Ctx) error {
	if h.Store == nil {
		return writeError(c, fiber.StatusNotFound, "Archiving is not enabled on this server.")
	}
	id := c.Params("id")
	doc, err := h.Store.GetDocument(id)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return writeError(c, fiber.StatusNotFound, err.Error())
		}
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	summary := report.Summarize(doc)
	return c.JSON(ParseResponse{
		Success:  true,
		ID:       id,
		Archived: true,
		Format:   doc.Format,
		Summary:  &summary,
		Document: doc,
	})
}

// readUpload returns the uploaded document and a display name for it.
func readUpload(c *fiber.Ctx) ([]byte, string, error) {
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))

	switch {
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, "", fiber.NewError(fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to open uploaded file.")
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to read uploaded file.")
		}
		return data, fh.Filename, nil

	case contentType == "",
		strings.HasPrefix(contentType, fiber.MIMETextPlain),
		strings.HasPrefix(contentType, fiber.MIMEOctetStream):
		body := c.Body()
		if len(body) == 0 {
			return nil, "", fiber.NewError(fiber.StatusBadRequest, "Request body is empty.")
		}
		data := make([]byte, len(body))
		copy(data, body)
		return data, c.FormValue("name", "upload"), nil

	default:
		return nil, "", fiber.NewError(fiber.StatusUnsupportedMediaType,
			fmt.Sprintf("Unsupported content type %q. Send multipart/form-data or the raw file.", contentType))
	}
}

var discardLogger = func() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}()

func (h *Handler) logger() logrus.FieldLogger {
	if h.Log == nil {
		return discardLogger
	}
	return h.Log
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ParseResponse{
		Success: false,
		Error:   msg,
	})
}
