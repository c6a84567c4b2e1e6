package http

import (
	"bytes"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/backup"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
)

// BackupHandler exporta e importa respaldos completos.
type BackupHandler struct {
	uc *backup.UseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *backup.UseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Export GET /api/backup/export
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	c.Attachment(h.uc.ExportFilename())
	c.Type("json", "utf-8")
	return h.uc.WriteExport(c.Context(), c)
}

// Import POST /api/backup/import?mode=replace|merge
//
// Acepta multipart con el campo "file" o el JSON crudo en el cuerpo.
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	mode, err := backup.ParseMode(c.Query("mode"))
	if err != nil {
		return writeError(c, err)
	}

	var r io.Reader
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "falta el archivo (campo file)"})
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, err)
		}
		defer f.Close()
		r = f
	} else {
		if len(c.Body()) == 0 {
			return writeError(c, domain.ErrInvalidFormat)
		}
		r = bytes.NewReader(c.Body())
	}

	res, err := h.uc.Import(c.Context(), r, mode)
	if !applied(c, err) {
		return writeError(c, err)
	}
	return c.JSON(res)
}
