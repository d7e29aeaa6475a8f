package api

import (
	"campaignmanager/middleware"
	"campaignmanager/storage"
	"campaignmanager/utils"

	"github.com/gofiber/fiber/v2"
)

// DataHandler exposes export, import and maintenance of the whole store
type DataHandler struct {
	store *storage.Store
}

// NewDataHandler creates a new data handler
func NewDataHandler(store *storage.Store) *DataHandler {
	return &DataHandler{store: store}
}

// Export returns a snapshot of every user and campaign
func (h *DataHandler) Export(c *fiber.Ctx) error {
	return c.JSON(h.store.ExportAll())
}

// Import replaces the collections present in the request body
func (h *DataHandler) Import(c *fiber.Ctx) error {
	if !h.store.ImportJSON(c.Body()) {
		return utils.BadRequestError("data_import_failed", "Failed to import data", nil)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": message(c, "data_imported"),
	})
}

// Integrity reports corrupted collections and orphaned campaigns
func (h *DataHandler) Integrity(c *fiber.Ctx) error {
	report := h.store.CheckIntegrity()

	resp := fiber.Map{
		"isValid":  report.IsValid,
		"issues":   report.Issues,
		"orphaned": report.Orphaned,
	}
	if report.Orphaned > 0 {
		resp["summary"] = utils.TPlural(middleware.Localizer(c), "orphaned_campaigns", report.Orphaned)
	}
	return c.JSON(resp)
}

// Info reports quota usage
func (h *DataHandler) Info(c *fiber.Ctx) error {
	info := h.store.Info()
	if info == nil {
		return utils.InternalServerError("storage_unavailable", "Storage unavailable", nil)
	}
	return c.JSON(info)
}

// Reset removes all users, campaigns and the session, then reseeds
func (h *DataHandler) Reset(c *fiber.Ctx) error {
	h.store.ClearAll()
	return c.JSON(fiber.Map{
		"success": true,
		"message": message(c, "data_reset"),
	})
}
