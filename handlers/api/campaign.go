package api

import (
	"encoding/json"
	"strings"

	"campaignmanager/middleware"
	"campaignmanager/models"
	"campaignmanager/storage"
	"campaignmanager/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// CampaignHandler serves the current user's campaigns
type CampaignHandler struct {
	campaigns *storage.CampaignRepository
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaigns *storage.CampaignRepository) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

type createCampaignRequest struct {
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type updateCampaignRequest struct {
	Name   *string         `json:"name"`
	Type   string          `json:"type"`
	Status *string         `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// List returns the current user's campaigns filtered by the type, status
// and search query parameters, newest update first
func (h *CampaignHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	filter := models.SearchFilter{
		Type:         models.CampaignType(filterValue(c.Query("type"))),
		Status:       models.CampaignStatus(filterValue(c.Query("status"))),
		NameContains: strings.TrimSpace(c.Query("search")),
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return utils.BadRequestError("campaign_type_invalid", "Invalid campaign type", nil)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return utils.BadRequestError("campaign_status_invalid", "Invalid campaign status", nil)
	}

	pageSize := queryUint(c, "page_size", defaultPageSize)
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	results := h.campaigns.Search(user.ID, filter)

	return c.JSON(models.NewPaginatedCampaigns(results, queryUint(c, "page", 1), pageSize))
}

// Stats returns the current user's campaign counts
func (h *CampaignHandler) Stats(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(h.campaigns.Stats(user.ID))
}

// Create stores a new campaign for the current user. Missing data gets the
// editor defaults for the type.
func (h *CampaignHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req createCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("request_invalid", "Invalid request", err)
	}

	name := strings.TrimSpace(utils.StripHTML(req.Name))
	if name == "" {
		return utils.BadRequestError("campaign_name_required", "Campaign name is required", nil)
	}

	campaignType := models.CampaignType(req.Type)
	if !campaignType.Valid() {
		return utils.BadRequestError("campaign_type_invalid", "Invalid campaign type", nil)
	}

	status := models.CampaignStatus(req.Status)
	if status != "" && !status.Valid() {
		return utils.BadRequestError("campaign_status_invalid", "Invalid campaign status", nil)
	}

	data, err := decodeData(campaignType, req.Data)
	if err != nil {
		return err
	}
	if data == nil {
		data = models.DefaultData(campaignType)
	}

	created := h.campaigns.Create(models.NewCampaign{
		UserID: user.ID,
		Name:   name,
		Type:   campaignType,
		Status: status,
		Data:   utils.SanitizeCampaignData(data),
	})
	if created == nil || h.campaigns.GetByID(created.ID) == nil {
		return utils.InternalServerError("campaign_save_failed", "Failed to save campaign", nil)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Get returns one of the current user's campaigns
func (h *CampaignHandler) Get(c *fiber.Ctx) error {
	campaign, err := h.owned(c)
	if err != nil {
		return err
	}
	return c.JSON(campaign)
}

// Update applies a partial update. A data bag is decoded as the requested
// type, or the campaign's current type when none is given.
func (h *CampaignHandler) Update(c *fiber.Ctx) error {
	existing, err := h.owned(c)
	if err != nil {
		return err
	}

	var req updateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("request_invalid", "Invalid request", err)
	}

	var upd models.CampaignUpdate
	if req.Name != nil {
		name := strings.TrimSpace(utils.StripHTML(*req.Name))
		if name == "" {
			return utils.BadRequestError("campaign_name_required", "Campaign name is required", nil)
		}
		upd.Name = &name
	}
	if req.Status != nil {
		status := models.CampaignStatus(*req.Status)
		if !status.Valid() {
			return utils.BadRequestError("campaign_status_invalid", "Invalid campaign status", nil)
		}
		upd.Status = &status
	}

	campaignType := existing.Type
	if req.Type != "" {
		campaignType = models.CampaignType(req.Type)
		if !campaignType.Valid() {
			return utils.BadRequestError("campaign_type_invalid", "Invalid campaign type", nil)
		}
		if campaignType != existing.Type && len(req.Data) == 0 {
			return utils.BadRequestError("campaign_type_change", "Changing the type requires new data", nil)
		}
	}
	data, err := decodeData(campaignType, req.Data)
	if err != nil {
		return err
	}
	if data != nil {
		upd.Data = utils.SanitizeCampaignData(data)
	}

	updated := h.campaigns.Update(existing.ID, upd)
	if updated == nil {
		return utils.NotFoundError("campaign_not_found", "Campaign not found", nil)
	}
	return c.JSON(updated)
}

// Delete removes one of the current user's campaigns
func (h *CampaignHandler) Delete(c *fiber.Ctx) error {
	campaign, err := h.owned(c)
	if err != nil {
		return err
	}

	h.campaigns.Delete(campaign.ID)
	if h.campaigns.GetByID(campaign.ID) != nil {
		return utils.InternalServerError("campaign_delete_failed", "Failed to delete campaign", nil)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message(c, "campaign_deleted"),
	})
}

// Duplicate copies one of the current user's campaigns
func (h *CampaignHandler) Duplicate(c *fiber.Ctx) error {
	campaign, err := h.owned(c)
	if err != nil {
		return err
	}

	dup := h.campaigns.Duplicate(campaign.ID)
	if dup == nil {
		return utils.NotFoundError("campaign_not_found", "Campaign not found", nil)
	}
	return c.Status(fiber.StatusCreated).JSON(dup)
}

// owned loads the campaign named by the id route parameter. Campaigns of
// other users are reported as missing.
func (h *CampaignHandler) owned(c *fiber.Ctx) (*models.Campaign, error) {
	user := middleware.CurrentUser(c)
	campaign := h.campaigns.GetByID(c.Params("id"))
	if campaign == nil || campaign.UserID != user.ID {
		return nil, utils.NotFoundError("campaign_not_found", "Campaign not found", nil)
	}
	return campaign, nil
}

func decodeData(t models.CampaignType, raw json.RawMessage) (models.CampaignData, error) {
	data, err := models.DecodeCampaignData(t, raw)
	if err != nil {
		return nil, utils.BadRequestError("campaign_data_invalid", "Invalid campaign data", err)
	}
	return data, nil
}

// filterValue maps the "all" choice of the list filters to no filter
func filterValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}
