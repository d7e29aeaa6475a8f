package models

// PaginatedCampaigns represents a paginated list of campaigns
type PaginatedCampaigns struct {
	Campaigns      []Campaign `json:"campaigns"`
	Page           uint32     `json:"page"`
	PageSize       uint32     `json:"page_size"`
	TotalPages     uint32     `json:"total_pages"`
	TotalCampaigns uint32     `json:"total_campaigns"`
	HasNext        bool       `json:"has_next"`
	HasPrev        bool       `json:"has_prev"`
}

// NewPaginatedCampaigns slices one page out of the full result set.
// Pages are 1-based; a page past the end yields an empty slice.
func NewPaginatedCampaigns(all []Campaign, page, pageSize uint32) *PaginatedCampaigns {
	if pageSize == 0 {
		pageSize = 1
	}
	if page == 0 {
		page = 1
	}

	total := uint32(len(all))
	totalPages := uint32((uint64(total) + uint64(pageSize) - 1) / uint64(pageSize))
	if totalPages == 0 {
		totalPages = 1
	}

	// uint64 so large page numbers cannot wrap around
	start := uint64(page-1) * uint64(pageSize)
	end := start + uint64(pageSize)
	if start > uint64(total) {
		start = uint64(total)
	}
	if end > uint64(total) {
		end = uint64(total)
	}

	return &PaginatedCampaigns{
		Campaigns:      all[start:end],
		Page:           page,
		PageSize:       pageSize,
		TotalPages:     totalPages,
		TotalCampaigns: total,
		HasNext:        page < totalPages,
		HasPrev:        page > 1,
	}
}
