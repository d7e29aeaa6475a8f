package models

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func campaignsN(n int) []Campaign {
	out := make([]Campaign, n)
	for i := range out {
		out[i] = Campaign{ID: fmt.Sprintf("c%d", i)}
	}
	return out
}

func TestNewPaginatedCampaigns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		total     int
		page      uint32
		pageSize  uint32
		wantIDs   []string
		wantPages uint32
		wantNext  bool
		wantPrev  bool
	}{
		{name: "first page", total: 5, page: 1, pageSize: 2, wantIDs: []string{"c0", "c1"}, wantPages: 3, wantNext: true},
		{name: "middle page", total: 5, page: 2, pageSize: 2, wantIDs: []string{"c2", "c3"}, wantPages: 3, wantNext: true, wantPrev: true},
		{name: "last partial page", total: 5, page: 3, pageSize: 2, wantIDs: []string{"c4"}, wantPages: 3, wantPrev: true},
		{name: "past the end", total: 5, page: 9, pageSize: 2, wantIDs: []string{}, wantPages: 3, wantPrev: true},
		{name: "empty", total: 0, page: 1, pageSize: 10, wantIDs: []string{}, wantPages: 1},
		{name: "huge page", total: 150, page: 21474837, pageSize: 200, wantIDs: []string{}, wantPages: 1, wantPrev: true},
		{name: "max page", total: 3, page: math.MaxUint32, pageSize: math.MaxUint32, wantIDs: []string{}, wantPages: 1, wantPrev: true},
		{name: "zero page is first", total: 3, page: 0, pageSize: 10, wantIDs: []string{"c0", "c1", "c2"}, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewPaginatedCampaigns(campaignsN(tt.total), tt.page, tt.pageSize)

			ids := make([]string, 0, len(got.Campaigns))
			for _, c := range got.Campaigns {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantPages, got.TotalPages)
			assert.Equal(t, uint32(tt.total), got.TotalCampaigns)
			assert.Equal(t, tt.wantNext, got.HasNext)
			assert.Equal(t, tt.wantPrev, got.HasPrev)
		})
	}
}
