package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMeta(t *testing.T) {
	tests := []struct {
		name       string
		params     *Params
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"first of many", &Params{Page: 1, Limit: 20}, 45, 3, true, false},
		{"middle page", &Params{Page: 2, Limit: 20}, 45, 3, true, true},
		{"last page", &Params{Page: 3, Limit: 20}, 45, 3, false, true},
		{"exact fit", &Params{Page: 1, Limit: 20}, 40, 2, true, false},
		{"empty", &Params{Page: 1, Limit: 20}, 0, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := GetMeta(tt.params, tt.total)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.hasNext, meta.HasNext)
			assert.Equal(t, tt.hasPrev, meta.HasPrev)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}
