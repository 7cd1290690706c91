package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name        string
		total, page int
		wantNumber  int
		wantPages   int
		wantStart   int
		wantEnd     int
	}{
		{"empty collection", 0, 1, 1, 0, 0, 0},
		{"single partial page", 7, 1, 1, 1, 0, 7},
		{"exact page boundary", 20, 2, 2, 2, 10, 20},
		{"middle page", 35, 3, 3, 4, 20, 30},
		{"last short page", 35, 4, 4, 4, 30, 35},
		{"page past the end clamps", 35, 9, 4, 4, 30, 35},
		{"page below one clamps", 35, 0, 1, 4, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.total, tt.page, PageSize)
			assert.Equal(t, tt.wantNumber, p.Number)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, tt.wantEnd, p.End)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestPaginate_DefaultsSize(t *testing.T) {
	p := Paginate(25, 2, 0)
	assert.Equal(t, 10, p.Start)
	assert.Equal(t, 20, p.End)
	assert.Equal(t, 3, p.TotalPages)
}
