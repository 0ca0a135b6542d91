package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryFor(t *testing.T, rawQuery string) Query {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/items?"+rawQuery, nil)
	return FromContext(c)
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		want     Query
	}{
		{"defaults", "", Query{Page: 1, Size: defaultSize}},
		{"explicit", "page=3&size=25", Query{Page: 3, Size: 25}},
		{"garbage", "page=abc&size=xyz", Query{Page: 1, Size: defaultSize}},
		{"negative page", "page=-2", Query{Page: 1, Size: defaultSize}},
		{"zero size", "size=0", Query{Page: 1, Size: 1}},
		{"oversized", "size=5000", Query{Page: 1, Size: maxSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, queryFor(t, tt.rawQuery))
		})
	}
}

func TestMetaDerivesPageCounts(t *testing.T) {
	m := Query{Page: 2, Size: 10}.meta(25)
	assert.Equal(t, int64(25), m.Total)
	assert.Equal(t, 3, m.TotalPage)
	assert.True(t, m.HasNextPage)

	m = Query{Page: 3, Size: 10}.meta(25)
	assert.False(t, m.HasNextPage)

	m = Query{Page: 1, Size: 10}.meta(0)
	assert.Equal(t, 0, m.TotalPage)
	assert.False(t, m.HasNextPage)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Query{Page: 1, Size: 10}.offset())
	assert.Equal(t, 40, Query{Page: 5, Size: 10}.offset())
}
