package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	html := Render("# Title\n\nSome **bold** text")
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", Render(""))
	assert.Equal(t, "", Render("   \n  "))
}

func TestRenderTaskList(t *testing.T) {
	html := Render("- [x] done\n- [ ] pending")
	assert.Contains(t, html, "checkbox")
}
