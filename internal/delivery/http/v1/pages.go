package v1

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

const indexPage = "index.html"

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the HTML pages served by the handler.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

func (h *handlerImpl) HandleIndex(c *gin.Context) {
	data := gin.H{}
	if userID, ok := getUserIDFromContext(c); ok {
		data["user_id"] = userID
	}
	c.HTML(http.StatusOK, indexPage, data)
}
