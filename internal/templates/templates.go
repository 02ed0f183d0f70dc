// internal/templates/templates.go
package templates

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin"
)

//go:embed *.html
var files embed.FS

// LoadTemplates parses the embedded HTML templates and registers them with the router.
func LoadTemplates(router *gin.Engine) error {
	tmpl, err := template.ParseFS(files, "*.html")
	if err != nil {
		return fmt.Errorf("parsing embedded templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)
	return nil
}
