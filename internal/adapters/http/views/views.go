package views

import (
	"embed"
	"net/http"
	"regexp"
	"strings"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html
var files embed.FS

var safeClass = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)

// NewEngine returns the html template engine over the embedded page templates
func NewEngine() *html.Engine {
	engine := html.NewFileSystem(http.FS(files), ".html")
	engine.AddFunc("statusClass", StatusClass)
	return engine
}

// StatusClass turns a status name into a css class, or "unknown" when the
// name is empty or has unsafe characters
func StatusClass(status string) string {
	class := strings.ToLower(status)
	if class == "" || !safeClass.MatchString(class) {
		return "unknown"
	}
	return class
}
