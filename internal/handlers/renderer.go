package handlers

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin/render"

	"framestudio/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateFuncs are available to every page template.
var TemplateFuncs = template.FuncMap{
	"price": models.FormatPrice,
}

// HTMLRenderer keeps a separate template set per page so that each page can
// define its own "content" block inside the shared base layout.
type HTMLRenderer struct {
	Templates map[string]*template.Template
}

// NewHTMLRenderer parses every page together with templates/base.html.
func NewHTMLRenderer(pages ...string) (*HTMLRenderer, error) {
	r := &HTMLRenderer{Templates: map[string]*template.Template{}}
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(TemplateFuncs).ParseFS(templateFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.Templates[page] = tmpl
	}
	return r, nil
}

// Instance implements render.HTMLRender.
func (r *HTMLRenderer) Instance(name string, data interface{}) render.Render {
	return render.HTML{
		Template: r.Templates[name],
		Name:     "base",
		Data:     data,
	}
}
