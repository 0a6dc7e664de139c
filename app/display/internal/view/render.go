package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer 渲染完整页面和 HTMX 局部片段
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderPage 渲染带布局的完整页面
func (r *Renderer) RenderPage(w io.Writer, p *Page) error {
	return r.tmpl.ExecuteTemplate(w, "base", p)
}

// RenderWorkspace 只渲染工作区片段，用于 HTMX 替换
func (r *Renderer) RenderWorkspace(w io.Writer, p *Page) error {
	return r.tmpl.ExecuteTemplate(w, "workspace", p)
}
