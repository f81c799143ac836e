package templates

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed *.tmpl
var templateFS embed.FS

// OrderPlacedData данные для письма об оформленном заказе
type OrderPlacedData struct {
	OrderNumber string
	SkuCode     string
	Quantity    int64
	Price       float64
}

// Renderer рендерит тексты писем из шаблонов
type Renderer struct {
	templates *template.Template
}

// NewRenderer парсит встроенные шаблоны
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// OrderPlaced рендерит письмо об оформленном заказе
func (r *Renderer) OrderPlaced(data OrderPlacedData) (string, error) {
	var sb strings.Builder
	if err := r.templates.ExecuteTemplate(&sb, "order_placed.tmpl", data); err != nil {
		return "", fmt.Errorf("render order_placed: %w", err)
	}
	return sb.String(), nil
}
