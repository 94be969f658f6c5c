// Package view отрисовывает витрину: сетку товаров, панель корзины и окно
// подтверждения заказа. Все тексты из данных каталога экранируются html/template.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.gohtml")
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Page(w io.Writer, page Page) error {
	return r.execute(w, "page", page)
}

func (r *Renderer) Grid(w io.Writer, cards []Card) error {
	return r.execute(w, "grid", cards)
}

func (r *Renderer) Cart(w io.Writer, panel CartPanel) error {
	return r.execute(w, "cart", panel)
}

func (r *Renderer) Order(w io.Writer, panel OrderPanel) error {
	return r.execute(w, "order", panel)
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
