package regform

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/regform/pkg/dom"
	"github.com/vango-dev/regform/pkg/render"
)

func TestDefaultMarkupShape(t *testing.T) {
	root := DefaultMarkup()

	form := root.QuerySelector(DefaultSelector)
	if form == nil {
		t.Fatal("default selector does not find the form")
	}
	if got := len(form.QuerySelectorAll(".form_input > input")); got != 5 {
		t.Errorf("text inputs = %d, want 5", got)
	}
	if form.QuerySelector(`label.b-label > input[type="checkbox"]`) == nil {
		t.Error("consent checkbox is not inside label.b-label")
	}
}

func TestBindParsedLegacyMarkup(t *testing.T) {
	const legacy = `
<div class="reg_form_block">
  <form>
    <div class="form_input"><input type="text" placeholder="E-mail*"></div>
    <div class="form_input"><input type="text" placeholder="Название организации"></div>
    <div class="form_input"><input type="text" placeholder="ФИО"></div>
    <div class="form_input"><input type="password" placeholder="Пароль"></div>
    <div class="form_input"><input type="password" placeholder="Подтверждение пароля"></div>
    <label class="b-label"><input type="checkbox"> Согласие</label>
  </form>
</div>`

	root, err := dom.ParseHTMLString(legacy)
	if err != nil {
		t.Fatal(err)
	}
	c := Bind(root, DefaultSelector, WithBindings(PlaceholderBindings()))
	if c.Inert() {
		t.Fatal("legacy markup not bound")
	}

	c.Submit(context.Background())

	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(c.Form())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, `<div class="error-message" style="color: #ff0000; font-size: 12px; margin-top: 5px">Введите корректный email адрес</div>`) {
		t.Errorf("rendered form lacks the email annotation:\n%s", html)
	}
	if strings.Count(html, "has-error") != 3 {
		t.Errorf("expected 3 marked containers:\n%s", html)
	}
}
