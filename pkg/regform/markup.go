package regform

import "github.com/vango-dev/regform/pkg/dom"

// DefaultSelector locates the form inside DefaultMarkup.
const DefaultSelector = ".reg_form_block form"

// DefaultContainers are tried in order to find the element that receives a
// field's error annotation.
var DefaultContainers = []string{".form_input", ".b-label"}

// DefaultMarkup builds the registration page fragment. Text inputs are
// wrapped in div.form_input and the consent checkbox in label.b-label.
func DefaultMarkup() *dom.Node {
	return dom.Div(dom.Class("reg_form_block"),
		dom.H2(dom.Text("Регистрация")),
		dom.Form(dom.Action("#"), dom.Method("post"), dom.NoValidate(),
			textInput(Email, "email", "E-mail*", "email"),
			textInput(Organization, "text", "Название организации", "organization"),
			textInput(FullName, "text", "ФИО", "name"),
			textInput(Password, "password", "Пароль", "new-password"),
			textInput(ConfirmPassword, "password", "Подтверждение пароля", "new-password"),
			dom.Label(dom.Class("b-label"),
				dom.Input(dom.Type("checkbox"), dom.Name(string(Consent))),
				dom.Span(dom.Text("Я даю согласие на обработку персональных данных")),
			),
			dom.Button(dom.Type("submit"), dom.Class("btn"), dom.Text("Зарегистрироваться")),
		),
	)
}

func textInput(role Role, typ, placeholder, autocomplete string) *dom.Node {
	return dom.Div(dom.Class("form_input"),
		dom.Input(
			dom.Type(typ),
			dom.Name(string(role)),
			dom.Placeholder(placeholder),
			dom.Autocomplete(autocomplete),
		),
	)
}
