package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formField текстовое поле или выбор из фиксированного списка.
type formField struct {
	label   string
	input   textinput.Model
	choices []string
	choice  int
}

func (f formField) isChoice() bool {
	return len(f.choices) > 0
}

func (f formField) value() string {
	if f.isChoice() {
		return f.choices[f.choice]
	}
	return f.input.Value()
}

// form последовательность полей с одним фокусом.
type form struct {
	fields []formField
	focus  int
}

func newInput(password bool) textinput.Model {
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 0
	in.Width = 48
	in.Cursor.SetMode(cursor.CursorStatic)
	if password {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

func textField(label string) formField {
	return formField{label: label, input: newInput(false)}
}

func passwordField(label string) formField {
	return formField{label: label, input: newInput(true)}
}

func choiceField(label string, choices []string) formField {
	return formField{label: label, choices: choices}
}

func newForm(fields ...formField) form {
	f := form{fields: fields}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(i int) {
	n := len(f.fields)
	f.focus = ((i % n) + n) % n
	for j := range f.fields {
		if f.fields[j].isChoice() {
			continue
		}
		if j == f.focus {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

func (f *form) next() { f.setFocus(f.focus + 1) }
func (f *form) prev() { f.setFocus(f.focus - 1) }

// shiftChoice двигает выбор в поле под фокусом. Для текстовых полей ничего не делает.
func (f *form) shiftChoice(delta int) bool {
	field := &f.fields[f.focus]
	if !field.isChoice() {
		return false
	}
	n := len(field.choices)
	field.choice = ((field.choice+delta)%n + n) % n
	return true
}

// update передаёт ввод текстовому полю под фокусом.
func (f *form) update(msg tea.Msg) tea.Cmd {
	field := &f.fields[f.focus]
	if field.isChoice() {
		return nil
	}
	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return cmd
}

func (f form) value(i int) string {
	return f.fields[i].value()
}

// reset очищает ввод и возвращает фокус на первое поле.
func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].input.Reset()
		f.fields[i].choice = 0
	}
	f.setFocus(0)
}

func (f form) view(st styles) string {
	var b strings.Builder
	for i, field := range f.fields {
		label := st.label.Render(field.label)
		if i == f.focus {
			label = st.focused.Render("▸ " + field.label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		if field.isChoice() {
			for j, c := range field.choices {
				if j == field.choice {
					b.WriteString(st.selected.Render("(•) " + c))
				} else {
					b.WriteString(st.muted.Render("( ) " + c))
				}
				b.WriteString("  ")
			}
		} else {
			b.WriteString(field.input.View())
		}
		b.WriteString("\n\n")
	}
	return b.String()
}
