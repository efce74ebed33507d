package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap привязки клавиш. Часть привязок действует только на
// определённых экранах, см. help в нижней строке.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Next   key.Binding // Следующее поле формы.
	Prev   key.Binding // Предыдущее поле формы.
	Submit key.Binding
	Back   key.Binding

	Toggle  key.Binding // Развернуть или свернуть шаг.
	Refresh key.Binding
	Execute key.Binding
	Status  key.Binding
	Cancel  key.Binding // Отмена подписки.
	Refund  key.Binding
	Confirm key.Binding // Подтверждение оплаты.

	SwitchForm key.Binding // Вход <-> регистрация.
	Logout     key.Binding
	Quit       key.Binding
}

// DefaultKeyMap набор привязок по умолчанию. Буквенные клавиши не
// используются там, где фокус стоит в текстовом поле.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "위"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "아래"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "이전 선택"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "다음 선택"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "다음 칸"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-tab", "이전 칸"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "확인"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "뒤로"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "펼치기/접기"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "새로고침"),
	),
	Execute: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "연구 실행"),
	),
	Status: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "상태 확인"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "구독 취소"),
	),
	Refund: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "환불 요청"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "결제 진행"),
	),
	SwitchForm: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "회원가입/로그인 전환"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "로그아웃"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "종료"),
	),
}
