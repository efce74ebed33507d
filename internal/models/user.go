package models

// SignupRequest тело запроса на регистрацию.
type SignupRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// SignupForm данные формы регистрации. Подтверждение пароля
// проверяется локально и на сервер не уходит.
type SignupForm struct {
	Email           string
	FullName        string
	Password        string
	PasswordConfirm string `validate:"eqfield=Password"`
}

// Request возвращает тело запроса без подтверждения пароля.
func (f SignupForm) Request() SignupRequest {
	return SignupRequest{
		Email:    f.Email,
		FullName: f.FullName,
		Password: f.Password,
	}
}

// Credentials учётные данные для входа. Отправляются формой.
type Credentials struct {
	Email    string
	Password string
}

// TokenResponse ответ на вход.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}
