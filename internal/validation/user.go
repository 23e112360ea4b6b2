package validation

import (
	"net/mail"
	"strings"
)

// FieldError описывает ошибку валидации одного поля.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const minPasswordLen = 3

// ValidateName проверяет, что имя не пустое и не состоит из одних пробелов.
func ValidateName(name string) *FieldError {
	if strings.TrimSpace(name) == "" {
		return &FieldError{Field: "name", Message: "Имя обязательно"}
	}
	return nil
}

// ValidateEmail проверяет синтаксис email и обязательный суффикс ".com".
func ValidateEmail(email string) *FieldError {
	if strings.TrimSpace(email) == "" {
		return &FieldError{Field: "email", Message: "Email обязателен"}
	}
	addr, err := mail.ParseAddress(email)
	// mail.ParseAddress принимает форму "Имя <адрес>", нам нужен голый адрес
	if err != nil || addr.Address != email {
		return &FieldError{Field: "email", Message: "Некорректный формат email"}
	}
	if !strings.HasSuffix(email, ".com") {
		return &FieldError{Field: "email", Message: "Email должен заканчиваться на .com"}
	}
	return nil
}

// ValidatePassword проверяет минимальную длину пароля.
func ValidatePassword(password string) *FieldError {
	if strings.TrimSpace(password) == "" {
		return &FieldError{Field: "password", Message: "Пароль обязателен"}
	}
	if len([]rune(password)) < minPasswordLen {
		return &FieldError{Field: "password", Message: "Пароль должен содержать минимум 3 символа"}
	}
	return nil
}

// ValidateCreateUser проверяет входные данные на создание пользователя.
// Чистая функция без побочных эффектов: пустой срез = данные корректны.
func ValidateCreateUser(name, email, password string) []FieldError {
	var errs []FieldError
	if fe := ValidateName(name); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := ValidateEmail(email); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := ValidatePassword(password); fe != nil {
		errs = append(errs, *fe)
	}
	return errs
}

// ValidateUpdateUser проверяет входные данные на обновление пользователя.
// Пароль через обновление не проходит, поэтому здесь не проверяется.
func ValidateUpdateUser(name, email string) []FieldError {
	var errs []FieldError
	if fe := ValidateName(name); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := ValidateEmail(email); fe != nil {
		errs = append(errs, *fe)
	}
	return errs
}
