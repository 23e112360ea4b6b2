package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(errs []FieldError) []string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestValidateCreateUser_Valid(t *testing.T) {
	errs := ValidateCreateUser("John Doe", "john@example.com", "secret")
	assert.Empty(t, errs)
}

func TestValidateCreateUser_AllFieldsInvalid(t *testing.T) {
	errs := ValidateCreateUser("   ", "not-an-email", "ab")
	require.Len(t, errs, 3)
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fieldsOf(errs))
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"обычное имя", "John Doe", false},
		{"пустая строка", "", true},
		{"одни пробелы", "   \t", true},
		{"однобуквенное имя", "J", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := ValidateName(tt.input)
			if tt.wantErr {
				require.NotNil(t, fe)
				assert.Equal(t, "name", fe.Field)
			} else {
				assert.Nil(t, fe)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"корректный .com", "john@example.com", false},
		{"пустой", "", true},
		{"без @", "johnexample.com", true},
		{"без домена", "john@", true},
		{"не .com", "john@example.org", true},
		{"с пробелом", "john doe@example.com", true},
		{"субдомен .com", "john@mail.example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := ValidateEmail(tt.input)
			if tt.wantErr {
				require.NotNil(t, fe)
				assert.Equal(t, "email", fe.Field)
			} else {
				assert.Nil(t, fe)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"минимальная длина", "abc", false},
		{"длинный пароль", "correct-horse-battery", false},
		{"слишком короткий", "ab", true},
		{"пустой", "", true},
		{"кириллица считается по рунам", "пар", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := ValidatePassword(tt.input)
			if tt.wantErr {
				require.NotNil(t, fe)
				assert.Equal(t, "password", fe.Field)
			} else {
				assert.Nil(t, fe)
			}
		})
	}
}

func TestValidateUpdateUser_IgnoresPassword(t *testing.T) {
	errs := ValidateUpdateUser("Jane Roe", "jane@example.com")
	assert.Empty(t, errs)
}
