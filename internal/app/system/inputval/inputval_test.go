package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},

		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{"user @example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestValidate_Struct(t *testing.T) {
	type loginForm struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}

	res := Validate(loginForm{Email: "dana@example.com", Password: "longenough"})
	if res.HasErrors() {
		t.Errorf("expected valid form, got %q", res.First())
	}

	res = Validate(loginForm{Email: "not-an-email", Password: "short"})
	if !res.HasErrors() {
		t.Fatal("expected validation errors")
	}
	if len(res.All()) != 2 {
		t.Errorf("expected 2 problems, got %d", len(res.All()))
	}
	if res.First() == "" {
		t.Error("expected a first problem message")
	}
}

func TestValidate_RequiredMessage(t *testing.T) {
	type form struct {
		Notes string `validate:"required"`
	}
	res := Validate(form{})
	if res.First() != "Notes is required." {
		t.Errorf("message: got %q", res.First())
	}
}
