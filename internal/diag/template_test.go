package diag

import (
	"errors"
	"testing"
)

func TestTemplateArity(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     int
		wantErr  bool
	}{
		{name: "no placeholders", template: "plain message", want: 0},
		{name: "single placeholder", template: "found {0} issues", want: 1},
		{name: "repeated placeholder", template: "{0} and {0} again", want: 1},
		{name: "two placeholders", template: "{0} of {1}", want: 2},
		{name: "gap counts to highest", template: "only {2}", want: 3},
		{name: "escaped braces", template: "literal {{0}} braces", want: 0},
		{name: "escaped around real", template: "{{{0}}}", want: 1},
		{name: "unclosed", template: "broken {0", wantErr: true},
		{name: "stray close", template: "broken } here", wantErr: true},
		{name: "empty placeholder", template: "broken {}", wantErr: true},
		{name: "non numeric", template: "broken {name}", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := templateArity(tt.template)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedTemplate) {
					t.Fatalf("err = %v, want ErrMalformedTemplate", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("arity = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExpandTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		want     string
	}{
		{name: "plain", template: "nothing to fill", args: nil, want: "nothing to fill"},
		{name: "one arg", template: "class has {0} methods", args: []any{16}, want: "class has 16 methods"},
		{name: "two args", template: "{0} exceeds {1}", args: []any{"16", 15}, want: "16 exceeds 15"},
		{name: "repeated", template: "{0}-{0}", args: []any{"x"}, want: "x-x"},
		{name: "escapes", template: "set {{x}} to {0}", args: []any{1}, want: "set {x} to 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandTemplate(tt.template, tt.args); got != tt.want {
				t.Errorf("expandTemplate = %q, want %q", got, tt.want)
			}
		})
	}
}
