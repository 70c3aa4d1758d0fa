package memo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type userID int

func (u userID) CacheKey() string { return "user" }

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want string
	}{
		{name: "single string", args: []any{"hello"}, want: "hello"},
		{name: "single int", args: []any{42}, want: "42"},
		{name: "multiple args joined", args: []any{"a", 1, true}, want: "a:1:true"},
		{name: "struct formatted descriptively", args: []any{struct{ N int }{N: 7}}, want: "{N:7}"},
		{name: "keyer overrides formatting", args: []any{userID(3)}, want: "user"},
		{name: "keyer mixed with plain args", args: []any{userID(3), "x"}, want: "user:x"},
		{name: "no args", args: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.args...))
		})
	}
}
