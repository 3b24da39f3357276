package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Message
		ok   bool
	}{
		{"all present", Message{Name: " Ann ", Email: "a@b.com", Message: "hi\n"}, true},
		{"blank name", Message{Name: "", Email: "a@b.com", Message: "hi"}, false},
		{"whitespace email", Message{Name: "Ann", Email: "   ", Message: "hi"}, false},
		{"blank message", Message{Name: "Ann", Email: "a@b.com", Message: "\t"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.in.Normalize()
			if !tc.ok {
				assert.ErrorIs(t, err, ErrMissingFields)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Message{Name: "Ann", Email: "a@b.com", Message: "hi"}, out)
		})
	}
}

func TestCompose(t *testing.T) {
	m := Message{Name: "Ann <3", Email: "a@b.com", Message: "line one\nline two"}

	e := Compose(m, "site@example.com", "owner@example.com")

	assert.Equal(t, "site@example.com", e.From)
	assert.Equal(t, "owner@example.com", e.To)
	assert.Equal(t, "a@b.com", e.ReplyTo)
	assert.Equal(t, "Portfolio contact from Ann <3", e.Subject)
	assert.Equal(t, "line one\nline two\n\n---\nFrom: Ann <3\nEmail: a@b.com", e.Text)
	assert.Equal(t, "<p>line one<br>line two</p><hr><p><strong>From:</strong> Ann &lt;3<br><strong>Email:</strong> a@b.com</p>", e.HTML)
}
