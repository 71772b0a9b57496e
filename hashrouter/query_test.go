package hashrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		qs   string
		want Params
	}{
		{"", Params{}},
		{"tab=info", Params{"tab": "info"}},
		{"a=1&b=2", Params{"a": "1", "b": "2"}},
		{"flag", Params{"flag": ""}},
		{"a=", Params{"a": ""}},
		{"q=vitamina%20c", Params{"q": "vitamina c"}},
		{"q=a+b", Params{"q": "a+b"}},
		{"expr=a=b", Params{"expr": "a=b"}},
		{"bad=%zz", Params{"bad": "%zz"}},
		{"a=1&&b=2", Params{"a": "1", "b": "2"}},
		{"a=1&a=2", Params{"a": "2"}},
		{"a%26b=1", Params{"a&b": "1"}},
		{"%zz=1", Params{"%zz": "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.qs, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuery(tt.qs))
		})
	}
}

func TestEncodeQueryRoundTrip(t *testing.T) {
	params := Params{"tab": "histórico & compras", "b": "1+1=2", "vazio": ""}
	encoded := EncodeQuery(params)
	assert.Equal(t, "b=1%2B1%3D2&tab=hist%C3%B3rico%20%26%20compras&vazio=", encoded)
	assert.Equal(t, params, ParseQuery(encoded))
}

func TestEncodeQueryEscapesKeys(t *testing.T) {
	params := Params{"a&b": "1", "x=y": "2", "100%": "3", "com espaço": "4"}
	encoded := EncodeQuery(params)
	assert.Equal(t, "100%25=3&a%26b=1&com%20espa%C3%A7o=4&x%3Dy=2", encoded)
	assert.Equal(t, params, ParseQuery(encoded))
}

func TestNavigateRewriteKeepsOddKeys(t *testing.T) {
	r, _, loc := newTestRouter("/")
	rec := &recorder{}
	r.AddRoute("/clientes", rec.callback(r, "clientes"))
	r.Init()

	r.NavigateTo("/clientes", Params{"a&b": "1", "k=v": "2"})
	loc.Dispatch()

	require.Len(t, rec.calls, 1)
	assert.Equal(t, Params{"a&b": "1", "k=v": "2"}, rec.calls[0])
}

func TestSplitFragment(t *testing.T) {
	tests := []struct {
		fragment, path, query string
	}{
		{"#/clientes/42?tab=info", "/clientes/42", "tab=info"},
		{"/clientes", "/clientes", ""},
		{"", "", ""},
		{"#/a?b?c", "/a", "b?c"},
	}
	for _, tt := range tests {
		path, query := SplitFragment(tt.fragment)
		assert.Equal(t, tt.path, path, tt.fragment)
		assert.Equal(t, tt.query, query, tt.fragment)
	}
}

func TestMemoryLocation(t *testing.T) {
	loc := NewMemoryLocation("#/")
	assert.Equal(t, "/", loc.Fragment())

	calls := 0
	loc.OnChange(func() {
		calls++
		if loc.Fragment() == "/a" {
			loc.SetFragment("/b")
		}
	})

	loc.SetFragment("/")
	assert.Zero(t, loc.Pending(), "same fragment does not notify")

	loc.SetFragment("#/a")
	assert.Equal(t, 1, loc.Pending())
	assert.Equal(t, 2, loc.Dispatch())
	assert.Equal(t, 2, calls)
	assert.Equal(t, "/b", loc.Fragment())
}
