package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{name: "plain day", in: "2024-03-10", want: NewDate(2024, time.March, 10)},
		{name: "rfc3339 keeps the day", in: "2024-03-10T22:15:00Z", want: NewDate(2024, time.March, 10)},
		{name: "surrounding spaces", in: " 2024-03-10 ", want: NewDate(2024, time.March, 10)},
		{name: "garbage", in: "10/03/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Dia Date `json:"dia"`
	}

	b, err := json.Marshal(payload{Dia: NewDate(2025, time.January, 31)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dia":"2025-01-31"}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"dia":"2025-02-01"}`), &p))
	assert.Equal(t, "2025-02-01", p.Dia.String())

	require.NoError(t, json.Unmarshal([]byte(`{"dia":null}`), &p))
	assert.True(t, p.Dia.IsZero())

	b, err = json.Marshal(payload{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dia":null}`, string(b))
}

func TestDateScan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-02-29", d.String())

	require.NoError(t, d.Scan("2024-12-01 00:00:00+00:00"))
	assert.Equal(t, "2024-12-01", d.String())

	require.NoError(t, d.Scan([]byte("2023-07-04")))
	assert.Equal(t, "2023-07-04", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2024, time.May, 5).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-05", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
