package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Cents
		wantErr bool
	}{
		{name: "integer", input: "250", want: 25000},
		{name: "two decimals", input: "250.00", want: 25000},
		{name: "one decimal", input: "0.5", want: 50},
		{name: "smallest unit", input: "0.01", want: 1},
		{name: "rounds half up", input: "1.005", want: 101},
		{name: "rounds down below half", input: "1.004", want: 100},
		{name: "negative", input: "-10.25", want: -1025},
		{name: "leading dot", input: ".99", want: 99},
		{name: "whitespace trimmed", input: " 12.30 ", want: 1230},
		{name: "largest representable", input: "92233720368547757.99", want: 9223372036854775799},
		{name: "out of range", input: "92233720368547758.08", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "two dots", input: "1.2.3", wantErr: true},
		{name: "garbage fraction", input: "1.2x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimal(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "250.00", Cents(25000).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "-10.25", Cents(-1025).String())
	assert.Equal(t, "0.00", Cents(0).String())
}

func TestCentsJSON(t *testing.T) {
	b, err := json.Marshal(Cents(12345))
	require.NoError(t, err)
	assert.Equal(t, "123.45", string(b))

	var c Cents
	require.NoError(t, json.Unmarshal([]byte("99.99"), &c))
	assert.Equal(t, Cents(9999), c)

	// Строка с числом тоже допустима.
	require.NoError(t, json.Unmarshal([]byte(`"15.50"`), &c))
	assert.Equal(t, Cents(1550), c)

	require.Error(t, json.Unmarshal([]byte(`"oops"`), &c))
}

func TestCentsSumExact(t *testing.T) {
	// 0.1 + 0.2 в float64 дают 0.30000000000000004, в копейках — ровно 30.
	var total Cents
	a, _ := ParseDecimal("0.1")
	b, _ := ParseDecimal("0.2")
	total = a + b
	assert.Equal(t, Cents(30), total)
	assert.Equal(t, "0.30", total.String())
}
