package models

import (
	"math"
	"testing"

	"github.com/buger/jsonparser"
)

func TestValue_Float(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected float64
	}{
		{name: "number", value: Value{Type: jsonparser.Number, Raw: []byte("101.5")}, expected: 101.5},
		{name: "negative exponent", value: Value{Type: jsonparser.Number, Raw: []byte("-1.5e-3")}, expected: -0.0015},
		{name: "numeric string", value: StringValue("42.25"), expected: 42.25},
		{name: "padded string", value: StringValue("  7 "), expected: 7},
		{name: "empty string", value: StringValue(""), expected: 0},
		{name: "hex string", value: StringValue("0x1A"), expected: 26},
		{name: "infinity string", value: StringValue("-Infinity"), expected: math.Inf(-1)},
		{name: "null", value: Value{Type: jsonparser.Null, Raw: []byte("null")}, expected: 0},
		{name: "true", value: Value{Type: jsonparser.Boolean, Raw: []byte("true")}, expected: 1},
		{name: "false", value: Value{Type: jsonparser.Boolean, Raw: []byte("false")}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.value.Float()
			if result != tt.expected {
				t.Errorf("Float() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestValue_FloatNaN(t *testing.T) {
	tests := []struct {
		name  string
		value Value
	}{
		{name: "missing", value: Value{}},
		{name: "word", value: StringValue("tBTCUSD")},
		{name: "go only infinity", value: StringValue("inf")},
		{name: "go only nan", value: StringValue("NaN")},
		{name: "underscores", value: StringValue("1_000")},
		{name: "array", value: Value{Type: jsonparser.Array, Raw: []byte("[1]")}},
		{name: "object", value: Value{Type: jsonparser.Object, Raw: []byte("{}")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.value.Float(); !math.IsNaN(result) {
				t.Errorf("Float() = %v, expected NaN", result)
			}
		})
	}
}

func TestValue_Defined(t *testing.T) {
	if (Value{}).Defined() {
		t.Error("Expected zero Value to be undefined")
	}
	if !NumberValue(0).Defined() {
		t.Error("Expected NumberValue(0) to be defined")
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{name: "missing", value: Value{}, expected: "null"},
		{name: "number", value: NumberValue(0.05), expected: "0.05"},
		{name: "string", value: StringValue(`t"X"USD`), expected: `"t\"X\"USD"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.value.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error: %v", err)
			}
			if string(out) != tt.expected {
				t.Errorf("MarshalJSON() = %s, expected %s", out, tt.expected)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	if s := StringValue(`a\b`).String(); s != `a\b` {
		t.Errorf("String() = %q, expected %q", s, `a\b`)
	}
	if s := (Value{}).String(); s != "" {
		t.Errorf("String() = %q, expected empty", s)
	}
}

func TestTickerRecord_Field(t *testing.T) {
	record := TickerRecord{Bid: NumberValue(100), DailyLow: Value{}}

	if v, ok := record.Field(ColumnBid); !ok || v.Float() != 100 {
		t.Errorf("Field(bid) = %v, %v", v, ok)
	}
	if v, ok := record.Field(ColumnDailyLow); !ok || v.Defined() {
		t.Errorf("Field(dailyLow) = %v, %v, expected undefined", v, ok)
	}
	if _, ok := record.Field("price"); ok {
		t.Error("Expected unknown column to be rejected")
	}
}

func TestDirection_Toggle(t *testing.T) {
	var d Direction
	if d != Descending {
		t.Fatalf("Expected zero Direction to be Descending, got %v", d)
	}
	if d.Toggle() != Ascending || d.Toggle().Toggle() != Descending {
		t.Error("Toggle() did not alternate")
	}
	if Ascending.String() != "asc" || Descending.String() != "desc" {
		t.Error("unexpected Direction strings")
	}
}
