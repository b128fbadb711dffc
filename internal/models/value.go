package models

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	jsoniter "github.com/json-iterator/go"
)

// Value es un valor posicional tal como llega en la tupla del servidor.
// El valor cero representa una posición ausente (undefined).
type Value struct {
	Type jsonparser.ValueType
	Raw  []byte
}

// NumberValue crea un valor numérico
func NumberValue(f float64) Value {
	return Value{Type: jsonparser.Number, Raw: strconv.AppendFloat(nil, f, 'g', -1, 64)}
}

// StringValue crea un valor de texto (Raw guarda el contenido escapado, sin comillas)
func StringValue(s string) Value {
	quoted, _ := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(s)
	return Value{Type: jsonparser.String, Raw: quoted[1 : len(quoted)-1]}
}

// Defined indica si la posición existía en la tupla
func (v Value) Defined() bool {
	return v.Type != jsonparser.NotExist
}

// Float convierte el valor a número con las mismas reglas que Number(x) en JS:
// ausente -> NaN, null -> 0, booleanos -> 1/0, texto vacío -> 0,
// texto no numérico, arreglos y objetos -> NaN.
func (v Value) Float() float64 {
	switch v.Type {
	case jsonparser.Number:
		f, err := strconv.ParseFloat(string(v.Raw), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return math.NaN()
		}
		return f
	case jsonparser.String:
		s, err := jsonparser.ParseString(v.Raw)
		if err != nil {
			return math.NaN()
		}
		return parseNumericString(s)
	case jsonparser.Null:
		return 0
	case jsonparser.Boolean:
		if string(v.Raw) == "true" {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}

// String devuelve el texto del valor; vacío si la posición no existe
func (v Value) String() string {
	switch v.Type {
	case jsonparser.NotExist:
		return ""
	case jsonparser.String:
		s, err := jsonparser.ParseString(v.Raw)
		if err != nil {
			return string(v.Raw)
		}
		return s
	default:
		return string(v.Raw)
	}
}

// MarshalJSON reescribe el valor original; null cuando la posición no existe
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Type {
	case jsonparser.NotExist, jsonparser.Unknown:
		return []byte("null"), nil
	case jsonparser.String:
		out := make([]byte, 0, len(v.Raw)+2)
		out = append(out, '"')
		out = append(out, v.Raw...)
		return append(out, '"'), nil
	default:
		return v.Raw, nil
	}
}

func parseNumericString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	// Literales enteros con prefijo (0x, 0o, 0b), sin signo
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}

	// ParseFloat acepta formas que JS rechaza ("inf", "nan", guiones bajos)
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != 'e' && r != 'E' && r != '+' && r != '-' {
			return math.NaN()
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}
