package value

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Decode decodes JSON data into a [Value].
// Object key order is preserved and numbers are kept exact:
// a literal with no fraction or exponent that fits in 64 bits
// becomes an [Int], anything else a [Num].
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("value: trailing data after JSON value")
	}
	return v, nil
}

// decodeValue decodes the next complete value from dec.
func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

// decodeToken decodes a value whose first token has already been read.
func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch tok := tok.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(tok), nil
	case string:
		return String(tok), nil
	case json.Number:
		return numberValue(tok.String())
	case json.Delim:
		switch tok {
		case '{':
			o := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("value: object key is %T, want string", keyTok)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				o.Set(key, v)
			}
			if _, err := dec.Token(); err != nil { // closing brace
				return nil, err
			}
			return o, nil
		case '[':
			a := Array{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				a = append(a, v)
			}
			if _, err := dec.Token(); err != nil { // closing bracket
				return nil, err
			}
			return a, nil
		}
	}
	return nil, fmt.Errorf("value: unexpected JSON token %v", tok)
}

// numberValue classifies a number literal as Int or Num.
func numberValue(lit string) (Value, error) {
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	r, ok := new(big.Rat).SetString(lit)
	if !ok {
		return nil, fmt.Errorf("value: cannot parse number %q", lit)
	}
	return Num{Rat: r}, nil
}

// JSON returns the canonical JSON encoding of v.
// Object keys are written in insertion order.
func JSON(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v Value) error {
	switch v := v.(type) {
	case Null:
		buf.WriteString("null")
	case Bool:
		fmt.Fprintf(buf, "%t", bool(v))
	case Int:
		fmt.Fprintf(buf, "%d", int64(v))
	case Num:
		buf.WriteString(RatString(v.Rat))
	case String:
		data, err := json.Marshal(string(v))
		if err != nil {
			return err
		}
		buf.Write(data)
	case Array:
		buf.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *Object:
		buf.WriteByte('{')
		for i, key := range v.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			data, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(data)
			buf.WriteByte(':')
			e, _ := v.Get(key)
			if err := encodeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("value: cannot encode %T", v)
	}
	return nil
}

// RatString renders a rational as a JSON number literal.
// Rationals whose denominator is a product of twos and fives
// have an exact decimal form; anything else falls back to the
// shortest float64 representation.
func RatString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	den := new(big.Int).Set(r.Denom())
	twos, fives := 0, 0
	two, five := big.NewInt(2), big.NewInt(5)
	rem := new(big.Int)
	for {
		if _, m := new(big.Int).QuoRem(den, two, rem); m.Sign() == 0 {
			den.Quo(den, two)
			twos++
			continue
		}
		break
	}
	for {
		if _, m := new(big.Int).QuoRem(den, five, rem); m.Sign() == 0 {
			den.Quo(den, five)
			fives++
			continue
		}
		break
	}
	if den.Cmp(big.NewInt(1)) == 0 {
		return r.FloatString(max(twos, fives))
	}
	f, _ := r.Float64()
	return strconv.FormatFloat(f, 'g', -1, 64)
}
