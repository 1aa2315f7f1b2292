package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionText
	SelectionNumber
	SelectionBool
	SelectionList
	SelectionObject
)

func (k SelectionKind) String() string {
	switch k {
	case SelectionText:
		return "text"
	case SelectionNumber:
		return "number"
	case SelectionBool:
		return "bool"
	case SelectionList:
		return "list"
	case SelectionObject:
		return "object"
	default:
		return "none"
	}
}

// Selection is the value a caller picked for an option. The JSON shape decides
// the kind; Stored gives the single text form written to the database.
type Selection struct {
	Kind   SelectionKind
	text   string
	number float64
	flag   bool
	raw    json.RawMessage
}

func TextSelection(s string) Selection { return Selection{Kind: SelectionText, text: s} }
func NumberSelection(n float64) Selection { return Selection{Kind: SelectionNumber, number: n} }
func BoolSelection(b bool) Selection { return Selection{Kind: SelectionBool, flag: b} }
func ListSelection(raw []byte) Selection { return Selection{Kind: SelectionList, raw: compact(raw)} }
func ObjectSelection(raw []byte) Selection { return Selection{Kind: SelectionObject, raw: compact(raw)} }
func (s Selection) IsZero() bool { return s.Kind == SelectionNone }

func (s *Selection) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*s = Selection{}
		return nil
	}

	switch data[0] {
	case 'n':
		*s = Selection{}
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = TextSelection(v)
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = BoolSelection(v)
	case '[':
		if !json.Valid(data) {
			return errors.New("selection: malformed list")
		}
		*s = ListSelection(data)
	case '{':
		if !json.Valid(data) {
			return errors.New("selection: malformed object")
		}
		*s = ObjectSelection(data)
	default:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("selection: %w", err)
		}
		*s = NumberSelection(v)
	}
	return nil
}

func (s Selection) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SelectionText:
		return json.Marshal(s.text)
	case SelectionNumber:
		return json.Marshal(s.number)
	case SelectionBool:
		return json.Marshal(s.flag)
	case SelectionList, SelectionObject:
		return s.raw, nil
	default:
		return []byte("null"), nil
	}
}

// Stored returns the text persisted for the selection: strings pass through,
// numbers use the shortest round-trip form, lists and objects become compact
// JSON.
func (s Selection) Stored() string {
	switch s.Kind {
	case SelectionText:
		return s.text
	case SelectionNumber:
		return formatNumber(s.number)
	case SelectionBool:
		return strconv.FormatBool(s.flag)
	case SelectionList, SelectionObject:
		return string(s.raw)
	default:
		return ""
	}
}

// formatNumber renders n the way JavaScript's String(n) does: plain decimals
// for 1e-6 <= |n| < 1e21, exponent form with an unpadded exponent otherwise.
func formatNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	if abs := math.Abs(n); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	text := strconv.FormatFloat(n, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(text, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + exp
}

func compact(raw []byte) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return append(json.RawMessage(nil), raw...)
	}
	return buf.Bytes()
}
