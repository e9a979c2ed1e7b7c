package report

import (
	"encoding/json"
	"strconv"
	"time"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindTime
)

// Value is a resolved cell. Text is what a reader sees; Hint is an optional
// presentation hint (badge variant, icon name) the table renderer may use.
type Value struct {
	Kind Kind
	Text string
	Num  float64
	At   time.Time
	Hint string
}

func Null() Value { return Value{Kind: KindNull} }

func Text(s string) Value { return Value{Kind: KindText, Text: s} }

func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n, Text: strconv.FormatFloat(n, 'f', -1, 64)}
}

// Timestamp keeps the instant for ordering and the formatted text for display.
func Timestamp(t time.Time, layout string) Value {
	if t.IsZero() {
		return Null()
	}
	return Value{Kind: KindTime, At: t, Text: t.Format(layout)}
}

// Badge is text carrying a presentation hint. A badge with no text still
// shows up in exports as "[hint]".
func Badge(text, hint string) Value { return Value{Kind: KindText, Text: text, Hint: hint} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

// String returns the displayable text of the cell.
func (v Value) String() string {
	if v.Text == "" && v.Hint != "" {
		return "[" + v.Hint + "]"
	}
	return v.Text
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.Kind == KindNull:
		return []byte("null"), nil
	case v.Kind == KindNumber:
		return json.Marshal(v.Num)
	case v.Hint != "":
		return json.Marshal(struct {
			Text string `json:"text"`
			Hint string `json:"hint"`
		}{v.String(), v.Hint})
	default:
		return json.Marshal(v.Text)
	}
}
