package models

import "strings"

// ValueKind tags which variant a Value holds.
type ValueKind string

const (
	KindEmpty    ValueKind = "empty"
	KindDataset  ValueKind = "dataset"
	KindFreeText ValueKind = "free_text"
)

// Value is the content of one level: nothing, an entry picked from the
// dataset, or text typed in manual-entry mode.
//
// Dataset values carry the dataset code and the resolved display name. City
// entries have no dataset code, so a city's Code is its name.
type Value struct {
	Kind ValueKind `json:"kind"`
	Code string    `json:"code,omitempty"`
	Name string    `json:"name,omitempty"`
	Text string    `json:"text,omitempty"`
}

func Empty() Value {
	return Value{Kind: KindEmpty}
}

func Dataset(code, name string) Value {
	return Value{Kind: KindDataset, Code: code, Name: name}
}

// FreeText trims text; blank input yields Empty.
func FreeText(text string) Value {
	text = strings.TrimSpace(text)
	if text == "" {
		return Empty()
	}
	return Value{Kind: KindFreeText, Text: text}
}

func (v Value) IsEmpty() bool {
	return v.Kind == "" || v.Kind == KindEmpty
}

func (v Value) IsDataset() bool {
	return v.Kind == KindDataset
}

func (v Value) IsFreeText() bool {
	return v.Kind == KindFreeText
}

// Display is what the user sees for the value.
func (v Value) Display() string {
	switch v.Kind {
	case KindDataset:
		return v.Name
	case KindFreeText:
		return v.Text
	default:
		return ""
	}
}

// DatasetCode returns the dataset code, or "" for free text and empty values.
func (v Value) DatasetCode() string {
	if v.Kind == KindDataset {
		return v.Code
	}
	return ""
}
