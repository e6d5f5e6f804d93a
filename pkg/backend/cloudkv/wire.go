package cloudkv

import (
	"errors"
	"time"

	"github.com/goliatone/go-settings/pkg/backend"
)

// wireValue is the snapshot representation of one tagged value. Exactly one
// payload field is set, selected by Kind.
type wireValue struct {
	Kind    string     `json:"kind"`
	String  *string    `json:"string,omitempty"`
	Bool    *bool      `json:"bool,omitempty"`
	Int     *int64     `json:"int,omitempty"`
	Float   *float64   `json:"float,omitempty"`
	Bytes   []byte     `json:"bytes"`
	Time    *time.Time `json:"time,omitempty"`
	Strings []string   `json:"strings"`
}

func toWire(value backend.Value) (wireValue, error) {
	switch value.Kind() {
	case backend.KindString:
		v, _ := value.AsString()
		return wireValue{Kind: "string", String: &v}, nil
	case backend.KindBool:
		v, _ := value.AsBool()
		return wireValue{Kind: "bool", Bool: &v}, nil
	case backend.KindInt:
		v, _ := value.AsInt()
		return wireValue{Kind: "int", Int: &v}, nil
	case backend.KindFloat:
		v, _ := value.AsFloat()
		return wireValue{Kind: "float", Float: &v}, nil
	case backend.KindBytes:
		v, _ := value.AsBytes()
		return wireValue{Kind: "bytes", Bytes: v}, nil
	case backend.KindTime:
		v, _ := value.AsTime()
		return wireValue{Kind: "time", Time: &v}, nil
	case backend.KindStringSlice:
		v, _ := value.AsStringSlice()
		return wireValue{Kind: "strings", Strings: v}, nil
	default:
		return wireValue{}, errors.New("invalid value")
	}
}

// value reconstructs the tagged union. An unknown kind or a missing payload
// yields an invalid Value, which decodes as absence upstream.
func (w wireValue) value() backend.Value {
	switch w.Kind {
	case "string":
		if w.String != nil {
			return backend.String(*w.String)
		}
	case "bool":
		if w.Bool != nil {
			return backend.Bool(*w.Bool)
		}
	case "int":
		if w.Int != nil {
			return backend.Int(*w.Int)
		}
	case "float":
		if w.Float != nil {
			return backend.Float(*w.Float)
		}
	case "bytes":
		return backend.Bytes(w.Bytes)
	case "time":
		if w.Time != nil {
			return backend.Time(*w.Time)
		}
	case "strings":
		return backend.StringSlice(w.Strings)
	}
	return backend.Value{}
}
