package onebot

import (
	"fmt"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"
)

// Hand-rolled codec over the protobuf wire format. Field numbers are fixed by
// onebot.proto; zero values are omitted on encode per proto3 semantics.

type marshaler interface {
	marshal(b []byte) []byte
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	return appendInt64(b, num, int64(v))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendPackedInt32(b []byte, num protowire.Number, vs []int32) []byte {
	if len(vs) == 0 {
		return b
	}
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, uint64(int64(v)))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

// appendStringMap encodes map<string,string> entries sorted by key so the
// output is deterministic across runs.
func appendStringMap(b []byte, num protowire.Number, m map[string]string) []byte {
	if len(m) == 0 {
		return b
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var entry []byte
		entry = appendString(entry, 1, k)
		entry = appendString(entry, 2, m[k])
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendBytes(b, entry)
	}
	return b
}

func appendEmbedded(b []byte, num protowire.Number, m marshaler) []byte {
	sub := m.marshal(nil)
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, sub)
}

// field is one decoded top-level field of a message.
type field struct {
	num protowire.Number
	typ protowire.Type
	u   uint64 // value for varint / fixed32 / fixed64
	b   []byte // payload for length-delimited fields
}

func (f field) int64() int64   { return int64(f.u) }
func (f field) int32() int32   { return int32(f.u) }
func (f field) bool() bool     { return f.u != 0 }
func (f field) str() string    { return string(f.b) }
func (f field) bytes() []byte  { return append([]byte(nil), f.b...) }

// int32s appends the field's values to dst, accepting both packed and
// unpacked encodings of repeated int32.
func (f field) int32s(dst []int32) ([]int32, error) {
	if f.typ == protowire.VarintType {
		return append(dst, int32(f.u)), nil
	}
	b := f.b
	for len(b) > 0 {
		u, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return dst, protowire.ParseError(n)
		}
		dst = append(dst, int32(u))
		b = b[n:]
	}
	return dst, nil
}

// mapEntry decodes a map<string,string> entry submessage.
func (f field) mapEntry() (key, value string, err error) {
	err = walkFields(f.b, func(e field) error {
		switch e.num {
		case 1:
			key = e.str()
		case 2:
			value = e.str()
		}
		return nil
	})
	return key, value, err
}

// walkFields iterates the top-level fields of buf, invoking fn for each.
// Unknown fields must be ignored by fn (return nil) to keep decoding
// forward-compatible with schema additions.
func walkFields(buf []byte, fn func(f field) error) error {
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return fmt.Errorf("onebot: consume tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			u, n := protowire.ConsumeVarint(buf)
			if n < 0 {
				return fmt.Errorf("onebot: field %d: %w", num, protowire.ParseError(n))
			}
			f.u = u
			buf = buf[n:]
		case protowire.Fixed32Type:
			u, n := protowire.ConsumeFixed32(buf)
			if n < 0 {
				return fmt.Errorf("onebot: field %d: %w", num, protowire.ParseError(n))
			}
			f.u = uint64(u)
			buf = buf[n:]
		case protowire.Fixed64Type:
			u, n := protowire.ConsumeFixed64(buf)
			if n < 0 {
				return fmt.Errorf("onebot: field %d: %w", num, protowire.ParseError(n))
			}
			f.u = u
			buf = buf[n:]
		case protowire.BytesType:
			b, n := protowire.ConsumeBytes(buf)
			if n < 0 {
				return fmt.Errorf("onebot: field %d: %w", num, protowire.ParseError(n))
			}
			f.b = b
			buf = buf[n:]
		default:
			// Groups and future wire types are skipped whole.
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return fmt.Errorf("onebot: field %d: %w", num, protowire.ParseError(n))
			}
			buf = buf[n:]
			continue
		}

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}
