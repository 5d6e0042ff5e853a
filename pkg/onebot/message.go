package onebot

import "google.golang.org/protobuf/encoding/protowire"

// Message is one element of a message chain. Type is "text", "at", "face",
// "image", "video", ... with type-specific attributes in Data.
type Message struct {
	Type string
	Data map[string]string
}

func (m *Message) marshal(b []byte) []byte {
	b = appendString(b, 1, m.Type)
	b = appendStringMap(b, 2, m.Data)
	return b
}

func (m *Message) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.Type = f.str()
		case 2:
			k, v, err := f.mapEntry()
			if err != nil {
				return err
			}
			if m.Data == nil {
				m.Data = make(map[string]string)
			}
			m.Data[k] = v
		}
		return nil
	})
}

func appendMessages(b []byte, num protowire.Number, msgs []*Message) []byte {
	for _, m := range msgs {
		b = appendEmbedded(b, num, m)
	}
	return b
}

func consumeMessage(f field, dst []*Message) ([]*Message, error) {
	m := &Message{}
	if err := m.unmarshal(f.b); err != nil {
		return dst, err
	}
	return append(dst, m), nil
}

// MessageReceipt identifies a sent or received message. It is serialized into
// message_id fields so the IM driver can recall the message later without the
// gateway holding server-side state.
type MessageReceipt struct {
	SenderID int64
	Time     int64
	Seqs     []int32
	Rands    []int32
	GroupID  int64 // 0 = private message
}

// Encode serializes the receipt to protobuf bytes.
func (r *MessageReceipt) Encode() []byte {
	return r.marshal(nil)
}

// DecodeReceipt parses a receipt from protobuf bytes.
func DecodeReceipt(buf []byte) (*MessageReceipt, error) {
	r := &MessageReceipt{}
	if err := r.unmarshal(buf); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MessageReceipt) marshal(b []byte) []byte {
	b = appendInt64(b, 1, r.SenderID)
	b = appendInt64(b, 2, r.Time)
	b = appendPackedInt32(b, 3, r.Seqs)
	b = appendPackedInt32(b, 4, r.Rands)
	b = appendInt64(b, 5, r.GroupID)
	return b
}

func (r *MessageReceipt) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		var err error
		switch f.num {
		case 1:
			r.SenderID = f.int64()
		case 2:
			r.Time = f.int64()
		case 3:
			r.Seqs, err = f.int32s(r.Seqs)
		case 4:
			r.Rands, err = f.int32s(r.Rands)
		case 5:
			r.GroupID = f.int64()
		}
		return err
	})
}
