// Package codec marshals LDAPMessage envelopes to bytes and parses complete
// envelopes back out of a raw byte stream, one at a time.
package codec

import (
	"errors"
	"fmt"

	ber "github.com/go-asn1-ber/asn1-ber"
	"github.com/hdt3213/goldap/interface/ldap"
	"github.com/hdt3213/goldap/ldap/protocol"
)

// ErrIncompleteMessage reports that the buffer does not yet hold a whole BER
// element; the caller should keep the bytes and wait for more. It is never
// returned for malformed input.
var ErrIncompleteMessage = errors.New("incomplete ldap message")

// Encode marshals msg inside an LDAPMessage envelope carrying messageID
func Encode(messageID int64, msg ldap.Message) ([]byte, error) {
	if msg == nil {
		return nil, errors.New("nil message")
	}
	envelope := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "LDAP Message")
	envelope.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, messageID, "Message ID"))
	envelope.AppendChild(msg.EncodePacket())
	return envelope.Bytes(), nil
}

// DecodeNext parses exactly one complete LDAPMessage from the front of buf
// and reports how many bytes it consumed. When buf holds only a prefix of the
// next message it returns ErrIncompleteMessage and consumes nothing.
func DecodeNext(buf []byte) (messageID int64, resp ldap.Response, consumed int, err error) {
	size, err := messageSize(buf)
	if err != nil {
		return 0, nil, 0, err
	}
	envelope, err := ber.DecodePacketErr(buf[:size])
	if err != nil {
		return 0, nil, 0, fmt.Errorf("malformed ldap message: %w", err)
	}
	if envelope.ClassType != ber.ClassUniversal || envelope.Tag != ber.TagSequence || len(envelope.Children) < 2 {
		return 0, nil, 0, errors.New("malformed ldap message: not an LDAPMessage envelope")
	}
	messageID, ok := envelope.Children[0].Value.(int64)
	if !ok {
		return 0, nil, 0, errors.New("malformed ldap message: bad message id")
	}
	resp, err = decodeResponse(envelope.Children[1])
	if err != nil {
		return 0, nil, 0, err
	}
	return messageID, resp, size, nil
}

// messageSize scans the identifier and length octets at the front of buf and
// returns the total byte length of the element, header included
func messageSize(buf []byte) (int, error) {
	if len(buf) < 2 {
		return 0, ErrIncompleteMessage
	}
	offset := 1
	if buf[0]&0x1f == 0x1f { // multi-byte tag
		for {
			if offset >= len(buf) {
				return 0, ErrIncompleteMessage
			}
			offset++
			if buf[offset-1]&0x80 == 0 {
				break
			}
		}
	}
	if offset >= len(buf) {
		return 0, ErrIncompleteMessage
	}
	first := buf[offset]
	offset++
	if first < 0x80 { // short form
		return checkSize(buf, offset+int(first))
	}
	if first == 0x80 {
		return 0, errors.New("malformed ldap message: indefinite length")
	}
	numOctets := int(first & 0x7f)
	if numOctets > 4 {
		return 0, fmt.Errorf("malformed ldap message: length of %d octets exceeds sanity limit", numOctets)
	}
	if offset+numOctets > len(buf) {
		return 0, ErrIncompleteMessage
	}
	length := 0
	for i := 0; i < numOctets; i++ {
		length = length<<8 | int(buf[offset+i])
	}
	return checkSize(buf, offset+numOctets+length)
}

func checkSize(buf []byte, size int) (int, error) {
	if size > len(buf) {
		return 0, ErrIncompleteMessage
	}
	return size, nil
}

func decodeResponse(op *ber.Packet) (ldap.Response, error) {
	if op.ClassType != ber.ClassApplication {
		return nil, fmt.Errorf("malformed ldap message: protocol op has class %d", op.ClassType)
	}
	switch op.Tag {
	case protocol.TagBindResponse:
		result, err := decodeResult(op)
		return &protocol.BindResponse{Result: result}, err
	case protocol.TagSearchResultEntry:
		return decodeSearchEntry(op)
	case protocol.TagSearchResultDone:
		result, err := decodeResult(op)
		return &protocol.SearchResultDone{Result: result}, err
	case protocol.TagModifyResponse:
		result, err := decodeResult(op)
		return &protocol.ModifyResponse{Result: result}, err
	case protocol.TagAddResponse:
		result, err := decodeResult(op)
		return &protocol.AddResponse{Result: result}, err
	case protocol.TagDelResponse:
		result, err := decodeResult(op)
		return &protocol.DelResponse{Result: result}, err
	case protocol.TagCompareResponse:
		result, err := decodeResult(op)
		return &protocol.CompareResponse{Result: result}, err
	case protocol.TagExtendedResponse:
		return decodeExtendedResponse(op)
	default:
		return nil, fmt.Errorf("unsupported protocol op with tag %d", op.Tag)
	}
}

func decodeResult(op *ber.Packet) (protocol.Result, error) {
	var result protocol.Result
	if len(op.Children) < 3 {
		return result, errors.New("malformed ldap message: truncated result")
	}
	code, ok := op.Children[0].Value.(int64)
	if !ok {
		return result, errors.New("malformed ldap message: bad result code")
	}
	result.Code = protocol.ResultCode(code)
	result.MatchedDN, _ = op.Children[1].Value.(string)
	result.Diagnostic, _ = op.Children[2].Value.(string)
	return result, nil
}

func decodeSearchEntry(op *ber.Packet) (*protocol.SearchResultEntry, error) {
	if len(op.Children) < 2 {
		return nil, errors.New("malformed ldap message: truncated search entry")
	}
	dn, ok := op.Children[0].Value.(string)
	if !ok {
		return nil, errors.New("malformed ldap message: bad object name")
	}
	entry := protocol.MakeEntry(dn)
	for _, child := range op.Children[1].Children {
		if len(child.Children) < 2 {
			return nil, errors.New("malformed ldap message: truncated attribute")
		}
		name, ok := child.Children[0].Value.(string)
		if !ok {
			return nil, errors.New("malformed ldap message: bad attribute type")
		}
		attr := protocol.MakeEntryAttribute(name)
		for _, value := range child.Children[1].Children {
			s, _ := value.Value.(string)
			attr.Values = append(attr.Values, s)
		}
		entry.Attributes = append(entry.Attributes, attr)
	}
	return protocol.MakeSearchResultEntry(entry), nil
}

func decodeExtendedResponse(op *ber.Packet) (*protocol.ExtendedResponse, error) {
	result, err := decodeResult(op)
	if err != nil {
		return nil, err
	}
	resp := &protocol.ExtendedResponse{Result: result}
	for _, child := range op.Children[3:] {
		if child.ClassType != ber.ClassContext {
			continue
		}
		switch child.Tag {
		case 10: // responseName
			resp.Name = child.Data.String()
		case 11: // responseValue
			resp.Value = child.Data.String()
		}
	}
	return resp, nil
}
