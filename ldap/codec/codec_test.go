package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hdt3213/goldap/ldap/protocol"
)

func TestEncodeDecodeResponses(t *testing.T) {
	entry := protocol.MakeEntry("uid=alice,dc=example,dc=com",
		protocol.MakeEntryAttribute("uid", "alice"),
		protocol.MakeEntryAttribute("mail", "alice@example.com", "a.smith@example.com"),
	)
	data, err := Encode(7, protocol.MakeSearchResultEntry(entry))
	if err != nil {
		t.Fatal(err)
	}
	id, resp, consumed, err := DecodeNext(data)
	if err != nil {
		t.Fatal(err)
	}
	if id != 7 {
		t.Errorf("expected message id 7, actually %d", id)
	}
	if consumed != len(data) {
		t.Errorf("expected %d bytes consumed, actually %d", len(data), consumed)
	}
	decoded, ok := resp.(*protocol.SearchResultEntry)
	if !ok {
		t.Fatalf("expected search entry, actually tag %d", resp.Tag())
	}
	if decoded.Entry.DN != entry.DN {
		t.Errorf("expected dn %q, actually %q", entry.DN, decoded.Entry.DN)
	}
	if got := decoded.Entry.GetAttributeValues("mail"); len(got) != 2 || got[0] != "alice@example.com" {
		t.Errorf("mail attribute mangled: %v", got)
	}

	data, err = Encode(8, &protocol.BindResponse{Result: protocol.Result{
		Code:       protocol.ResultInvalidCredentials,
		Diagnostic: "wrong password",
	}})
	if err != nil {
		t.Fatal(err)
	}
	_, resp, _, err = DecodeNext(data)
	if err != nil {
		t.Fatal(err)
	}
	bind, ok := resp.(*protocol.BindResponse)
	if !ok {
		t.Fatalf("expected bind response, actually tag %d", resp.Tag())
	}
	if bind.Code != protocol.ResultInvalidCredentials || bind.Diagnostic != "wrong password" {
		t.Errorf("result mangled: %+v", bind.Result)
	}
}

func TestDecodeNextIncomplete(t *testing.T) {
	data, err := Encode(1, protocol.MakeSearchResultDone(protocol.ResultSuccess))
	if err != nil {
		t.Fatal(err)
	}
	for cut := 0; cut < len(data); cut++ {
		_, _, consumed, err := DecodeNext(data[:cut])
		if !errors.Is(err, ErrIncompleteMessage) {
			t.Fatalf("prefix of %d bytes: expected ErrIncompleteMessage, actually %v", cut, err)
		}
		if consumed != 0 {
			t.Fatalf("prefix of %d bytes: consumed %d bytes", cut, consumed)
		}
	}
	if _, _, _, err := DecodeNext(data); err != nil {
		t.Fatalf("whole message failed to decode: %v", err)
	}
}

func TestDecodeNextMultipleMessages(t *testing.T) {
	first, err := Encode(1, protocol.MakeDelResponse(protocol.ResultSuccess))
	if err != nil {
		t.Fatal(err)
	}
	second, err := Encode(2, protocol.MakeCompareResponse(protocol.ResultCompareTrue))
	if err != nil {
		t.Fatal(err)
	}
	buf := append(append([]byte{}, first...), second...)

	id, resp, consumed, err := DecodeNext(buf)
	if err != nil {
		t.Fatal(err)
	}
	if id != 1 || consumed != len(first) {
		t.Errorf("first decode: id %d consumed %d", id, consumed)
	}
	if _, ok := resp.(*protocol.DelResponse); !ok {
		t.Errorf("expected del response, actually tag %d", resp.Tag())
	}

	buf = buf[consumed:]
	id, resp, consumed, err = DecodeNext(buf)
	if err != nil {
		t.Fatal(err)
	}
	if id != 2 || consumed != len(second) {
		t.Errorf("second decode: id %d consumed %d", id, consumed)
	}
	cmp, ok := resp.(*protocol.CompareResponse)
	if !ok {
		t.Fatalf("expected compare response, actually tag %d", resp.Tag())
	}
	if cmp.Code != protocol.ResultCompareTrue {
		t.Errorf("expected compareTrue, actually %s", cmp.Code)
	}
}

func TestDecodeNextMalformed(t *testing.T) {
	// indefinite length is forbidden by LDAP
	if _, _, _, err := DecodeNext([]byte{0x30, 0x80, 0x00, 0x00}); err == nil || errors.Is(err, ErrIncompleteMessage) {
		t.Errorf("indefinite length: expected a hard error, actually %v", err)
	}
	// valid BER, but not an LDAPMessage envelope
	if _, _, _, err := DecodeNext([]byte{0x02, 0x01, 0x05}); err == nil || errors.Is(err, ErrIncompleteMessage) {
		t.Errorf("bare integer: expected a hard error, actually %v", err)
	}
}

func TestDecodeNextRejectsRequests(t *testing.T) {
	// the client side never expects to read a request off the wire
	data, err := Encode(3, protocol.MakeDelRequest("uid=alice,dc=example,dc=com"))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := DecodeNext(data); err == nil || errors.Is(err, ErrIncompleteMessage) {
		t.Errorf("expected a hard error, actually %v", err)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	req := protocol.MakeSearchRequest("dc=example,dc=com",
		protocol.And(protocol.Equal("objectClass", "person"), protocol.Not(protocol.Present("locked"))),
		"cn", "mail")
	first, err := Encode(1, req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Encode(1, req)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("same request encoded differently twice")
	}
}
