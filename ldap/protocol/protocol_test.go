package protocol

import (
	"testing"

	ber "github.com/go-asn1-ber/asn1-ber"
)

func TestEntryAttributeLookup(t *testing.T) {
	entry := MakeEntry("uid=alice,dc=example,dc=com",
		MakeEntryAttribute("uid", "alice"),
		MakeEntryAttribute("mail", "alice@example.com", "a.smith@example.com"),
	)
	if got := entry.GetAttributeValue("uid"); got != "alice" {
		t.Errorf("expected alice, actually %q", got)
	}
	if got := entry.GetAttributeValues("mail"); len(got) != 2 {
		t.Errorf("expected 2 mail values, actually %d", len(got))
	}
	if got := entry.GetAttributeValue("missing"); got != "" {
		t.Errorf("expected empty value for missing attribute, actually %q", got)
	}
}

func TestFilterEncoding(t *testing.T) {
	filter := And(
		Equal("objectClass", "person"),
		Not(Present("locked")),
		Or(Equal("uid", "alice"), Equal("uid", "bob")),
	)
	p := filter.EncodePacket()
	if p.ClassType != ber.ClassContext || p.Tag != filterAnd {
		t.Fatalf("expected context tag %d, actually class %d tag %d", filterAnd, p.ClassType, p.Tag)
	}
	if len(p.Children) != 3 {
		t.Fatalf("expected 3 sub filters, actually %d", len(p.Children))
	}
	if p.Children[1].Tag != filterNot || len(p.Children[1].Children) != 1 {
		t.Error("not filter mangled")
	}
	if p.Children[2].Tag != filterOr || len(p.Children[2].Children) != 2 {
		t.Error("or filter mangled")
	}
}

func TestSubstringsFilterSkipsEmptyFragments(t *testing.T) {
	p := Substrings("cn", "", []string{"li"}, "ce").EncodePacket()
	fragments := p.Children[1].Children
	if len(fragments) != 2 {
		t.Fatalf("expected 2 fragments, actually %d", len(fragments))
	}
	if fragments[0].Tag != substringAny || fragments[1].Tag != substringFinal {
		t.Errorf("fragment tags %d, %d", fragments[0].Tag, fragments[1].Tag)
	}
}

func TestSearchRequestDefaultsFilter(t *testing.T) {
	req := MakeSearchRequest("dc=example,dc=com", nil)
	p := req.EncodePacket()
	// baseDN, scope, deref, size, time, typesOnly, filter, attributes
	if len(p.Children) != 8 {
		t.Fatalf("expected 8 children, actually %d", len(p.Children))
	}
	if p.Children[6].Tag != filterPresent {
		t.Errorf("expected a presence filter placeholder, actually tag %d", p.Children[6].Tag)
	}
}

func TestResultCodeString(t *testing.T) {
	if ResultInvalidCredentials.String() != "invalid credentials" {
		t.Error(ResultInvalidCredentials.String())
	}
	if ResultCode(4711).String() != "result code 4711" {
		t.Error(ResultCode(4711).String())
	}
}
