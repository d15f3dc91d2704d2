package protocol

import (
	ber "github.com/go-asn1-ber/asn1-ber"
)

// filter choice tags, RFC 4511 section 4.5.1.7
const (
	filterAnd         ber.Tag = 0
	filterOr          ber.Tag = 1
	filterNot         ber.Tag = 2
	filterEquality    ber.Tag = 3
	filterSubstrings  ber.Tag = 4
	filterGreaterOrEq ber.Tag = 5
	filterLessOrEq    ber.Tag = 6
	filterPresent     ber.Tag = 7
)

const (
	substringInitial ber.Tag = 0
	substringAny     ber.Tag = 1
	substringFinal   ber.Tag = 2
)

// Filter is a search filter that can encode itself as the BER element
// expected inside a SearchRequest
type Filter interface {
	EncodePacket() *ber.Packet
}

type presentFilter struct {
	attribute string
}

// Present matches entries that carry the attribute at all
func Present(attribute string) Filter {
	return &presentFilter{attribute: attribute}
}

func (f *presentFilter) EncodePacket() *ber.Packet {
	return ber.NewString(ber.ClassContext, ber.TypePrimitive, filterPresent, f.attribute, "Present")
}

type comparisonFilter struct {
	tag       ber.Tag
	attribute string
	value     string
}

// Equal matches entries whose attribute equals value
func Equal(attribute, value string) Filter {
	return &comparisonFilter{tag: filterEquality, attribute: attribute, value: value}
}

// GreaterOrEqual matches entries whose attribute orders at or above value
func GreaterOrEqual(attribute, value string) Filter {
	return &comparisonFilter{tag: filterGreaterOrEq, attribute: attribute, value: value}
}

// LessOrEqual matches entries whose attribute orders at or below value
func LessOrEqual(attribute, value string) Filter {
	return &comparisonFilter{tag: filterLessOrEq, attribute: attribute, value: value}
}

func (f *comparisonFilter) EncodePacket() *ber.Packet {
	p := ber.Encode(ber.ClassContext, ber.TypeConstructed, f.tag, nil, "Comparison")
	p.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, f.attribute, "Attribute"))
	p.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, f.value, "Value"))
	return p
}

type setFilter struct {
	tag  ber.Tag
	subs []Filter
}

// And matches entries matching every sub filter
func And(filters ...Filter) Filter {
	return &setFilter{tag: filterAnd, subs: filters}
}

// Or matches entries matching at least one sub filter
func Or(filters ...Filter) Filter {
	return &setFilter{tag: filterOr, subs: filters}
}

func (f *setFilter) EncodePacket() *ber.Packet {
	p := ber.Encode(ber.ClassContext, ber.TypeConstructed, f.tag, nil, "Set")
	for _, sub := range f.subs {
		p.AppendChild(sub.EncodePacket())
	}
	return p
}

type notFilter struct {
	sub Filter
}

// Not matches entries not matching the sub filter
func Not(filter Filter) Filter {
	return &notFilter{sub: filter}
}

func (f *notFilter) EncodePacket() *ber.Packet {
	p := ber.Encode(ber.ClassContext, ber.TypeConstructed, filterNot, nil, "Not")
	p.AppendChild(f.sub.EncodePacket())
	return p
}

type substringsFilter struct {
	attribute string
	initial   string
	any       []string
	final     string
}

// Substrings matches entries whose attribute matches the given fragments in
// order. Empty initial/final fragments are omitted from the encoding.
func Substrings(attribute, initial string, any []string, final string) Filter {
	return &substringsFilter{attribute: attribute, initial: initial, any: any, final: final}
}

func (f *substringsFilter) EncodePacket() *ber.Packet {
	p := ber.Encode(ber.ClassContext, ber.TypeConstructed, filterSubstrings, nil, "Substrings")
	p.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, f.attribute, "Attribute"))
	seq := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Fragments")
	if f.initial != "" {
		seq.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, substringInitial, f.initial, "Initial"))
	}
	for _, fragment := range f.any {
		seq.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, substringAny, fragment, "Any"))
	}
	if f.final != "" {
		seq.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, substringFinal, f.final, "Final"))
	}
	p.AppendChild(seq)
	return p
}
