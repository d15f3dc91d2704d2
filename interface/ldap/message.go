package ldap

import (
	ber "github.com/go-asn1-ber/asn1-ber"
)

// Response is a protocol operation received from the directory server,
// or an aggregate built from several of them (a finished search).
type Response interface {
	Tag() ber.Tag
}

// Message is a protocol operation that can encode itself as the BER element
// carried inside an LDAPMessage envelope. Requests implement it; concrete
// response types implement it as well so that a test double can speak the
// server side of the protocol.
type Message interface {
	Response
	EncodePacket() *ber.Packet
}
