package protocol

import (
	ber "github.com/go-asn1-ber/asn1-ber"
)

// application tags of the protocol operations, RFC 4511 appendix B
const (
	TagBindRequest       ber.Tag = 0
	TagBindResponse      ber.Tag = 1
	TagUnbindRequest     ber.Tag = 2
	TagSearchRequest     ber.Tag = 3
	TagSearchResultEntry ber.Tag = 4
	TagSearchResultDone  ber.Tag = 5
	TagModifyRequest     ber.Tag = 6
	TagModifyResponse    ber.Tag = 7
	TagAddRequest        ber.Tag = 8
	TagAddResponse       ber.Tag = 9
	TagDelRequest        ber.Tag = 10
	TagDelResponse       ber.Tag = 11
	TagCompareRequest    ber.Tag = 14
	TagCompareResponse   ber.Tag = 15
	TagExtendedResponse  ber.Tag = 24
)

// search scopes
const (
	ScopeBaseObject   int64 = 0
	ScopeSingleLevel  int64 = 1
	ScopeWholeSubtree int64 = 2
)

// alias dereference policies
const (
	NeverDerefAliases   int64 = 0
	DerefInSearching    int64 = 1
	DerefFindingBaseObj int64 = 2
	DerefAlways         int64 = 3
)

// protocol version sent in bind requests
const Version3 = 3

/* ---- Bind Request ---- */

// BindRequest authenticates against the directory with simple (password) auth
type BindRequest struct {
	Version  int64
	DN       string
	Password string
}

// MakeBindRequest creates a simple-auth BindRequest
func MakeBindRequest(dn string, password string) *BindRequest {
	return &BindRequest{
		Version:  Version3,
		DN:       dn,
		Password: password,
	}
}

// Tag returns the application tag of the operation
func (r *BindRequest) Tag() ber.Tag {
	return TagBindRequest
}

// EncodePacket marshals the operation as a BER element
func (r *BindRequest) EncodePacket() *ber.Packet {
	p := ber.Encode(ber.ClassApplication, ber.TypeConstructed, TagBindRequest, nil, "Bind Request")
	p.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, r.Version, "Version"))
	p.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, r.DN, "Bind DN"))
	p.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, 0, r.Password, "Password"))
	return p
}

/* ---- Unbind Request ---- */

// UnbindRequest tells the server the client is done; it has no response
type UnbindRequest struct{}

// MakeUnbindRequest creates UnbindRequest
func MakeUnbindRequest() *UnbindRequest {
	return &UnbindRequest{}
}

func (r *UnbindRequest) Tag() ber.Tag {
	return TagUnbindRequest
}

func (r *UnbindRequest) EncodePacket() *ber.Packet {
	return ber.Encode(ber.ClassApplication, ber.TypePrimitive, TagUnbindRequest, nil, "Unbind Request")
}

/* ---- Search Request ---- */

// SearchRequest asks the server for all entries below BaseDN matching Filter
type SearchRequest struct {
	BaseDN       string
	Scope        int64
	DerefAliases int64
	SizeLimit    int64
	TimeLimit    int64
	TypesOnly    bool
	Filter       Filter
	Attributes   []string
}

// MakeSearchRequest creates a whole-subtree SearchRequest with no limits
func MakeSearchRequest(baseDN string, filter Filter, attributes ...string) *SearchRequest {
	return &SearchRequest{
		BaseDN:       baseDN,
		Scope:        ScopeWholeSubtree,
		DerefAliases: NeverDerefAliases,
		Filter:       filter,
		Attributes:   attributes,
	}
}

func (r *SearchRequest) Tag() ber.Tag {
	return TagSearchRequest
}

func (r *SearchRequest) EncodePacket() *ber.Packet {
	p := ber.Encode(ber.ClassApplication, ber.TypeConstructed, TagSearchRequest, nil, "Search Request")
	p.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, r.BaseDN, "Base DN"))
	p.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagEnumerated, r.Scope, "Scope"))
	p.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagEnumerated, r.DerefAliases, "Deref Aliases"))
	p.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, r.SizeLimit, "Size Limit"))
	p.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, r.TimeLimit, "Time Limit"))
	p.AppendChild(ber.NewBoolean(ber.ClassUniversal, ber.TypePrimitive, ber.TagBoolean, r.TypesOnly, "Types Only"))
	filter := r.Filter
	if filter == nil {
		filter = Present("objectClass")
	}
	p.AppendChild(filter.EncodePacket())
	attrs := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Attributes")
	for _, attr := range r.Attributes {
		attrs.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, attr, "Attribute"))
	}
	p.AppendChild(attrs)
	return p
}

/* ---- Modify Request ---- */

// ModifyRequest applies a sequence of attribute changes to one entry
type ModifyRequest struct {
	DN      string
	Changes []*Modification
}

// MakeModifyRequest creates ModifyRequest
func MakeModifyRequest(dn string, changes ...*Modification) *ModifyRequest {
	return &ModifyRequest{
		DN:      dn,
		Changes: changes,
	}
}

func (r *ModifyRequest) Tag() ber.Tag {
	return TagModifyRequest
}

func (r *ModifyRequest) EncodePacket() *ber.Packet {
	p := ber.Encode(ber.ClassApplication, ber.TypeConstructed, TagModifyRequest, nil, "Modify Request")
	p.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, r.DN, "DN"))
	changes := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Changes")
	for _, change := range r.Changes {
		c := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Change")
		c.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagEnumerated, int64(change.Operation), "Operation"))
		c.AppendChild(encodePartialAttribute(change.Attribute, change.Values))
		changes.AppendChild(c)
	}
	p.AppendChild(changes)
	return p
}

func encodePartialAttribute(name string, values []string) *ber.Packet {
	attr := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Partial Attribute")
	attr.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, name, "Type"))
	set := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSet, nil, "Values")
	for _, value := range values {
		set.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, value, "Value"))
	}
	attr.AppendChild(set)
	return attr
}

/* ---- Add Request ---- */

// AddRequest creates a new directory entry
type AddRequest struct {
	DN         string
	Attributes []*EntryAttribute
}

// MakeAddRequest creates AddRequest
func MakeAddRequest(dn string, attributes ...*EntryAttribute) *AddRequest {
	return &AddRequest{
		DN:         dn,
		Attributes: attributes,
	}
}

func (r *AddRequest) Tag() ber.Tag {
	return TagAddRequest
}

func (r *AddRequest) EncodePacket() *ber.Packet {
	p := ber.Encode(ber.ClassApplication, ber.TypeConstructed, TagAddRequest, nil, "Add Request")
	p.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, r.DN, "DN"))
	attrs := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Attributes")
	for _, attr := range r.Attributes {
		attrs.AppendChild(encodePartialAttribute(attr.Name, attr.Values))
	}
	p.AppendChild(attrs)
	return p
}

/* ---- Del Request ---- */

// DelRequest removes one directory entry
type DelRequest struct {
	DN string
}

// MakeDelRequest creates DelRequest
func MakeDelRequest(dn string) *DelRequest {
	return &DelRequest{DN: dn}
}

func (r *DelRequest) Tag() ber.Tag {
	return TagDelRequest
}

func (r *DelRequest) EncodePacket() *ber.Packet {
	// the DN is the whole body, not a child element
	return ber.NewString(ber.ClassApplication, ber.TypePrimitive, TagDelRequest, r.DN, "Del Request")
}

/* ---- Compare Request ---- */

// CompareRequest asks whether an entry carries the given attribute value
type CompareRequest struct {
	DN        string
	Attribute string
	Value     string
}

// MakeCompareRequest creates CompareRequest
func MakeCompareRequest(dn, attribute, value string) *CompareRequest {
	return &CompareRequest{
		DN:        dn,
		Attribute: attribute,
		Value:     value,
	}
}

func (r *CompareRequest) Tag() ber.Tag {
	return TagCompareRequest
}

func (r *CompareRequest) EncodePacket() *ber.Packet {
	p := ber.Encode(ber.ClassApplication, ber.TypeConstructed, TagCompareRequest, nil, "Compare Request")
	p.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, r.DN, "DN"))
	ava := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "AVA")
	ava.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, r.Attribute, "Attribute"))
	ava.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, r.Value, "Value"))
	p.AppendChild(ava)
	return p
}
