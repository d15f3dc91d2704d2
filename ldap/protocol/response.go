package protocol

import (
	ber "github.com/go-asn1-ber/asn1-ber"
)

// extended response optional fields, RFC 4511 section 4.12
const (
	extendedResponseName  ber.Tag = 10
	extendedResponseValue ber.Tag = 11
)

func encodeResult(tag ber.Tag, description string, result Result) *ber.Packet {
	p := ber.Encode(ber.ClassApplication, ber.TypeConstructed, tag, nil, description)
	p.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagEnumerated, int64(result.Code), "Result Code"))
	p.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, result.MatchedDN, "Matched DN"))
	p.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, result.Diagnostic, "Diagnostic"))
	return p
}

/* ---- Bind Response ---- */

// BindResponse reports the outcome of a bind exchange
type BindResponse struct {
	Result
}

// MakeBindResponse creates BindResponse
func MakeBindResponse(code ResultCode) *BindResponse {
	return &BindResponse{Result{Code: code}}
}

func (r *BindResponse) Tag() ber.Tag {
	return TagBindResponse
}

func (r *BindResponse) EncodePacket() *ber.Packet {
	return encodeResult(TagBindResponse, "Bind Response", r.Result)
}

/* ---- Search Result Entry ---- */

// SearchResultEntry carries one entry of an in-progress search
type SearchResultEntry struct {
	Entry *Entry
}

// MakeSearchResultEntry creates SearchResultEntry
func MakeSearchResultEntry(entry *Entry) *SearchResultEntry {
	return &SearchResultEntry{Entry: entry}
}

func (r *SearchResultEntry) Tag() ber.Tag {
	return TagSearchResultEntry
}

func (r *SearchResultEntry) EncodePacket() *ber.Packet {
	p := ber.Encode(ber.ClassApplication, ber.TypeConstructed, TagSearchResultEntry, nil, "Search Result Entry")
	p.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, r.Entry.DN, "Object Name"))
	attrs := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Attributes")
	for _, attr := range r.Entry.Attributes {
		attrs.AppendChild(encodePartialAttribute(attr.Name, attr.Values))
	}
	p.AppendChild(attrs)
	return p
}

/* ---- Search Result Done ---- */

// SearchResultDone terminates the entry stream of one search
type SearchResultDone struct {
	Result
}

// MakeSearchResultDone creates SearchResultDone
func MakeSearchResultDone(code ResultCode) *SearchResultDone {
	return &SearchResultDone{Result{Code: code}}
}

func (r *SearchResultDone) Tag() ber.Tag {
	return TagSearchResultDone
}

func (r *SearchResultDone) EncodePacket() *ber.Packet {
	return encodeResult(TagSearchResultDone, "Search Result Done", r.Result)
}

/* ---- Modify / Add / Del / Compare Responses ---- */

// ModifyResponse reports the outcome of a ModifyRequest
type ModifyResponse struct {
	Result
}

// MakeModifyResponse creates ModifyResponse
func MakeModifyResponse(code ResultCode) *ModifyResponse {
	return &ModifyResponse{Result{Code: code}}
}

func (r *ModifyResponse) Tag() ber.Tag {
	return TagModifyResponse
}

func (r *ModifyResponse) EncodePacket() *ber.Packet {
	return encodeResult(TagModifyResponse, "Modify Response", r.Result)
}

// AddResponse reports the outcome of an AddRequest
type AddResponse struct {
	Result
}

// MakeAddResponse creates AddResponse
func MakeAddResponse(code ResultCode) *AddResponse {
	return &AddResponse{Result{Code: code}}
}

func (r *AddResponse) Tag() ber.Tag {
	return TagAddResponse
}

func (r *AddResponse) EncodePacket() *ber.Packet {
	return encodeResult(TagAddResponse, "Add Response", r.Result)
}

// DelResponse reports the outcome of a DelRequest
type DelResponse struct {
	Result
}

// MakeDelResponse creates DelResponse
func MakeDelResponse(code ResultCode) *DelResponse {
	return &DelResponse{Result{Code: code}}
}

func (r *DelResponse) Tag() ber.Tag {
	return TagDelResponse
}

func (r *DelResponse) EncodePacket() *ber.Packet {
	return encodeResult(TagDelResponse, "Del Response", r.Result)
}

// CompareResponse reports compareTrue/compareFalse for a CompareRequest
type CompareResponse struct {
	Result
}

// MakeCompareResponse creates CompareResponse
func MakeCompareResponse(code ResultCode) *CompareResponse {
	return &CompareResponse{Result{Code: code}}
}

func (r *CompareResponse) Tag() ber.Tag {
	return TagCompareResponse
}

func (r *CompareResponse) EncodePacket() *ber.Packet {
	return encodeResult(TagCompareResponse, "Compare Response", r.Result)
}

/* ---- Extended Response ---- */

// ExtendedResponse carries the result of an extended operation, including
// unsolicited notifications such as notice of disconnection
type ExtendedResponse struct {
	Result
	Name  string
	Value string
}

// MakeExtendedResponse creates ExtendedResponse
func MakeExtendedResponse(code ResultCode, name, value string) *ExtendedResponse {
	return &ExtendedResponse{
		Result: Result{Code: code},
		Name:   name,
		Value:  value,
	}
}

func (r *ExtendedResponse) Tag() ber.Tag {
	return TagExtendedResponse
}

func (r *ExtendedResponse) EncodePacket() *ber.Packet {
	p := encodeResult(TagExtendedResponse, "Extended Response", r.Result)
	if r.Name != "" {
		p.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, extendedResponseName, r.Name, "Name"))
	}
	if r.Value != "" {
		p.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, extendedResponseValue, r.Value, "Value"))
	}
	return p
}

/* ---- Search Result ---- */

// SearchResult is the aggregate handed to the submitter of a search once its
// SearchResultDone arrives: the streamed entries in arrival order plus the
// terminal result
type SearchResult struct {
	Entries    []*Entry
	Code       ResultCode
	Diagnostic string
}

func (r *SearchResult) Tag() ber.Tag {
	return TagSearchResultDone
}
