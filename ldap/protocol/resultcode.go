package protocol

import "strconv"

// ResultCode is an LDAP resultCode as defined by RFC 4511 appendix A
type ResultCode int64

const (
	ResultSuccess                  ResultCode = 0
	ResultOperationsError          ResultCode = 1
	ResultProtocolError            ResultCode = 2
	ResultTimeLimitExceeded        ResultCode = 3
	ResultSizeLimitExceeded        ResultCode = 4
	ResultCompareFalse             ResultCode = 5
	ResultCompareTrue              ResultCode = 6
	ResultAuthMethodNotSupported   ResultCode = 7
	ResultStrongerAuthRequired     ResultCode = 8
	ResultNoSuchAttribute          ResultCode = 16
	ResultUndefinedAttributeType   ResultCode = 17
	ResultConstraintViolation      ResultCode = 19
	ResultAttributeOrValueExists   ResultCode = 20
	ResultInvalidAttributeSyntax   ResultCode = 21
	ResultNoSuchObject             ResultCode = 32
	ResultInvalidDNSyntax          ResultCode = 34
	ResultInvalidCredentials       ResultCode = 49
	ResultInsufficientAccessRights ResultCode = 50
	ResultBusy                     ResultCode = 51
	ResultUnavailable              ResultCode = 52
	ResultUnwillingToPerform       ResultCode = 53
	ResultNamingViolation          ResultCode = 64
	ResultObjectClassViolation     ResultCode = 65
	ResultNotAllowedOnNonLeaf      ResultCode = 66
	ResultEntryAlreadyExists       ResultCode = 68
	ResultOther                    ResultCode = 80
)

var resultCodeNames = map[ResultCode]string{
	ResultSuccess:                  "success",
	ResultOperationsError:          "operations error",
	ResultProtocolError:            "protocol error",
	ResultTimeLimitExceeded:        "time limit exceeded",
	ResultSizeLimitExceeded:        "size limit exceeded",
	ResultCompareFalse:             "compare false",
	ResultCompareTrue:              "compare true",
	ResultAuthMethodNotSupported:   "auth method not supported",
	ResultStrongerAuthRequired:     "stronger auth required",
	ResultNoSuchAttribute:          "no such attribute",
	ResultUndefinedAttributeType:   "undefined attribute type",
	ResultConstraintViolation:      "constraint violation",
	ResultAttributeOrValueExists:   "attribute or value exists",
	ResultInvalidAttributeSyntax:   "invalid attribute syntax",
	ResultNoSuchObject:             "no such object",
	ResultInvalidDNSyntax:          "invalid DN syntax",
	ResultInvalidCredentials:       "invalid credentials",
	ResultInsufficientAccessRights: "insufficient access rights",
	ResultBusy:                     "busy",
	ResultUnavailable:              "unavailable",
	ResultUnwillingToPerform:       "unwilling to perform",
	ResultNamingViolation:          "naming violation",
	ResultObjectClassViolation:     "object class violation",
	ResultNotAllowedOnNonLeaf:      "not allowed on non-leaf",
	ResultEntryAlreadyExists:       "entry already exists",
	ResultOther:                    "other",
}

func (c ResultCode) String() string {
	if name, ok := resultCodeNames[c]; ok {
		return name
	}
	return "result code " + strconv.FormatInt(int64(c), 10)
}

// Result holds the components of an LDAPResult, shared by every
// response except SearchResultEntry
type Result struct {
	Code       ResultCode
	MatchedDN  string
	Diagnostic string
}

// LDAPResult returns the result itself; responses embedding Result expose it
// through this method without further type switching
func (r Result) LDAPResult() Result {
	return r
}
