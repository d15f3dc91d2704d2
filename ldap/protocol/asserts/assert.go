// Package asserts provides test helpers checking decoded LDAP responses
package asserts

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/hdt3213/goldap/interface/ldap"
	"github.com/hdt3213/goldap/ldap/protocol"
)

type resulter interface {
	LDAPResult() protocol.Result
}

// AssertResultCode checks that the given response carries the expected result code
func AssertResultCode(t *testing.T, actual ldap.Response, expected protocol.ResultCode) {
	r, ok := actual.(resulter)
	if !ok {
		t.Errorf("expected a result-bearing response, actually tag %d, %s", actual.Tag(), printStack())
		return
	}
	if code := r.LDAPResult().Code; code != expected {
		t.Errorf("expected result %s, actually %s, %s", expected, code, printStack())
	}
}

// AssertSearchResult checks that the given response is a finished search with
// the expected number of entries and result code
func AssertSearchResult(t *testing.T, actual ldap.Response, entries int, code protocol.ResultCode) *protocol.SearchResult {
	result, ok := actual.(*protocol.SearchResult)
	if !ok {
		t.Errorf("expected a search result, actually tag %d, %s", actual.Tag(), printStack())
		return nil
	}
	if len(result.Entries) != entries {
		t.Errorf("expected %d entries, actually %d, %s", entries, len(result.Entries), printStack())
	}
	if result.Code != code {
		t.Errorf("expected result %s, actually %s, %s", code, result.Code, printStack())
	}
	return result
}

// AssertEntryAttribute checks that the entry carries the attribute with the expected first value
func AssertEntryAttribute(t *testing.T, entry *protocol.Entry, name, expected string) {
	if actual := entry.GetAttributeValue(name); actual != expected {
		t.Errorf("expected %s=%q, actually %q, %s", name, expected, actual, printStack())
	}
}

func printStack() string {
	_, file, no, ok := runtime.Caller(2)
	if ok {
		return fmt.Sprintf("at %s:%d", file, no)
	}
	return ""
}
