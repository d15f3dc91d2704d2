package client

import (
	"context"
	"fmt"

	"github.com/hdt3213/goldap/interface/ldap"
	"github.com/hdt3213/goldap/ldap/protocol"
)

// ResultError reports a non-success result code returned by the server
type ResultError struct {
	Op     string
	Result protocol.Result
}

func (e *ResultError) Error() string {
	msg := fmt.Sprintf("ldap: %s failed: %s", e.Op, e.Result.Code)
	if e.Result.Diagnostic != "" {
		msg += ": " + e.Result.Diagnostic
	}
	return msg
}

func (client *Client) await(ctx context.Context, msg ldap.Message) (ldap.Response, error) {
	return client.Submit(msg).Wait(ctx)
}

// Bind authenticates with simple (password) auth. The caller must not have
// other operations in flight when binding; the transmitter holds back
// everything submitted after the bind until its response arrives.
func (client *Client) Bind(ctx context.Context, dn, password string) error {
	resp, err := client.await(ctx, protocol.MakeBindRequest(dn, password))
	if err != nil {
		return err
	}
	bind, ok := resp.(*protocol.BindResponse)
	if !ok {
		return fmt.Errorf("ldap: bind got response tag %d", resp.Tag())
	}
	if bind.Code != protocol.ResultSuccess {
		return &ResultError{Op: "bind", Result: bind.Result}
	}
	return nil
}

// Search submits req and blocks until its result aggregate is complete. On a
// non-success terminal code the aggregate collected so far is returned
// alongside a ResultError.
func (client *Client) Search(ctx context.Context, req *protocol.SearchRequest) (*protocol.SearchResult, error) {
	resp, err := client.await(ctx, req)
	if err != nil {
		return nil, err
	}
	result, ok := resp.(*protocol.SearchResult)
	if !ok {
		return nil, fmt.Errorf("ldap: search got response tag %d", resp.Tag())
	}
	if result.Code != protocol.ResultSuccess {
		return result, &ResultError{Op: "search", Result: protocol.Result{Code: result.Code, Diagnostic: result.Diagnostic}}
	}
	return result, nil
}

// Modify applies changes to the entry named by dn
func (client *Client) Modify(ctx context.Context, dn string, changes ...*protocol.Modification) error {
	resp, err := client.await(ctx, protocol.MakeModifyRequest(dn, changes...))
	if err != nil {
		return err
	}
	return checkResult("modify", resp)
}

// Add creates the entry named by dn with the given attributes
func (client *Client) Add(ctx context.Context, dn string, attributes ...*protocol.EntryAttribute) error {
	resp, err := client.await(ctx, protocol.MakeAddRequest(dn, attributes...))
	if err != nil {
		return err
	}
	return checkResult("add", resp)
}

// Del removes the entry named by dn
func (client *Client) Del(ctx context.Context, dn string) error {
	resp, err := client.await(ctx, protocol.MakeDelRequest(dn))
	if err != nil {
		return err
	}
	return checkResult("del", resp)
}

// Compare reports whether the entry named by dn carries the attribute value
func (client *Client) Compare(ctx context.Context, dn, attribute, value string) (bool, error) {
	resp, err := client.await(ctx, protocol.MakeCompareRequest(dn, attribute, value))
	if err != nil {
		return false, err
	}
	cmp, ok := resp.(*protocol.CompareResponse)
	if !ok {
		return false, fmt.Errorf("ldap: compare got response tag %d", resp.Tag())
	}
	switch cmp.Code {
	case protocol.ResultCompareTrue:
		return true, nil
	case protocol.ResultCompareFalse:
		return false, nil
	default:
		return false, &ResultError{Op: "compare", Result: cmp.Result}
	}
}

// Unbind tells the server the session is over, then closes the connection.
// The unbind operation has no response; its future resolves once written.
func (client *Client) Unbind(ctx context.Context) error {
	_, err := client.await(ctx, protocol.MakeUnbindRequest())
	client.Close(true)
	return err
}

type resulter interface {
	LDAPResult() protocol.Result
}

func checkResult(op string, resp ldap.Response) error {
	r, ok := resp.(resulter)
	if !ok {
		return fmt.Errorf("ldap: %s got response tag %d", op, resp.Tag())
	}
	if result := r.LDAPResult(); result.Code != protocol.ResultSuccess {
		return &ResultError{Op: op, Result: result}
	}
	return nil
}
