package config

import (
	"context"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv("GOLDAP_ADDR", "ldap.example.com:389")
	t.Setenv("GOLDAP_BIND_DN", "cn=admin,dc=example,dc=com")
	t.Setenv("GOLDAP_LOG_LEVEL", "debug")

	props, err := Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if props.Address != "ldap.example.com:389" {
		t.Error("string parse failed")
	}
	if props.BindDN != "cn=admin,dc=example,dc=com" {
		t.Error("bind dn not loaded")
	}
	if props.Log.Level != "debug" {
		t.Error("nested settings not loaded")
	}
	if Properties != props {
		t.Error("Load did not publish Properties")
	}
}

func TestLoadDefaults(t *testing.T) {
	props, err := Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if props.Address != "localhost:389" {
		t.Errorf("expected default address, actually %q", props.Address)
	}
	if props.Log.Name != "goldap" {
		t.Errorf("expected default log name, actually %q", props.Log.Name)
	}
}
