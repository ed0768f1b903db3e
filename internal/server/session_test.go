package server

import (
	"testing"
)

func TestDecodeRequest_Valid(t *testing.T) {
	req, reply := decodeRequest(`{"command":"login","data":{"username":"bao"}}`)
	if reply != nil {
		t.Fatalf("unexpected reply: %v", reply)
	}
	if req.Command != "login" {
		t.Errorf("expected login, got %q", req.Command)
	}
	if v, _ := req.Data.String("username"); v != "bao" {
		t.Errorf("expected bao, got %q", v)
	}
	if req.Envelope["command"] != "login" {
		t.Error("expected envelope to retain the raw message")
	}
}

func TestDecodeRequest_MalformedJSON(t *testing.T) {
	req, reply := decodeRequest(`{"command":`)
	if req != nil {
		t.Error("expected nil request")
	}
	if reply == nil || reply["reply"] != "jsonError" {
		t.Errorf("expected jsonError, got %v", reply)
	}
}

func TestDecodeRequest_MissingCommand(t *testing.T) {
	_, reply := decodeRequest(`{"data":{}}`)
	if reply == nil || reply["reply"] != "no [command]" {
		t.Errorf("expected no [command], got %v", reply)
	}
}

func TestDecodeRequest_NonStringCommand(t *testing.T) {
	_, reply := decodeRequest(`{"command":7,"data":{}}`)
	if reply == nil || reply["reply"] != "no [command]" {
		t.Errorf("expected no [command], got %v", reply)
	}
}

func TestDecodeRequest_MissingData(t *testing.T) {
	_, reply := decodeRequest(`{"command":"login"}`)
	if reply == nil || reply["reply"] != "no [data]" {
		t.Errorf("expected no [data], got %v", reply)
	}
}

func TestDecodeRequest_ScalarData(t *testing.T) {
	req, reply := decodeRequest(`{"command":"login","data":"nope"}`)
	if reply != nil {
		t.Fatalf("unexpected reply: %v", reply)
	}
	if _, ok := req.Data.String("username"); ok {
		t.Error("expected empty body for scalar data")
	}
}
