package handoff

import (
	"net"
	"testing"

	"github.com/arclight-net/swiftscan/internal/model"
)

func TestRunNoOpOnEmptyInput(t *testing.T) {
	n := New()
	results, err := n.Run(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if results != nil {
		t.Fatalf("expected no results for an empty socket list, got %v", results)
	}
}

func TestGroupByHost(t *testing.T) {
	open := []model.Socket{
		{IP: net.ParseIP("10.0.0.1"), Port: 22},
		{IP: net.ParseIP("10.0.0.1"), Port: 80},
		{IP: net.ParseIP("10.0.0.2"), Port: 443},
	}
	byHost := groupByHost(open)
	if len(byHost["10.0.0.1"]) != 2 {
		t.Fatalf("expected 2 ports grouped under 10.0.0.1, got %v", byHost["10.0.0.1"])
	}
	if len(byHost["10.0.0.2"]) != 1 {
		t.Fatalf("expected 1 port grouped under 10.0.0.2, got %v", byHost["10.0.0.2"])
	}
}

func TestPortsStringSortsAndJoins(t *testing.T) {
	got := portsString([]int{443, 22, 80})
	if got != "22,80,443" {
		t.Fatalf("expected sorted comma-joined ports, got %q", got)
	}
}

func TestSortedHostsIsDeterministic(t *testing.T) {
	byHost := map[string][]int{"10.0.0.2": {1}, "10.0.0.1": {1}}
	got := sortedHosts(byHost)
	if got[0] != "10.0.0.1" || got[1] != "10.0.0.2" {
		t.Fatalf("expected lexicographic host order, got %v", got)
	}
}

func TestWithServiceInfoOption(t *testing.T) {
	n := New(WithServiceInfo())
	if !n.serviceInfo {
		t.Fatal("expected WithServiceInfo to set serviceInfo")
	}
}
