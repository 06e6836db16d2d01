package engine

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/arclight-net/swiftscan/internal/model"
)

func TestTCPProberOpen(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			c.Close()
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	sock := model.Socket{IP: addr.IP, Port: model.Port(addr.Port)}

	outcome, fatal := TCPProber{}.Probe(context.Background(), sock, 200*time.Millisecond, 1)
	if fatal != nil {
		t.Fatal(fatal)
	}
	if !outcome.Open {
		t.Fatalf("expected open outcome, got %+v", outcome)
	}
}

func TestTCPProberClosedRetries(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().(*net.TCPAddr)
	ln.Close() // nothing listening now: connections are refused

	sock := model.Socket{IP: addr.IP, Port: model.Port(addr.Port)}

	outcome, fatal := TCPProber{}.Probe(context.Background(), sock, 200*time.Millisecond, 3)
	if fatal != nil {
		t.Fatal(fatal)
	}
	if outcome.Open {
		t.Fatal("expected closed outcome against a refusing port")
	}
	if outcome.Reason == "" {
		t.Fatal("expected a non-empty closed reason")
	}
}

func TestIsTooManyOpenFiles(t *testing.T) {
	if !isTooManyOpenFiles(errors.New("dial tcp 1.2.3.4:80: socket: TOO MANY open FILES")) {
		t.Fatal("expected case-insensitive substring match")
	}
	if isTooManyOpenFiles(errors.New("connection refused")) {
		t.Fatal("did not expect a match on an unrelated error")
	}
}
