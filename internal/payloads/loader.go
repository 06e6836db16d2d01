package payloads

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arclight-net/swiftscan/internal/model"
)

// fileYAML mirrors the on-disk format accepted by LoadFile.
type fileYAML struct {
	Payloads []entryYAML `yaml:"payloads"`
}

type entryYAML struct {
	Ports   []int  `yaml:"ports"`
	HexData string `yaml:"hex"`
}

// LoadFile builds a Registry holding only the entries of the file; the
// built-in entries of Default are not included. The file has the form:
//
//	payloads:
//	  - ports: [53]
//	    hex: "0000100000000000000000000000"
//	  - ports: [123]
//	    hex: "1b0000000000000000000000000000"
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload file: %w", err)
	}

	var doc fileYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse payload file: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Payloads))
	for _, e := range doc.Payloads {
		payload, err := hex.DecodeString(e.HexData)
		if err != nil {
			return nil, fmt.Errorf("decode payload hex for ports %v: %w", e.Ports, err)
		}
		ports := make([]model.Port, 0, len(e.Ports))
		for _, p := range e.Ports {
			port, err := model.NewPort(p)
			if err != nil {
				return nil, fmt.Errorf("payload file: %w", err)
			}
			ports = append(ports, port)
		}
		entries = append(entries, Entry{Ports: ports, Payload: payload})
	}

	return New(entries), nil
}
