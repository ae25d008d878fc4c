/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a scenario file and decodes it into a document Set. The format
// is chosen by extension: .yaml/.yml are decoded as a YAML sequence, anything
// else as a JSON array.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("failed to read scenario %q: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(f)
	default:
		return DecodeJSON(f)
	}
}

type jsonDocument struct {
	DocID   string          `json:"docId"`
	DocType string          `json:"docType"`
	Data    json.RawMessage `json:"data"`
}

// DecodeJSON decodes a JSON array of documents.
func DecodeJSON(r io.Reader) (Set, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Set{}, err
	}

	var docs []jsonDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return Set{}, fmt.Errorf("scenario must be a JSON array of documents: %w", err)
	}

	var set Set
	for _, doc := range docs {
		switch doc.DocType {
		case TypeWorkOrder:
			var data WorkOrderData
			if err := json.Unmarshal(doc.Data, &data); err != nil {
				return Set{}, fmt.Errorf("invalid workOrder document %q: %w", doc.DocID, err)
			}
			set.WorkOrders = append(set.WorkOrders, WorkOrderDocument{DocID: doc.DocID, DocType: doc.DocType, Data: data})
		case TypeWorkCenter:
			var data WorkCenterData
			if err := json.Unmarshal(doc.Data, &data); err != nil {
				return Set{}, fmt.Errorf("invalid workCenter document %q: %w", doc.DocID, err)
			}
			set.WorkCenters = append(set.WorkCenters, WorkCenterDocument{DocID: doc.DocID, DocType: doc.DocType, Data: data})
		default:
			set.Ignored++
		}
	}
	return set, nil
}

type yamlDocument struct {
	DocID   string    `yaml:"docId"`
	DocType string    `yaml:"docType"`
	Data    yaml.Node `yaml:"data"`
}

// DecodeYAML decodes a YAML sequence of documents.
func DecodeYAML(r io.Reader) (Set, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Set{}, err
	}

	var docs []yamlDocument
	if err := yaml.Unmarshal(bytes.TrimSpace(raw), &docs); err != nil {
		return Set{}, fmt.Errorf("scenario must be a YAML sequence of documents: %w", err)
	}

	var set Set
	for _, doc := range docs {
		switch doc.DocType {
		case TypeWorkOrder:
			var data WorkOrderData
			if err := doc.Data.Decode(&data); err != nil {
				return Set{}, fmt.Errorf("invalid workOrder document %q: %w", doc.DocID, err)
			}
			set.WorkOrders = append(set.WorkOrders, WorkOrderDocument{DocID: doc.DocID, DocType: doc.DocType, Data: data})
		case TypeWorkCenter:
			var data WorkCenterData
			if err := doc.Data.Decode(&data); err != nil {
				return Set{}, fmt.Errorf("invalid workCenter document %q: %w", doc.DocID, err)
			}
			set.WorkCenters = append(set.WorkCenters, WorkCenterDocument{DocID: doc.DocID, DocType: doc.DocType, Data: data})
		default:
			set.Ignored++
		}
	}
	return set, nil
}
