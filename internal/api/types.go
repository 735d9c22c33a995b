package api

import (
	"github.com/samcharles93/hexdbc/internal/dbccache"
	"github.com/samcharles93/hexdbc/pkg/schema"
)

type ResponseError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}

type TableListResponse struct {
	Object string   `json:"object"`
	Root   string   `json:"root,omitempty"`
	Data   []string `json:"data"`
}

type TableResponse struct {
	Object          string `json:"object"`
	Name            string `json:"name"`
	RecordCount     uint32 `json:"record_count"`
	FieldCount      uint32 `json:"field_count"`
	RecordSize      uint32 `json:"record_size"`
	StringBlockSize uint32 `json:"string_block_size"`
	SourcePath      string `json:"source_path,omitempty"`
	HasSchema       bool   `json:"has_schema"`
	SchemaFields    int    `json:"schema_fields,omitempty"`
	Revision        string `json:"revision,omitempty"`
}

type EntryResponse struct {
	Object string `json:"object"`
	dbccache.Entry
}

type PreviewResponse struct {
	Object  string `json:"object"`
	Table   string `json:"table"`
	ID      uint32 `json:"id"`
	Preview string `json:"preview"`
}

type RowsResponse struct {
	Object string           `json:"object"`
	Table  string           `json:"table"`
	Offset int              `json:"offset"`
	Total  int              `json:"total"`
	Data   [][]schema.Value `json:"data"`
}

type OverrideResponse struct {
	Object      string `json:"object"`
	Table       string `json:"table"`
	Revision    string `json:"revision"`
	RecordCount uint32 `json:"record_count"`
}

type RelationsResponse struct {
	Object string            `json:"object"`
	Table  string            `json:"table"`
	Data   map[string]string `json:"data"`
}

type ResolveResponse struct {
	Object  string  `json:"object"`
	Table   string  `json:"table"`
	Field   string  `json:"field"`
	Target  string  `json:"target"`
	Value   *uint32 `json:"value,omitempty"`
	Preview string  `json:"preview,omitempty"`
}
