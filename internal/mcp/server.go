// Package mcp exposes the classification pipeline as MCP tools over stdio.
//
// The server registers four tools: column_prediction labels one column of a
// CSV file, parser runs the full pipeline and writes output.csv, process_file
// combines both, and list_files enumerates the available inputs.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/colsense/colsense/internal/core"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the pipeline service behind MCP stdio transport.
type Server struct {
	mcpServer *mcpsdk.Server
	service   *core.Service
}

// NewServer creates a new stdio MCP server over the given service.
func NewServer(service *core.Service, version string) *Server {
	if version == "" {
		version = "0.0.0"
	}

	mcpServer := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "colsense",
		Version: version,
	}, nil)

	s := &Server{
		mcpServer: mcpServer,
		service:   service,
	}
	s.registerTools()
	return s
}

// Run starts the MCP server using stdio transport.
//
// This method blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	if err := s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{}); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// registerTools registers all MCP tools with the server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "column_prediction",
		Description: "Predict the semantic type of one column of a CSV file in the data directory. Returns one of: phonenumber, companyname, country, date, other, with a confidence score.",
	}, s.handleColumnPrediction)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "parser",
		Description: "Classify every column of a CSV file, pick the best phone and company columns, parse them into structured fields, and write the augmented table to output.csv next to the input.",
	}, s.handleParser)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "process_file",
		Description: "Run the full pipeline over a CSV file: per-column semantic classification plus phone and company parsing, writing output.csv and returning both results.",
	}, s.handleProcessFile)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_files",
		Description: "List the CSV files available in the data directory.",
	}, s.handleListFiles)
}

// ColumnPredictionParams defines parameters for the column_prediction tool.
type ColumnPredictionParams struct {
	FilePath   string `json:"file_path" jsonschema:"Name of a CSV file in the data directory"`
	ColumnName string `json:"column_name" jsonschema:"Header name of the column to classify"`
}

// ParserParams defines parameters for the parser and process_file tools.
type ParserParams struct {
	FilePath string `json:"file_path" jsonschema:"Name of a CSV file in the data directory"`
}

// ListFilesParams defines parameters for the list_files tool (none needed).
type ListFilesParams struct{}

// handleColumnPrediction handles the column_prediction tool call.
func (s *Server) handleColumnPrediction(ctx context.Context, req *mcpsdk.CallToolRequest, params *ColumnPredictionParams) (*mcpsdk.CallToolResult, any, error) {
	res, err := s.service.ClassifyFile(ctx, params.FilePath, params.ColumnName)
	if err != nil {
		return nil, nil, fmt.Errorf("column prediction failed: %w", err)
	}

	result := &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{
				Text: fmt.Sprintf("Column %q of %s: %s (confidence %.2f)",
					params.ColumnName, params.FilePath, res.Label, res.Confidence),
			},
		},
	}
	return result, res, nil
}

// handleParser handles the parser tool call.
func (s *Server) handleParser(ctx context.Context, req *mcpsdk.CallToolRequest, params *ParserParams) (*mcpsdk.CallToolResult, any, error) {
	summary, err := s.service.ParseFile(ctx, params.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("parse failed: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Parsed %s (%d rows) into %s\n", params.FilePath, summary.Rows, summary.OutputFile)
	if summary.Phone.Found {
		fmt.Fprintf(&b, "Phone column: %s (confidence %.2f)\n", summary.Phone.Column, summary.Phone.Confidence)
	} else {
		b.WriteString("Phone column: none found\n")
	}
	if summary.Company.Found {
		fmt.Fprintf(&b, "Company column: %s (confidence %.2f)\n", summary.Company.Column, summary.Company.Confidence)
	} else {
		b.WriteString("Company column: none found\n")
	}

	result := &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: b.String()},
		},
	}
	return result, summary, nil
}

// handleProcessFile handles the process_file tool call.
func (s *Server) handleProcessFile(ctx context.Context, req *mcpsdk.CallToolRequest, params *ParserParams) (*mcpsdk.CallToolResult, any, error) {
	res, err := s.service.ProcessFile(ctx, params.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("process failed: %w", err)
	}

	detail, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}

	result := &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(detail)},
		},
	}
	return result, res, nil
}

// handleListFiles handles the list_files tool call.
func (s *Server) handleListFiles(ctx context.Context, req *mcpsdk.CallToolRequest, params *ListFilesParams) (*mcpsdk.CallToolResult, any, error) {
	files, err := s.service.ListFiles(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list files failed: %w", err)
	}

	text := "No CSV files in the data directory."
	if len(files) > 0 {
		text = "Available CSV files:\n" + strings.Join(files, "\n")
	}

	result := &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: text},
		},
	}
	return result, map[string][]string{"files": files}, nil
}
