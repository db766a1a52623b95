// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil holds the process-wide slog logger.
//
// The parser reports repaired input at debug level through a "parser"
// component logger; the CLI, metrics recorder and MCP server use their own
// components.
//
//	logutil.Configure(logutil.Options{Writer: os.Stderr, Debug: true})
//
//	log := logutil.NewLogger("mcp").WithOperation("parse_url")
//	log.Debug("tool failed", "error", err)
//
// Debug output is enabled by Options.Debug or by WEBURL_DEBUG=true. With
// Options.JSON records are written by slog.JSONHandler:
//
//	{"time":"...","level":"DEBUG","msg":"validation error","component":"parser","scheme":"http","kind":"illegal whitespace"}
package logutil
