// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for savegate: the HTTP dispatcher
// (serve), the help-tree crawler (crawl) and configuration management.
package cmd
