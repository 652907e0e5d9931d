// Copyright (c) 2026 Toolshelf. All rights reserved.

// Command browse is the interactive terminal client for the Toolshelf
// directory: a searchable, filterable card list with a detail view and a
// submission form.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/toolshelf/toolshelf/internal/browse"
	"github.com/toolshelf/toolshelf/pkg/toolclient"
)

func main() {
	apiURL := os.Getenv("TOOLSHELF_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	client := toolclient.New(apiURL)
	program := tea.NewProgram(browse.NewModel(client), tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "browse: %v\n", err)
		os.Exit(1)
	}
}
