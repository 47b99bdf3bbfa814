package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrivaux/sift/internal/app"
	"github.com/mrivaux/sift/internal/config"
	"github.com/mrivaux/sift/internal/icons"
	"github.com/mrivaux/sift/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	icons.Init(cfg.Icons)

	st, err := store.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	m := app.New(cfg, st)
	// A dataset on the command line overrides the restored session.
	if len(os.Args) > 1 {
		m = m.WithDataset(os.Args[1])
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
