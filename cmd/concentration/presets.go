package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lox/concentration/internal/server"
)

// PresetsCmd lists the difficulties a server with the given config offers
type PresetsCmd struct {
	Config string `short:"c" default:"concentration.hcl" help:"Path to HCL configuration file"`
}

func (c *PresetsCmd) Run() error {
	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPAIRS\tCARDS\tCOLUMNS")
	for _, d := range cfg.DifficultyList() {
		marker := ""
		if d.Name == cfg.Server.DefaultDifficulty {
			marker = " (default)"
		}
		fmt.Fprintf(w, "%s%s\t%d\t%d\t%d\n", d.Name, marker, d.Pairs, d.Pairs*2, d.Columns)
	}
	return w.Flush()
}
