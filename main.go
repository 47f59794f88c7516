package main

import (
	"github.com/shelflife/shelflife/internal/config"
	"github.com/shelflife/shelflife/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
