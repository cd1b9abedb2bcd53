package cmd

import (
	"github.com/kadaan/linedensity/config"
	"github.com/kadaan/linedensity/lib/command"
	"github.com/kadaan/linedensity/lib/renderer"
)

func init() {
	command.NewCommand(
		Root,
		"compare",
		"Compares two renderings",
		`Prints the structural dissimilarity (DSSIM) of a candidate rendering 
against a reference rendering. The candidate is resized to the size of the 
reference. Identical images score 1.`,
		new(config.CompareConfig),
		renderer.NewComparer()).Configure(func(fb config.FlagBuilder, cfg *config.CompareConfig) {
		fb.Image(&cfg.Reference, "reference", "reference image, usually the full resolution rendering").Required()
		fb.Image(&cfg.Candidate, "candidate", "candidate image, usually a downsampled rendering").Required()
		fb.Validate(cfg.Validate)
	})
}
