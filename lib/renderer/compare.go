package renderer

import (
	"fmt"
	"github.com/kadaan/linedensity/config"
	"github.com/kadaan/linedensity/lib/command"
	"github.com/kadaan/linedensity/lib/dssim"
	"github.com/kadaan/linedensity/lib/imageio"
	"io"
	"k8s.io/klog/v2"
	"os"
)

func NewComparer() command.Task[config.CompareConfig] {
	return &comparer{out: os.Stdout}
}

type comparer struct {
	out io.Writer
}

// Run prints the DSSIM of the candidate image against the reference image.
func (t *comparer) Run(c *config.CompareConfig) error {
	reference, err := imageio.ReadFile(c.Reference)
	if err != nil {
		return err
	}
	candidate, err := imageio.ReadFile(c.Candidate)
	if err != nil {
		return err
	}
	s, err := dssim.SSIM(reference, candidate)
	if err != nil {
		return err
	}
	klog.V(1).Infof("SSIM of %s against %s: %.6f", c.Candidate, c.Reference, s)
	_, err = fmt.Fprintln(t.out, dssim.FromSSIM(s))
	return err
}
