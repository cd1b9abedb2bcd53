package cmd

import (
	"github.com/kadaan/linedensity/lib/command"
	"github.com/kadaan/linedensity/version"
)

var (
	Root = command.NewRootCommand(
		"line density visualizations",
		version.Name+` renders line density heatmaps of many time series. Each 
series is drawn as a polyline, normalized per pixel column and summed, so 
the colors show where most series pass through. Renderings of downsampled 
data can be compared against the full resolution rendering.`)
)
