package version

import (
	"bytes"
	"runtime"
	"strings"
	"text/template"
)

const (
	Name = "linedensity"
)

var (
	goVersion = runtime.Version()
)

var versionInfoTmpl = `
{{.name}}, version {{.version}} (branch: {{.branch}}, revision: {{.revision}})
  build user:       {{.buildUser}}@{{.buildHost}}
  build date:       {{.buildDate}}
  go version:       {{.goVersion}}
  platform:         {{.platform}}
`

// Print formats the version info as a string.
func Print() string {
	m := map[string]string{
		"name":      Name,
		"version":   Version,
		"revision":  Revision,
		"branch":    Branch,
		"buildUser": BuildUser,
		"buildHost": BuildHost,
		"buildDate": BuildDate,
		"goVersion": goVersion,
		"platform":  runtime.GOOS + "/" + runtime.GOARCH,
	}
	t := template.Must(template.New("version").Parse(versionInfoTmpl))

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "version", m); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
