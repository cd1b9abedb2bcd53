//go:build dev
// +build dev

package version

import (
	"crypto/rand"
	"github.com/oklog/ulid"
	"time"
)

var (
	devID = ulid.MustNew(ulid.Now(), rand.Reader).String()

	// Version is the version number of the program.
	Version = "dev-" + devID

	// Revision is the git revision that program was built from.
	Revision = devID

	// Branch is the git branch that program was built from.
	Branch = "dev"

	// BuildUser is the user that built program.
	BuildUser = "dev"

	// BuildHost is the host that built program.
	BuildHost = "dev"

	// BuildDate is the date that program was built.
	BuildDate = time.Now().UTC().Format(time.RFC3339)
)
