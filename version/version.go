package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// FromBuildInfo describes the running binary: its module version when installed with
// "go install", otherwise the VCS revision it was built from.
func FromBuildInfo() (version string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unavailable"
	}

	return describe(info)
}

func describe(info *debug.BuildInfo) string {
	var revision, ts string

	modified := false

	for i := range info.Settings {
		switch info.Settings[i].Key {
		case "vcs.revision":
			revision = info.Settings[i].Value
		case "vcs.time":
			ts = info.Settings[i].Value
		case "vcs.modified":
			modified = info.Settings[i].Value == "true"
		default:
			continue
		}
	}

	var b strings.Builder

	if v := info.Main.Version; v != "" && v != "(devel)" {
		b.WriteString(v)
	} else {
		b.WriteString("devel")
	}

	if revision != "" {
		if len(revision) > 12 {
			revision = revision[:12]
		}

		_, _ = fmt.Fprintf(&b, " revision %s", revision)

		if modified {
			b.WriteString("-dirty")
		}
	}

	if ts != "" {
		_, _ = fmt.Fprintf(&b, " at %s", ts)
	}

	return b.String()
}
