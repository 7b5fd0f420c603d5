// Package runner maps build targets onto the GitHub Actions runners that
// can build them.
//
// The catalogue is closed: Runner values other than Linux, MacOS, and
// Windows are never produced by this package.
package runner

import (
	"fmt"
	"strings"
)

// Runner is a GitHub Actions runner image on which one build job executes.
type Runner int

const (
	// Linux is the Ubuntu runner. Older images are preferred so that
	// recent system dependencies do not leak into release binaries.
	Linux Runner = iota
	// MacOS is the macOS runner; it builds both Intel and Apple Silicon targets.
	MacOS
	// Windows is the Windows Server runner.
	Windows
)

// Fallback is used for targets whose triple names no known OS family.
const Fallback = Linux

// Family is the operating-system family of a runner.
type Family int

const (
	FamilyLinux Family = iota
	FamilyMacOS
	FamilyWindows
)

// InstallStyle selects how the dist installer is bootstrapped on a runner.
type InstallStyle int

const (
	InstallShell InstallStyle = iota
	InstallPowerShell
)

type spec struct {
	label   string
	keyword string
	family  Family
	install InstallStyle
}

// catalogue is indexed by Runner and ordered by classification priority.
var catalogue = [...]spec{
	Linux:   {label: "ubuntu-20.04", keyword: "linux", family: FamilyLinux, install: InstallShell},
	MacOS:   {label: "macos-11", keyword: "apple", family: FamilyMacOS, install: InstallShell},
	Windows: {label: "windows-2019", keyword: "windows", family: FamilyWindows, install: InstallPowerShell},
}

func (r Runner) valid() bool {
	return r >= 0 && int(r) < len(catalogue)
}

func (r Runner) mustSpec() spec {
	if !r.valid() {
		panic(fmt.Sprintf("internal error: unknown github runner %d", int(r)))
	}
	return catalogue[r]
}

// String returns the runner label used in "runs-on".
func (r Runner) String() string {
	if !r.valid() {
		return fmt.Sprintf("Runner(%d)", int(r))
	}
	return catalogue[r].label
}

// Family returns the runner's operating-system family.
func (r Runner) Family() Family {
	return r.mustSpec().family
}

// InstallStyle returns how the installer is bootstrapped on this runner.
func (r Runner) InstallStyle() InstallStyle {
	return r.mustSpec().install
}

// MarshalText encodes the runner as its label.
func (r Runner) MarshalText() ([]byte, error) {
	if !r.valid() {
		return nil, fmt.Errorf("unknown github runner %d", int(r))
	}
	return []byte(r.String()), nil
}

// String returns a human-readable family name.
func (f Family) String() string {
	switch f {
	case FamilyLinux:
		return "linux"
	case FamilyMacOS:
		return "macos"
	case FamilyWindows:
		return "windows"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// ForTarget returns the runner that builds target. The triple is matched
// by substring, in catalogue order, so "x86_64-unknown-linux-gnu" is a
// Linux target and "aarch64-apple-darwin" is a macOS target. The second
// result is false when no runner matches.
func ForTarget(target string) (Runner, bool) {
	for i, s := range catalogue {
		if strings.Contains(target, s.keyword) {
			return Runner(i), true
		}
	}
	return 0, false
}

// InstallerFor selects the installer expression for r: sh on Linux and
// macOS runners, ps1 on Windows runners.
//
// It panics if r is not in the catalogue.
func InstallerFor(r Runner, sh, ps1 string) string {
	switch r.InstallStyle() {
	case InstallShell:
		return sh
	case InstallPowerShell:
		return ps1
	default:
		panic(fmt.Sprintf("internal error: no installer for github runner %s", r))
	}
}
