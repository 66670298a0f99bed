package vcpu

import "fmt"

// Version identifies the revision of this virtual machine core. It mirrors
// the major/minor/patch triple the original Rust prototype tracked in
// version.rs, without the Cargo-macro indirection.
type Version struct {
	Major int
	Minor int
	Patch int
}

// CoreVersion is the version of the vcpu core implemented by this package.
var CoreVersion = Version{Major: 0, Minor: 1, Patch: 0}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
