// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
)

// These constants define the application version and follow the semantic
// versioning 2.0.0 (http://semver.org/).
const (
	appMajor uint = 0
	appMinor uint = 4
	appPatch uint = 0

	// appPreRelease is appended to the version when not empty.
	appPreRelease = "beta"
)

// version returns the application version as a properly formed string per the
// semantic versioning 2.0.0 (http://semver.org/).
func version() string {
	// Start with the major, minor, and patch versions.
	version := fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)

	if appPreRelease != "" {
		version = fmt.Sprintf("%s-%s", version, appPreRelease)
	}

	return version
}
