// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package format

import "fmt"

// Present the supplied number of bytes in a human-readable binary format.
func Bytes(v float64) string {
	switch {
	case v >= 1<<40:
		return fmt.Sprintf("%.2f TiB", v/(1<<40))

	case v >= 1<<30:
		return fmt.Sprintf("%.2f GiB", v/(1<<30))

	case v >= 1<<20:
		return fmt.Sprintf("%.2f MiB", v/(1<<20))

	case v >= 1<<10:
		return fmt.Sprintf("%.2f KiB", v/(1<<10))

	default:
		return fmt.Sprintf("%.0f B", v)
	}
}

// Present the supplied rate in bytes per second.
func Rate(bytesPerSec float64) string {
	return Bytes(bytesPerSec) + "/s"
}
