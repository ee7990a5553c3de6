// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package defaults

import (
	"fmt"
	"strings"
	"time"
)

// ParseDuration reads a duration setting. It accepts Go durations ("800ms",
// "1.5s") and bare integers, which are taken as milliseconds. Negative
// values are rejected.
func ParseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	d, err := time.ParseDuration(raw)
	if err != nil {
		ms, msErr := time.ParseDuration(raw + "ms")
		if msErr != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", raw, err)
		}
		d = ms
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid duration %q: must not be negative", raw)
	}
	return d, nil
}
