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

package ui

import (
	"context"
	"time"
)

// FetchWithMinDelay runs fetch and returns its result no sooner than minDelay,
// so the loading state never flickers. Cancelling ctx ends the wait early.
func FetchWithMinDelay[T any](ctx context.Context, minDelay time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	if minDelay <= 0 {
		return fetch(ctx)
	}

	timer := time.NewTimer(minDelay)
	defer timer.Stop()

	v, err := fetch(ctx)

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
	return v, err
}
