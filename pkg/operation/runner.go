// Copyright 2025 walteh LLC
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

package operation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 OperationRunner executes operations one after another
type OperationRunner struct{}

// 🏗️ NewRunner creates a new runner
func NewRunner() *OperationRunner {
	return &OperationRunner{}
}

// 🏃 Run executes ops in order and stops at the first error
func (r *OperationRunner) Run(ctx context.Context, ops ...Operation) error {
	logger := zerolog.Ctx(ctx)

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}

		start := time.Now()
		err := op.Execute(ctx)
		logger.Debug().
			Int("index", i).
			Dur("took", time.Since(start)).
			Err(err).
			Msg("operation finished")
		if err != nil {
			return err
		}
	}

	return nil
}
