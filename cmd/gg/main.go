// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/google/uuid"

	"github.com/toolforge/gg/cmd/gg/commands"
)

func main() {
	traceId := uuid.NewString()
	ctx := context.WithValue(context.Background(), commands.TraceIDKey, traceId)
	commands.Execute(ctx)
}
