package main

import (
	"context"

	"github.com/faizmokh/gridlog/internal/cli"
)

func main() {
	ctx := context.Background()
	cli.Main(ctx)
}
