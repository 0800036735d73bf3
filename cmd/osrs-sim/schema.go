package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/udisondev/osrs-sim/internal/game/eval"
)

func cmdSchema(_ context.Context, a *app, args []string) error {
	if len(args) != 1 {
		fmt.Fprintf(a.out, "Usage: osrs-sim schema %s\n", strings.Join(eval.SchemaKinds(), "|"))
		return errUsage
	}
	s, err := eval.Schema(args[0])
	if err != nil {
		return err
	}
	return writeJSON(a.out, s)
}
