/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package main

import (
	"fmt"
	"os"

	"github.com/libregraph/ldifstream/cmd"
	"github.com/libregraph/ldifstream/cmd/ldifstream/boltdb"
	"github.com/libregraph/ldifstream/cmd/ldifstream/parse"
)

func main() {
	cmd.RootCmd.Use = "ldifstream"

	cmd.RootCmd.AddCommand(parse.CommandParse())
	cmd.RootCmd.AddCommand(boltdb.CommandBoltDB())
	if err := cmd.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
