/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package boltdb

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/libregraph/ldifstream/cmd/ldifstream/boltdb/list"
	"github.com/libregraph/ldifstream/cmd/ldifstream/boltdb/load"
)

var (
	BoltDBFile string
	BaseDN     string
	LogLevel   = "info"
	InputFile  string
)

func CommandBoltDB() *cobra.Command {
	boltdbCmd := &cobra.Command{
		Use:   "boltdb [...args]",
		Short: "Utility commands for the BoltDB entry store",
	}

	boltdbCmd.PersistentFlags().StringVar(&LogLevel, "log-level", LogLevel, "Log level (one of panic, fatal, error, warn, info or debug)")
	boltdbCmd.PersistentFlags().StringVar(&BoltDBFile, "boltdb-file", BoltDBFile, "Filename of the BoltDB database")

	loadLDIFCmd := &cobra.Command{
		Use:   "load",
		Short: "Initialize a database from an LDIF file",
		Long: `The load command streams entries from an LDIF file into a BoltDB database.
Entries are stored one by one as they are parsed, memory use stays bounded
by the largest single entry in the file.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := loadLDIF(cmd, args); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}
	loadLDIFCmd.Flags().StringVar(&InputFile, "input-file", InputFile, "Filename of LDIF to read into database")
	loadLDIFCmd.Flags().StringVar(&BaseDN, "base-dn", BaseDN, "BaseDN all loaded entries must be contained in")
	if err := loadLDIFCmd.MarkFlagRequired("input-file"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the DNs of all stored entries",
		Run: func(cmd *cobra.Command, args []string) {
			if err := listDNs(cmd, args); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	boltdbCmd.AddCommand(loadLDIFCmd)
	boltdbCmd.AddCommand(listCmd)

	return boltdbCmd
}

func loadLDIF(_ *cobra.Command, _ []string) error {
	loader, err := load.NewLDIFLoader(LogLevel, BoltDBFile, BaseDN)
	if err != nil {
		return err
	}
	return loader.Load(InputFile)
}

func listDNs(_ *cobra.Command, _ []string) error {
	lister, err := list.NewLister(LogLevel, BoltDBFile)
	if err != nil {
		return err
	}
	return lister.List(os.Stdout)
}
