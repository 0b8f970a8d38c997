package main

import (
	"fmt"

	// Packages
	version "github.com/mutablelogic/go-llmquery/pkg/version"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type VersionCmd struct{}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *VersionCmd) Run(globals *Globals) error {
	fmt.Println(string(version.New(execName()).JSON()))
	return nil
}
