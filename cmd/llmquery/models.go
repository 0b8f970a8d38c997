package main

import (
	"encoding/json"
	"fmt"
	"os"

	// Packages
	llm "github.com/mutablelogic/go-llmquery"
	registry "github.com/mutablelogic/go-llmquery/pkg/registry"
	table "github.com/mutablelogic/go-llmquery/pkg/ui/table"
	term "golang.org/x/term"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ListModelsCmd struct {
	Names  bool `name:"names" help:"Only print canonical model names"`
	Reload bool `name:"reload" help:"Reload the registry file"`
}

type GetModelCmd struct {
	Name   string `arg:"" help:"Model name or alias"`
	Reload bool   `name:"reload" help:"Reload the registry file"`
}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListModelsCmd) Run(globals *Globals) error {
	reg, err := globals.registry()
	if err != nil {
		return err
	}
	var opts []registry.ResolveOpt
	if cmd.Reload {
		opts = append(opts, registry.WithForceReload())
	}

	// Canonical names
	if cmd.Names {
		names, err := reg.List(opts...)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	// Table of definitions
	defs, err := reg.Definitions(opts...)
	if err != nil {
		return err
	}
	models := table.NewModels(defs)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(models.Render(terminalWidth(os.Stdout)))
	} else {
		fmt.Println(models.Text())
	}
	return nil
}

func (cmd *GetModelCmd) Run(globals *Globals) error {
	reg, err := globals.registry()
	if err != nil {
		return err
	}
	var opts []registry.ResolveOpt
	if cmd.Reload {
		opts = append(opts, registry.WithForceReload())
	}

	name, def, err := reg.Resolve(cmd.Name, opts...)
	if err != nil {
		return err
	} else if name == "" {
		return llm.ErrModel.Withf("model %q is not available", cmd.Name)
	}

	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
