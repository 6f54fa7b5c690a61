// Command cli is the operator tool: it checks duration strings the way the
// bot parses them and lists the commands the bot registers.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"cerebro/internal/command"
	"cerebro/internal/discord"
	v "cerebro/internal/version"
	"cerebro/pkg/duration"
	"cerebro/pkg/util"

	"github.com/alecthomas/kong"
)

type cli struct {
	Duration durationCmd      `cmd:"" help:"Parse a duration such as 90min and print its seconds."`
	Commands commandsCmd      `cmd:"" help:"List the commands the bot registers."`
	Version  kong.VersionFlag `help:"Print the version and exit."`
}

func main() {
	ctx := kong.Parse(
		&cli{},
		kong.Name("cerebro-cli"),
		kong.Description(v.AppName+" operator tool"),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": v.Version},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

type durationCmd struct {
	Input  string `arg:"" help:"Duration to parse."`
	Strict bool   `help:"Reject unknown units instead of reading them as zero."`
}

func (d *durationCmd) Run(ctx *kong.Context) error {
	p := duration.Parser{}
	if d.Strict {
		p.Policy = duration.Strict
	}
	secs, err := p.Parse(d.Input)
	if err != nil {
		return err
	}

	span := util.SplitSeconds(secs).String()
	if span == "" {
		span = "0s"
	}
	fmt.Fprintf(ctx.Stdout, "%d seconds (%s)\n", secs, span)
	return nil
}

type commandsCmd struct {
	JSON bool `help:"Print the slash definitions as JSON."`
}

func (c *commandsCmd) Run(ctx *kong.Context) error {
	reg, err := discord.BuildRegistry(true, 0)
	if err != nil {
		return err
	}
	defs := discord.Definitions(reg)

	if c.JSON {
		enc := json.NewEncoder(ctx.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(defs)
	}

	hashes := make(map[string]string, len(defs))
	for _, d := range defs {
		hashes[d.Name] = discord.HashDefinition(d)
	}
	for _, rc := range reg.GetAll() {
		meta, ok := command.Meta(rc)
		if !ok {
			continue
		}
		aliases := "-"
		if len(meta.Aliases()) > 0 {
			aliases = strings.Join(meta.Aliases(), ",")
		}
		fmt.Fprintf(ctx.Stdout, "%-10s %-8s %.8s  %s\n", rc.Name(), aliases, hashes[rc.Name()], command.Usage(meta.Args()))
	}
	return nil
}
