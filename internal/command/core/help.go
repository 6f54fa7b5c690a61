package core

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"cerebro/internal/command"
	"cerebro/internal/config"
	"cerebro/internal/middleware"
	"cerebro/internal/version"
	"cerebro/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string           { return "help" }
func (c *HelpCommand) Description() string    { return "Show this help menu" }
func (c *HelpCommand) Aliases() []string      { return nil }
func (c *HelpCommand) Category() string       { return config.CategoryUtilities }
func (c *HelpCommand) UserPermissions() int64 { return 0 }
func (c *HelpCommand) BotPermissions() int64  { return 0 }
func (c *HelpCommand) GuildOnly() bool        { return false }

func (c *HelpCommand) Args() []command.Arg {
	return []command.Arg{
		{Name: "command", Description: "Specific command to show help about", Kind: command.String, Rest: true},
	}
}

func (c *HelpCommand) Run(ctx context.Context, inv *command.Invocation) error {
	registry := inv.Data.Commands
	if registry == nil {
		return fmt.Errorf("help: no command registry")
	}
	footer := &discordgo.MessageEmbedFooter{Text: footerText(inv.Data)}

	name := strings.TrimSpace(inv.Options.StringOr("command", ""))
	if name == "" {
		return inv.Reply(ctx, command.Reply{Embed: &discordgo.MessageEmbed{
			Title:       version.AppName + " Help",
			Description: buildHelpByCategory(registry),
			Color:       command.EmbedColor,
			Footer:      footer,
		}})
	}

	name = strings.TrimPrefix(name, inv.Data.Prefix)
	found := registry.Get(name)
	if found == nil {
		return inv.Reply(ctx, command.Reply{Content: fmt.Sprintf("No such command `%s`", name)})
	}

	return inv.Reply(ctx, command.Reply{Embed: &discordgo.MessageEmbed{
		Title:       inv.Data.Prefix + found.Name(),
		Description: buildCommandHelp(inv.Data.Prefix, found),
		Color:       command.EmbedColor,
		Footer:      footer,
	}})
}

func footerText(d *command.Data) string {
	text := fmt.Sprintf("Type %shelp command for more info on a command.", d.Prefix)
	if d.HelpFooter != "" {
		text += "\n" + d.HelpFooter
	}
	return text
}

func buildHelpByCategory(registry *cmd.Registry) string {
	categoryMap := make(map[string][]cmd.Command)
	for _, c := range registry.GetAll() {
		cat := "Other"
		if meta, ok := command.Meta(c); ok {
			cat = meta.Category()
		}
		categoryMap[cat] = append(categoryMap[cat], c)
	}

	cats := make([]string, 0, len(categoryMap))
	for cat := range categoryMap {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		wi, wj := weight(cats[i]), weight(cats[j])
		if wi != wj {
			return wi < wj
		}
		return cats[i] < cats[j]
	})

	var sb strings.Builder
	for _, cat := range cats {
		sb.WriteString(fmt.Sprintf("**%s**\n", cat))
		// GetAll is already sorted by name
		for _, c := range categoryMap[cat] {
			sb.WriteString(fmt.Sprintf("`%s`", c.Name()))
			if meta, ok := command.Meta(c); ok && len(meta.Aliases()) > 0 {
				sb.WriteString(fmt.Sprintf(" (`%s`)", strings.Join(meta.Aliases(), "`, `")))
			}
			sb.WriteString(fmt.Sprintf(" - %s\n", c.Description()))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func weight(cat string) int {
	if w, ok := config.CategoryWeights[cat]; ok {
		return w
	}
	return math.MaxInt
}

func buildCommandHelp(prefix string, c cmd.Command) string {
	var sb strings.Builder
	sb.WriteString(c.Description())

	meta, ok := command.Meta(c)
	if !ok {
		return sb.String()
	}

	usage := prefix + c.Name()
	if args := command.Usage(meta.Args()); args != "" {
		usage += " " + args
	}
	sb.WriteString(fmt.Sprintf("\n\n**Usage:** `%s`", usage))

	for _, a := range meta.Args() {
		sb.WriteString(fmt.Sprintf("\n`%s` (%s) %s", a.Name, a.Kind, a.Description))
	}
	if aliases := meta.Aliases(); len(aliases) > 0 {
		sb.WriteString(fmt.Sprintf("\n**Aliases:** `%s`", strings.Join(aliases, "`, `")))
	}
	if perms := meta.UserPermissions(); perms != 0 {
		sb.WriteString("\n**Permissions:** " + middleware.PermissionList(perms))
	}
	if meta.GuildOnly() {
		sb.WriteString("\n*Server only*")
	}
	return sb.String()
}

// Commands returns the help command.
func Commands() []command.Command {
	return []command.Command{&HelpCommand{}}
}
