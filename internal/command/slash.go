package command

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// SlashDefinition builds the application command for c from its descriptor.
func SlashDefinition(c Command) *discordgo.ApplicationCommand {
	def := &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
	if perms := c.UserPermissions(); perms != 0 {
		def.DefaultMemberPermissions = &perms
	}
	if c.GuildOnly() {
		dm := false
		def.DMPermission = &dm
	}

	for _, a := range c.Args() {
		opt := &discordgo.ApplicationCommandOption{
			Type:        optionType(a.Kind),
			Name:        a.Name,
			Description: a.Description,
			Required:    a.Required,
		}
		if a.Kind == Integer {
			opt.MinValue = a.Min
			if a.Max != nil {
				opt.MaxValue = *a.Max
			}
		}
		def.Options = append(def.Options, opt)
	}
	return def
}

func optionType(k ArgKind) discordgo.ApplicationCommandOptionType {
	switch k {
	case Integer:
		return discordgo.ApplicationCommandOptionInteger
	case User, Member:
		return discordgo.ApplicationCommandOptionUser
	default:
		return discordgo.ApplicationCommandOptionString
	}
}

// InteractionOptions decodes slash command options using the declared
// arguments. User options are taken from the resolved data of the interaction.
func InteractionOptions(args []Arg, data discordgo.ApplicationCommandInteractionData) (Options, error) {
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))
	for _, o := range data.Options {
		byName[o.Name] = o
	}

	opts := Options{}
	for _, a := range args {
		o, ok := byName[a.Name]
		if !ok {
			if a.Required {
				return nil, &ArgError{Arg: a.Name, Err: ErrMissingArgument}
			}
			continue
		}

		v, err := decodeOption(a, o, data.Resolved)
		if err != nil {
			if a.Required {
				return nil, &ArgError{Arg: a.Name, Err: err}
			}
			continue
		}
		opts[a.Name] = v
	}
	return opts, nil
}

func decodeOption(a Arg, o *discordgo.ApplicationCommandInteractionDataOption, res *discordgo.ApplicationCommandInteractionDataResolved) (any, error) {
	switch o.Type {
	case discordgo.ApplicationCommandOptionString:
		return o.StringValue(), nil
	case discordgo.ApplicationCommandOptionInteger:
		return o.IntValue(), nil
	case discordgo.ApplicationCommandOptionUser:
		id, _ := o.Value.(string)
		if res == nil || res.Users[id] == nil {
			return nil, fmt.Errorf("%w: unresolved user %s", ErrBadArgument, id)
		}
		user := res.Users[id]
		if a.Kind == User {
			return user, nil
		}
		m, ok := res.Members[id]
		if !ok || m == nil {
			return nil, fmt.Errorf("%w: %s is not a member of this server", ErrBadArgument, user.Username)
		}
		member := *m
		member.User = user
		return &member, nil
	default:
		return nil, fmt.Errorf("%w: unsupported option type %d", ErrBadArgument, o.Type)
	}
}
