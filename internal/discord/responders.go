package discord

import (
	"context"
	"errors"
	"fmt"

	"cerebro/internal/command"

	"github.com/bwmarrin/discordgo"
)

var errEditBeforeReply = errors.New("edit before reply")

type messageAPI interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type interactionAPI interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Replies never ping anyone.
func noMentions() *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{}
}

func embeds(r command.Reply) []*discordgo.MessageEmbed {
	if r.Embed == nil {
		return nil
	}
	return []*discordgo.MessageEmbed{r.Embed}
}

// messageResponder answers prefix commands with a channel message.
type messageResponder struct {
	api       messageAPI
	channelID string
	sent      *discordgo.Message
}

// Defer is a no-op: a prefix command has no acknowledgement deadline.
func (r *messageResponder) Defer(context.Context) error { return nil }

func (r *messageResponder) Reply(ctx context.Context, reply command.Reply) error {
	msg, err := r.api.ChannelMessageSendComplex(r.channelID, &discordgo.MessageSend{
		Content:         reply.Content,
		Embeds:          embeds(reply),
		AllowedMentions: noMentions(),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	r.sent = msg
	return nil
}

func (r *messageResponder) Edit(ctx context.Context, reply command.Reply) error {
	if r.sent == nil {
		return errEditBeforeReply
	}
	content, es := reply.Content, append([]*discordgo.MessageEmbed{}, embeds(reply)...)
	_, err := r.api.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:              r.sent.ID,
		Channel:         r.channelID,
		Content:         &content,
		Embeds:          &es,
		AllowedMentions: noMentions(),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("edit reply: %w", err)
	}
	return nil
}

// interactionResponder answers slash commands with the interaction response.
// After Defer the reply is delivered by editing the deferred response.
type interactionResponder struct {
	api         interactionAPI
	interaction *discordgo.Interaction
	deferred    bool
	replied     bool
}

func (r *interactionResponder) Defer(ctx context.Context) error {
	if r.deferred || r.replied {
		return nil
	}
	err := r.api.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("defer interaction response: %w", err)
	}
	r.deferred = true
	return nil
}

func (r *interactionResponder) Reply(ctx context.Context, reply command.Reply) error {
	if r.deferred {
		if err := r.edit(ctx, reply); err != nil {
			return err
		}
		r.replied = true
		return nil
	}
	err := r.api.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         reply.Content,
			Embeds:          embeds(reply),
			AllowedMentions: noMentions(),
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("respond to interaction: %w", err)
	}
	r.replied = true
	return nil
}

func (r *interactionResponder) Edit(ctx context.Context, reply command.Reply) error {
	if !r.replied {
		return errEditBeforeReply
	}
	return r.edit(ctx, reply)
}

func (r *interactionResponder) edit(ctx context.Context, reply command.Reply) error {
	content, es := reply.Content, append([]*discordgo.MessageEmbed{}, embeds(reply)...)
	_, err := r.api.InteractionResponseEdit(r.interaction, &discordgo.WebhookEdit{
		Content:         &content,
		Embeds:          &es,
		AllowedMentions: noMentions(),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("edit interaction response: %w", err)
	}
	return nil
}
