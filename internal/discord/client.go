// Package discord wraps the gateway/REST client behind the narrow surface
// the export pipeline consumes: paginated history, member lookup with a
// clean not-found signal, reactor enumeration and channel eligibility.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

const historyPageSize = 100

type Client struct {
	session *discordgo.Session
	guildID string
	logger  *slog.Logger
}

func New(token, guildID string, logger *slog.Logger) (*Client, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent

	return &Client{session: session, guildID: guildID, logger: logger}, nil
}

// Open connects to the gateway and blocks until the session is ready.
func (c *Client) Open() error {
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.session.Close()
}

// Guild fetches the export guild, including its role list.
func (c *Client) Guild(ctx context.Context) (*discordgo.Guild, error) {
	guild, err := c.session.Guild(c.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch guild %s: %w", c.guildID, err)
	}
	return guild, nil
}

// Channel looks up a channel by ID, serving from gateway state when
// possible.
func (c *Client) Channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	if ch, err := c.session.State.Channel(channelID); err == nil {
		return ch, nil
	}
	ch, err := c.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch channel %s: %w", channelID, err)
	}
	return ch, nil
}

// OnMessageCreate registers a handler for real-time messages in the export
// guild. Messages from other guilds and DMs are dropped.
func (c *Client) OnMessageCreate(fn func(m *discordgo.Message)) {
	c.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.GuildID != c.guildID {
			return
		}
		fn(m.Message)
	})
}

// HistoryOldestFirst walks a channel's entire history in ascending message
// order, invoking fn for every message. The walk is unbounded but finite.
func (c *Client) HistoryOldestFirst(ctx context.Context, channelID string, fn func(m *discordgo.Message) error) error {
	after := "0"
	for {
		page, err := c.session.ChannelMessages(channelID, historyPageSize, "", after, "", discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("fetch history page for %s: %w", channelID, err)
		}
		if len(page) == 0 {
			return nil
		}
		// The API returns pages newest-first; deliver ascending.
		sortAscending(page)
		for _, m := range page {
			if err := fn(m); err != nil {
				return err
			}
		}
		after = page[len(page)-1].ID
	}
}

// FetchMember resolves a guild member by user ID. Not-found resolves to
// (nil, nil) so callers can fall back to the bare user.
func (c *Client) FetchMember(ctx context.Context, userID string) (*discordgo.Member, error) {
	member, err := c.session.GuildMember(c.guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch member %s: %w", userID, err)
	}
	return member, nil
}

// Reactors enumerates the full reactor list for one emoji on one message,
// in platform order. No truncation is applied.
func (c *Client) Reactors(ctx context.Context, channelID, messageID string, emoji *discordgo.Emoji) ([]*discordgo.User, error) {
	var users []*discordgo.User
	after := ""
	for {
		page, err := c.session.MessageReactions(channelID, messageID, emoji.APIName(), historyPageSize, "", after, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("fetch reactors for %s: %w", messageID, err)
		}
		if len(page) == 0 {
			return users, nil
		}
		users = append(users, page...)
		after = page[len(page)-1].ID
	}
}

// exportable reports whether a channel type is covered by exports: text,
// news and voice channels plus threads.
func exportable(t discordgo.ChannelType) bool {
	switch t {
	case discordgo.ChannelTypeGuildText,
		discordgo.ChannelTypeGuildNews,
		discordgo.ChannelTypeGuildVoice,
		discordgo.ChannelTypeGuildNewsThread,
		discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread:
		return true
	}
	return false
}

// EligibleChannels enumerates export-eligible channels: exportable type,
// not excluded, and readable by the bot (voice channels additionally need
// connect permission).
func (c *Client) EligibleChannels(ctx context.Context, excluded map[string]bool) ([]*discordgo.Channel, error) {
	channels, err := c.session.GuildChannels(c.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	if threads, err := c.session.GuildThreadsActive(c.guildID, discordgo.WithContext(ctx)); err != nil {
		c.logger.Warn("failed to list active threads", "error", err)
	} else {
		channels = append(channels, threads.Threads...)
	}

	botID := c.session.State.User.ID
	var eligible []*discordgo.Channel
	for _, ch := range channels {
		if !exportable(ch.Type) || excluded[ch.ID] {
			continue
		}
		perms, err := c.session.UserChannelPermissions(botID, ch.ID)
		if err != nil {
			c.logger.Warn("failed to resolve channel permissions", "channel", ch.ID, "error", err)
			continue
		}
		if perms&discordgo.PermissionViewChannel == 0 ||
			perms&discordgo.PermissionReadMessageHistory == 0 {
			continue
		}
		if ch.Type == discordgo.ChannelTypeGuildVoice && perms&discordgo.PermissionVoiceConnect == 0 {
			continue
		}
		eligible = append(eligible, ch)
	}
	return eligible, nil
}

func sortAscending(page []*discordgo.Message) {
	if len(page) < 2 {
		return
	}
	if snowflake(page[0].ID) <= snowflake(page[len(page)-1].ID) {
		return
	}
	for i, j := 0, len(page)-1; i < j; i, j = i+1, j-1 {
		page[i], page[j] = page[j], page[i]
	}
}

func snowflake(id string) uint64 {
	n, _ := strconv.ParseUint(id, 10, 64)
	return n
}

func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
