// Package export converts raw platform messages into DCE-compatible
// documents and drives full channel exports.
package export

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MikeSquared-Agency/mirror/internal/cache"
	"github.com/MikeSquared-Agency/mirror/internal/emoji"
	"github.com/MikeSquared-Agency/mirror/internal/model"
)

// ReactorLister enumerates the users behind one reaction, in platform
// order.
type ReactorLister interface {
	Reactors(ctx context.Context, channelID, messageID string, emoji *discordgo.Emoji) ([]*discordgo.User, error)
}

var mentionPattern = regexp.MustCompile(`<@!?(\d+)>`)

// Transformer converts one raw message into a document Message, resolving
// authors, mentions and reactors through the entity cache.
type Transformer struct {
	cache    *cache.Cache
	reactors ReactorLister
}

func NewTransformer(c *cache.Cache, reactors ReactorLister) *Transformer {
	return &Transformer{cache: c, reactors: reactors}
}

func (t *Transformer) Transform(ctx context.Context, m *discordgo.Message) (*model.Message, error) {
	author, err := t.cache.ResolveAuthor(ctx, m.Author)
	if err != nil {
		return nil, fmt.Errorf("resolve author %s: %w", m.Author.ID, err)
	}

	content, err := t.rewriteMentions(ctx, m.Content)
	if err != nil {
		return nil, err
	}

	reactions, err := t.transformReactions(ctx, m)
	if err != nil {
		return nil, err
	}

	mentions := make([]model.User, 0, len(m.Mentions))
	for _, u := range m.Mentions {
		mu, err := t.cache.ResolveAuthor(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("resolve mention %s: %w", u.ID, err)
		}
		mentions = append(mentions, *mu)
	}

	out := &model.Message{
		ID:          m.ID,
		Type:        messageType(m.Type),
		Timestamp:   model.FormatTime(m.Timestamp),
		IsPinned:    m.Pinned,
		Content:     content,
		Author:      *author,
		Attachments: transformAttachments(m.Attachments),
		Embeds:      transformEmbeds(m.Embeds),
		Stickers:    transformStickers(m.StickerItems),
		Reactions:   reactions,
		Mentions:    mentions,
	}
	if m.EditedTimestamp != nil {
		out.TimestampEdited = model.String(model.FormatTime(*m.EditedTimestamp))
	}
	if m.MessageReference != nil {
		out.Reference = &model.MessageReference{
			MessageID: m.MessageReference.MessageID,
			ChannelID: m.MessageReference.ChannelID,
			GuildID:   m.MessageReference.GuildID,
		}
	}
	return out, nil
}

// rewriteMentions replaces <@id> and <@!id> tokens with @name for every
// target the cache can resolve. Unresolvable tokens are left verbatim.
func (t *Transformer) rewriteMentions(ctx context.Context, content string) (string, error) {
	for _, match := range mentionPattern.FindAllStringSubmatch(content, -1) {
		user, err := t.cache.ResolveAuthorID(ctx, match[1])
		if err != nil {
			return "", fmt.Errorf("resolve mention token %s: %w", match[0], err)
		}
		if user == nil {
			continue
		}
		content = strings.ReplaceAll(content, match[0], "@"+user.Name)
	}
	return content, nil
}

func (t *Transformer) transformReactions(ctx context.Context, m *discordgo.Message) ([]model.Reaction, error) {
	reactions := make([]model.Reaction, 0, len(m.Reactions))
	for _, r := range m.Reactions {
		rawUsers, err := t.reactors.Reactors(ctx, m.ChannelID, m.ID, r.Emoji)
		if err != nil {
			return nil, fmt.Errorf("list reactors on %s: %w", m.ID, err)
		}
		users := make([]model.ReactionUser, 0, len(rawUsers))
		for _, u := range rawUsers {
			ru, err := t.cache.ResolveReactionUser(ctx, u)
			if err != nil {
				return nil, fmt.Errorf("resolve reactor %s: %w", u.ID, err)
			}
			users = append(users, *ru)
		}
		reactions = append(reactions, model.Reaction{
			Emoji: transformEmoji(r.Emoji),
			Count: r.Count,
			Users: users,
		})
	}
	return reactions, nil
}

func transformEmoji(e *discordgo.Emoji) model.ReactionEmoji {
	if e.ID == "" {
		// Non-custom emoji: the name is the glyph itself.
		return model.ReactionEmoji{
			Name: e.Name,
			Code: emoji.Shortcode(e.Name),
		}
	}
	url := discordgo.EndpointEmoji(e.ID)
	if e.Animated {
		url = discordgo.EndpointEmojiAnimated(e.ID)
	}
	return model.ReactionEmoji{
		ID:         e.ID,
		Name:       e.Name,
		Code:       e.Name,
		IsAnimated: e.Animated,
		ImageURL:   model.String(url),
	}
}

func transformAttachments(atts []*discordgo.MessageAttachment) []model.Attachment {
	out := make([]model.Attachment, 0, len(atts))
	for _, a := range atts {
		out = append(out, model.Attachment{
			ID:            a.ID,
			URL:           a.URL,
			FileName:      a.Filename,
			FileSizeBytes: a.Size,
		})
	}
	return out
}

func transformEmbeds(embeds []*discordgo.MessageEmbed) []model.Embed {
	out := make([]model.Embed, 0, len(embeds))
	for _, e := range embeds {
		ne := model.Embed{
			Title:       e.Title,
			URL:         optStr(e.URL),
			Timestamp:   embedTimestamp(e.Timestamp),
			Description: e.Description,
			Images:      []model.EmbedImage{},
			Fields:      make([]model.EmbedField, 0, len(e.Fields)),
		}
		if e.Color != 0 {
			ne.Color = model.FormatColor(e.Color)
		}
		if e.Author != nil {
			ne.Author = &model.EmbedAuthor{
				Name:         e.Author.Name,
				URL:          optStr(e.Author.URL),
				IconURL:      e.Author.IconURL,
				IconProxyURL: e.Author.ProxyIconURL,
			}
		}
		if e.Thumbnail != nil {
			ne.Thumbnail = &model.EmbedImage{
				URL:    e.Thumbnail.ProxyURL,
				Width:  e.Thumbnail.Width,
				Height: e.Thumbnail.Height,
			}
		}
		if e.Video != nil {
			ne.Video = &model.EmbedImage{
				URL:    e.Video.URL,
				Width:  e.Video.Width,
				Height: e.Video.Height,
			}
		}
		if e.Footer != nil {
			ne.Footer = &model.EmbedFooter{
				Text:         e.Footer.Text,
				IconURL:      e.Footer.IconURL,
				IconProxyURL: e.Footer.ProxyIconURL,
			}
		}
		for _, f := range e.Fields {
			ne.Fields = append(ne.Fields, model.EmbedField{
				Name:     f.Name,
				Value:    f.Value,
				IsInline: f.Inline,
			})
		}
		out = append(out, ne)
	}
	return out
}

func transformStickers(stickers []*discordgo.StickerItem) []model.Sticker {
	out := make([]model.Sticker, 0, len(stickers))
	for _, s := range stickers {
		out = append(out, model.Sticker{
			ID:        s.ID,
			Name:      s.Name,
			Format:    model.StickerTypes[int(s.FormatType)],
			SourceURL: stickerURL(s.ID, s.FormatType),
		})
	}
	return out
}

func stickerURL(id string, format discordgo.StickerFormat) string {
	ext := ".png"
	switch int(format) {
	case 3: // Lottie
		ext = ".json"
	case 4: // Gif
		ext = ".gif"
	}
	return "https://cdn.discordapp.com/stickers/" + id + ext
}

func messageType(t discordgo.MessageType) string {
	if label, ok := model.MessageTypes[int(t)]; ok {
		return label
	}
	return "Default"
}

// embedTimestamp reformats the platform's ISO-8601 embed timestamp into
// the DCE representation. Unparseable values stay null.
func embedTimestamp(ts string) *string {
	if ts == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return nil
	}
	return model.String(model.FormatTime(t))
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
