package export

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MikeSquared-Agency/mirror/internal/model"
)

// HistoryPager walks a channel's full history oldest-first.
type HistoryPager interface {
	HistoryOldestFirst(ctx context.Context, channelID string, fn func(m *discordgo.Message) error) error
}

// ChannelResolver looks up a channel by ID, used to name parent
// categories in channel snapshots.
type ChannelResolver interface {
	Channel(ctx context.Context, channelID string) (*discordgo.Channel, error)
}

// Exporter drives a full historical export of one channel.
type Exporter struct {
	pager       HistoryPager
	channels    ChannelResolver
	transformer *Transformer
	guild       *discordgo.Guild
}

func NewExporter(pager HistoryPager, channels ChannelResolver, transformer *Transformer, guild *discordgo.Guild) *Exporter {
	return &Exporter{
		pager:       pager,
		channels:    channels,
		transformer: transformer,
		guild:       guild,
	}
}

// ExportChannel pulls the channel's entire history oldest-first and
// assembles an Export document. A channel with no history yields
// (nil, nil); callers must not persist anything in that case.
func (e *Exporter) ExportChannel(ctx context.Context, ch *discordgo.Channel) (*model.Export, error) {
	messages := []model.Message{}
	err := e.pager.HistoryOldestFirst(ctx, ch.ID, func(m *discordgo.Message) error {
		msg, err := e.transformer.Transform(ctx, m)
		if err != nil {
			return err
		}
		messages = append(messages, *msg)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", ch.ID, err)
	}
	if len(messages) == 0 {
		return nil, nil
	}

	return &model.Export{
		Guild:        e.guildSnapshot(),
		Channel:      e.channelSnapshot(ctx, ch),
		DateRange:    model.DateRange{},
		ExportedAt:   model.FormatTime(time.Now()),
		Messages:     messages,
		MessageCount: len(messages),
	}, nil
}

func (e *Exporter) guildSnapshot() model.Guild {
	g := model.Guild{
		ID:   e.guild.ID,
		Name: e.guild.Name,
	}
	if url := e.guild.IconURL("512"); url != "" {
		g.IconURL = model.String(url)
	}
	return g
}

// channelSnapshot captures the channel's metadata at export time. For
// threads the parent is the owning channel; for regular channels it is
// the category.
func (e *Exporter) channelSnapshot(ctx context.Context, ch *discordgo.Channel) model.Channel {
	out := model.Channel{
		ID:    ch.ID,
		Type:  model.ChannelTypes[int(ch.Type)],
		Name:  ch.Name,
		Topic: optStr(ch.Topic),
	}
	if ch.ParentID != "" {
		if parent, err := e.channels.Channel(ctx, ch.ParentID); err == nil {
			out.CategoryID = parent.ID
			out.Category = parent.Name
		}
	}
	return out
}
