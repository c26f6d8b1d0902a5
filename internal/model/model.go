// Package model defines the DiscordChatExporter-compatible document shapes
// persisted for each mirrored channel. Field names and omission rules must
// match the external format byte for byte: optional fields that the source
// lacks are dropped from the output entirely (nil pointer), while nullable
// fields serialize as explicit null.
package model

import (
	"fmt"
	"strings"
	"time"
)

// ChannelTypes maps Discord channel type codes to DCE labels.
var ChannelTypes = map[int]string{
	0:  "GuildTextChat",
	1:  "DirectTextChat",
	2:  "GuildVoiceChat",
	3:  "DirectGroupTextChat",
	4:  "GuildCategory",
	5:  "GuildNews",
	10: "GuildNewsThread",
	11: "GuildPublicThread",
	12: "GuildPrivateThread",
	13: "GuildStageVoice",
	14: "GuildDirectory",
	15: "GuildForum",
}

// MessageTypes maps Discord message type codes to DCE labels. Unknown codes
// fall back to "Default".
var MessageTypes = map[int]string{
	0:  "Default",
	1:  "RecipientAdd",
	2:  "RecipientRemove",
	3:  "Call",
	4:  "ChannelNameChange",
	5:  "ChannelIconChange",
	6:  "ChannelPinnedMessage",
	7:  "GuildMemberJoin",
	18: "ThreadCreated",
	19: "Reply",
}

// StickerTypes maps Discord sticker format codes to DCE labels.
var StickerTypes = map[int]string{
	1: "Png",
	2: "Apng",
	3: "Lottie",
	4: "Gif",
}

type Guild struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	IconURL *string `json:"iconUrl"`
}

type Channel struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	CategoryID string  `json:"categoryId"`
	Category   string  `json:"category"`
	Name       string  `json:"name"`
	Topic      *string `json:"topic"`
}

// DateRange is always empty here (full-history exports only) but the keys
// must be present for format compatibility.
type DateRange struct {
	After  *string `json:"after"`
	Before *string `json:"before"`
}

type Role struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Color    *string `json:"color"`
	Position int     `json:"position"`
}

type User struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Discriminator string  `json:"discriminator"`
	Nickname      string  `json:"nickname"`
	Color         *string `json:"color"`
	IsBot         bool    `json:"isBot"`
	Roles         []Role  `json:"roles,omitempty"`
	AvatarURL     string  `json:"avatarUrl"`
}

type Attachment struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	FileName      string `json:"fileName"`
	FileSizeBytes int    `json:"fileSizeBytes"`
}

type EmbedAuthor struct {
	Name         string  `json:"name"`
	URL          *string `json:"url"`
	IconURL      string  `json:"iconUrl,omitempty"`
	IconProxyURL string  `json:"iconProxyUrl,omitempty"`
}

type EmbedImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type EmbedFooter struct {
	Text         string `json:"text"`
	IconURL      string `json:"iconUrl,omitempty"`
	IconProxyURL string `json:"iconProxyUrl,omitempty"`
}

type EmbedField struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	IsInline bool   `json:"isInline"`
}

// Embed mirrors the DCE embed shape. Title and description are always
// present (empty string when the source lacks them); the sub-objects are
// emitted only when the source embed carried them.
type Embed struct {
	Title       string       `json:"title"`
	URL         *string      `json:"url"`
	Timestamp   *string      `json:"timestamp"`
	Description string       `json:"description"`
	Color       *string      `json:"color,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
	Thumbnail   *EmbedImage  `json:"thumbnail,omitempty"`
	Video       *EmbedImage  `json:"video,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Image       *EmbedImage  `json:"image,omitempty"`
	Images      []EmbedImage `json:"images"`
	Fields      []EmbedField `json:"fields"`
}

type Sticker struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Format    string `json:"format"`
	SourceURL string `json:"sourceUrl"`
}

type ReactionEmoji struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	IsAnimated bool    `json:"isAnimated"`
	ImageURL   *string `json:"imageUrl"`
}

// ReactionUser is a User without the role list.
type ReactionUser struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Discriminator string `json:"discriminator"`
	Nickname      string `json:"nickname"`
	IsBot         bool   `json:"isBot"`
	AvatarURL     string `json:"avatarUrl"`
}

type Reaction struct {
	Emoji ReactionEmoji  `json:"emoji"`
	Count int            `json:"count"`
	Users []ReactionUser `json:"users"`
}

type MessageReference struct {
	MessageID string `json:"messageId"`
	ChannelID string `json:"channelId"`
	GuildID   string `json:"guildId"`
}

type Message struct {
	ID                 string            `json:"id"`
	Type               string            `json:"type"`
	Timestamp          string            `json:"timestamp"`
	TimestampEdited    *string           `json:"timestampEdited"`
	CallEndedTimestamp *string           `json:"callEndedTimestamp"`
	IsPinned           bool              `json:"isPinned"`
	Content            string            `json:"content"`
	Author             User              `json:"author"`
	Attachments        []Attachment      `json:"attachments"`
	Embeds             []Embed           `json:"embeds"`
	Stickers           []Sticker         `json:"stickers"`
	Reactions          []Reaction        `json:"reactions"`
	Mentions           []User            `json:"mentions"`
	Reference          *MessageReference `json:"reference,omitempty"`
}

type Export struct {
	Guild        Guild     `json:"guild"`
	Channel      Channel   `json:"channel"`
	DateRange    DateRange `json:"dateRange"`
	ExportedAt   string    `json:"exportedAt"`
	Messages     []Message `json:"messages"`
	MessageCount int       `json:"messageCount"`
}

// FormatTime renders a timestamp the way DCE does: local representation at
// UTC offset zero with up to four fractional-second digits, trailing zeros
// stripped (never fewer than one digit), and a +00:00 suffix.
func FormatTime(t time.Time) string {
	t = t.UTC()
	frac := strings.TrimRight(fmt.Sprintf("%06d", t.Nanosecond()/1000), "0")
	if len(frac) > 4 {
		frac = frac[:4]
	}
	if frac == "" {
		frac = "0"
	}
	return t.Format("2006-01-02T15:04:05.") + frac + "+00:00"
}

// FormatColor normalizes a Discord color value to "#RRGGBB" (uppercase).
// Zero is the platform's "no color" sentinel and normalizes to nil.
func FormatColor(color int) *string {
	if color == 0 {
		return nil
	}
	s := fmt.Sprintf("#%06X", color)
	return &s
}

// String returns a pointer to s, for nullable document fields.
func String(s string) *string {
	return &s
}
