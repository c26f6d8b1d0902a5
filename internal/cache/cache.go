// Package cache memoizes resolved user projections for the process
// lifetime. Entries are written once per user ID and never invalidated; a
// profile change is not picked up until restart. That staleness is the
// price of not re-fetching members for every author, mention and reactor.
package cache

import (
	"context"
	"sort"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/MikeSquared-Agency/mirror/internal/model"
)

// MemberFetcher resolves a guild member by user ID. A user that is not a
// member (left the guild, never joined) resolves to (nil, nil), not an
// error.
type MemberFetcher interface {
	FetchMember(ctx context.Context, userID string) (*discordgo.Member, error)
}

type Cache struct {
	fetcher       MemberFetcher
	guildID       string
	roles         map[string]*discordgo.Role
	usernamesOnly bool

	mu            sync.Mutex
	authors       map[string]*model.User
	reactionUsers map[string]*model.ReactionUser
	members       map[string]*discordgo.Member // nil value: resolved, not a member
}

// New builds a cache bound to one guild. Role projections are taken from
// the guild snapshot passed here. When usernamesOnly is set, nicknames in
// projections fall back to the account username.
func New(fetcher MemberFetcher, guild *discordgo.Guild, usernamesOnly bool) *Cache {
	roles := make(map[string]*discordgo.Role, len(guild.Roles))
	for _, r := range guild.Roles {
		roles[r.ID] = r
	}
	return &Cache{
		fetcher:       fetcher,
		guildID:       guild.ID,
		roles:         roles,
		usernamesOnly: usernamesOnly,
		authors:       make(map[string]*model.User),
		reactionUsers: make(map[string]*model.ReactionUser),
		members:       make(map[string]*discordgo.Member),
	}
}

// ResolveAuthor returns the User projection for a message author,
// resolving the guild member on first use and falling back to the bare
// user when the member lookup reports not-found.
func (c *Cache) ResolveAuthor(ctx context.Context, user *discordgo.User) (*model.User, error) {
	c.mu.Lock()
	if u, ok := c.authors[user.ID]; ok {
		c.mu.Unlock()
		return u, nil
	}
	c.mu.Unlock()

	member, err := c.resolveMember(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	u := c.buildUser(user, member)

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.authors[user.ID]; ok {
		return prev, nil
	}
	c.authors[user.ID] = u
	return u, nil
}

// ResolveAuthorID resolves a mentioned user by ID alone. It returns
// (nil, nil) when the target is unknown to the cache and is not a guild
// member, so callers can leave the raw mention token untouched.
func (c *Cache) ResolveAuthorID(ctx context.Context, userID string) (*model.User, error) {
	c.mu.Lock()
	if u, ok := c.authors[userID]; ok {
		c.mu.Unlock()
		return u, nil
	}
	c.mu.Unlock()

	member, err := c.resolveMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	if member == nil || member.User == nil {
		return nil, nil
	}
	u := c.buildUser(member.User, member)

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.authors[userID]; ok {
		return prev, nil
	}
	c.authors[userID] = u
	return u, nil
}

// ResolveReactionUser returns the ReactionUser projection for a reacting
// user, with the same member-or-bare-user fallback as ResolveAuthor.
func (c *Cache) ResolveReactionUser(ctx context.Context, user *discordgo.User) (*model.ReactionUser, error) {
	c.mu.Lock()
	if u, ok := c.reactionUsers[user.ID]; ok {
		c.mu.Unlock()
		return u, nil
	}
	c.mu.Unlock()

	member, err := c.resolveMember(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	name, nickname, avatar := c.identity(user, member)
	ru := &model.ReactionUser{
		ID:            user.ID,
		Name:          name,
		Discriminator: discriminator(user, member),
		Nickname:      nickname,
		IsBot:         user.Bot,
		AvatarURL:     avatar,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.reactionUsers[user.ID]; ok {
		return prev, nil
	}
	c.reactionUsers[user.ID] = ru
	return ru, nil
}

// resolveMember memoizes the member-or-not answer for a user ID. A nil
// member is a valid cached result.
func (c *Cache) resolveMember(ctx context.Context, userID string) (*discordgo.Member, error) {
	c.mu.Lock()
	if m, ok := c.members[userID]; ok {
		c.mu.Unlock()
		return m, nil
	}
	c.mu.Unlock()

	member, err := c.fetcher.FetchMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.members[userID]; ok {
		return prev, nil
	}
	c.members[userID] = member
	return member, nil
}

func (c *Cache) buildUser(user *discordgo.User, member *discordgo.Member) *model.User {
	name, nickname, avatar := c.identity(user, member)
	u := &model.User{
		ID:            user.ID,
		Name:          name,
		Discriminator: discriminator(user, member),
		Nickname:      nickname,
		Color:         c.memberColor(member),
		IsBot:         user.Bot,
		AvatarURL:     avatar,
	}
	if member != nil {
		u.Roles = c.memberRoles(member)
	}
	return u
}

func (c *Cache) identity(user *discordgo.User, member *discordgo.Member) (name, nickname, avatar string) {
	if member != nil && member.User != nil {
		user = member.User
	}
	name = user.Username

	nickname = user.Username
	if !c.usernamesOnly {
		switch {
		case member != nil && member.Nick != "":
			nickname = member.Nick
		case user.GlobalName != "":
			nickname = user.GlobalName
		}
	}

	if member != nil && member.Avatar != "" {
		avatar = member.AvatarURL("512")
	} else {
		avatar = user.AvatarURL("512")
	}
	return name, nickname, avatar
}

// memberRoles projects a member's role IDs against the guild snapshot,
// ordered by descending position.
func (c *Cache) memberRoles(member *discordgo.Member) []model.Role {
	var roles []*discordgo.Role
	for _, id := range member.Roles {
		if id == c.guildID {
			continue // @everyone
		}
		if r, ok := c.roles[id]; ok {
			roles = append(roles, r)
		}
	}
	sort.SliceStable(roles, func(i, j int) bool {
		return roles[i].Position > roles[j].Position
	})

	out := make([]model.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, model.Role{
			ID:       r.ID,
			Name:     r.Name,
			Color:    model.FormatColor(r.Color),
			Position: r.Position,
		})
	}
	return out
}

// memberColor is the color of the highest colored role, nil for members
// with no colored role and for non-members.
func (c *Cache) memberColor(member *discordgo.Member) *string {
	if member == nil {
		return nil
	}
	best := 0
	bestPos := -1
	for _, id := range member.Roles {
		r, ok := c.roles[id]
		if !ok || r.Color == 0 {
			continue
		}
		if r.Position > bestPos {
			bestPos = r.Position
			best = r.Color
		}
	}
	return model.FormatColor(best)
}

func discriminator(user *discordgo.User, member *discordgo.Member) string {
	if member != nil && member.User != nil {
		user = member.User
	}
	if user.Discriminator == "0" {
		return "0000" // legacy-absent sentinel, kept for format compatibility
	}
	return user.Discriminator
}
