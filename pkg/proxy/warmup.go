package proxy

import (
	"context"
	"fmt"

	"github.com/yurikomh/portfolio-api/pkg/gamelogs"
	"github.com/yurikomh/portfolio-api/pkg/warmup"
)

// warmupTasks builds the prefetch tasks for the slow upstreams. Tasks for
// unconfigured providers are skipped entirely so the warmer never burns
// OAuth round trips on credentials that are not there.
func (p *Proxy) warmupTasks() []warmup.Task {
	var tasks []warmup.Task

	if p.fflogs.Configured() {
		tasks = append(tasks, warmup.Task{
			Name: "fflogs-rankings",
			Run: func(ctx context.Context) error {
				rankings, err := p.fflogs.CharacterRankings(ctx)
				if err != nil {
					return err
				}
				p.cache.Set("fflogs", map[string]interface{}{
					"rankings":   rankings,
					"profileUrl": p.fflogs.ProfileURL(),
				})
				return nil
			},
		})
	}

	if p.warcraftlogs.Configured() {
		id := gamelogs.CharacterIdentity{
			Name:   p.config.WoW.CharacterName,
			Server: p.config.WoW.Realm,
			Region: p.config.WoW.Region,
		}.Normalize()
		tasks = append(tasks, warmup.Task{
			Name: "warcraftlogs-rankings",
			Run: func(ctx context.Context) error {
				rankings, err := p.warcraftlogs.CharacterRankings(ctx, id)
				if err != nil {
					return err
				}
				p.cache.Set(fmt.Sprintf("warcraftlogs:%s:%s:%s", id.Region, id.Server, id.Name), map[string]interface{}{
					"rankings":   rankings,
					"profileUrl": p.warcraftlogs.ProfileURL(id),
				})
				return nil
			},
		})
	}

	if p.config.WoW.CharacterName != "" {
		wow := p.config.WoW
		tasks = append(tasks, warmup.Task{
			Name: "wow-profile",
			Run: func(ctx context.Context) error {
				profile, err := p.raiderio.CharacterProfile(ctx, wow.Region, wow.Realm, wow.CharacterName)
				if err != nil {
					return err
				}
				p.cache.Set(fmt.Sprintf("wowprofile:%s:%s:%s", wow.Region, wow.Realm, wow.CharacterName),
					map[string]interface{}{"profile": profile})
				return nil
			},
		})
	}

	if p.steam.Configured() {
		tasks = append(tasks, warmup.Task{
			Name: "steam-profile",
			Run: func(ctx context.Context) error {
				profile, err := p.steam.Profile(ctx)
				if err != nil {
					return err
				}
				p.cache.Set("steam:profile", map[string]interface{}{"profile": profile})
				return nil
			},
		})
	}

	return tasks
}
