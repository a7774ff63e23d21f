package raiderio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/yurikomh/portfolio-api/pkg/utils"
)

// Raider.io is a free API, no key required.
const defaultBaseURL = "https://raider.io"

const profileFields = "gear,mythic_plus_scores_by_season:current,mythic_plus_best_runs:all,raid_progression,mythic_plus_ranks"

// currentTierSlugs orders raid progression with the current tier first.
var currentTierSlugs = []string{"manaforge-omega", "liberation-of-undermine", "nerubar-palace"}

var raidNames = map[string]string{
	"liberation-of-undermine":       "Liberation of Undermine",
	"nerubar-palace":                "Nerub'ar Palace",
	"blackrock-depths":              "Blackrock Depths",
	"amirdrassil-the-dreams-hope":   "Amirdrassil",
	"aberrus-the-shadowed-crucible": "Aberrus",
	"vault-of-the-incarnates":       "Vault of the Incarnates",
	"manaforge-omega":               "Manaforge Omega",
}

var avatarSuffix = regexp.MustCompile(`-avatar\.jpg.*$`)

// Profile is the reshaped WoW character profile for the stats panel.
type Profile struct {
	Name              string     `json:"name"`
	Realm             string     `json:"realm"`
	Region            string     `json:"region"`
	Class             string     `json:"class"`
	ActiveSpec        string     `json:"activeSpec"`
	ActiveRole        string     `json:"activeRole"`
	Race              string     `json:"race"`
	Faction           string     `json:"faction"`
	AchievementPoints int        `json:"achievementPoints"`
	ThumbnailURL      string     `json:"thumbnailUrl,omitempty"`
	RenderURL         string     `json:"renderUrl,omitempty"`
	ProfileURL        string     `json:"profileUrl,omitempty"`
	Gear              Gear       `json:"gear"`
	MythicPlus        MythicPlus `json:"mythicPlus"`
	Raids             []RaidTier `json:"raids"`
}

// Gear carries equipped and total item levels.
type Gear struct {
	ItemLevel      float64 `json:"itemLevel"`
	ItemLevelTotal float64 `json:"itemLevelTotal"`
}

// MythicPlus carries the current-season rating and best runs.
type MythicPlus struct {
	Rating      float64 `json:"rating"`
	RatingColor string  `json:"ratingColor"`
	BestRuns    []Run   `json:"bestRuns"`
}

// Run is one reshaped mythic+ run.
type Run struct {
	Dungeon         string   `json:"dungeon"`
	ShortName       string   `json:"shortName"`
	Level           int      `json:"level"`
	Score           float64  `json:"score"`
	CompletedInTime bool     `json:"completedInTime"`
	Upgrades        int      `json:"upgrades"`
	Affixes         []string `json:"affixes"`
	URL             string   `json:"url,omitempty"`
	IconURL         string   `json:"iconUrl,omitempty"`
}

// RaidTier is raid progression for one tier.
type RaidTier struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Summary     string `json:"summary"`
	NormalKills int    `json:"normalKills"`
	HeroicKills int    `json:"heroicKills"`
	MythicKills int    `json:"mythicKills"`
	TotalBosses int    `json:"totalBosses"`
}

// characterResponse mirrors the Raider.io profile wire format, limited to
// the fields the reshape touches.
type characterResponse struct {
	Name              string `json:"name"`
	Realm             string `json:"realm"`
	Region            string `json:"region"`
	Class             string `json:"class"`
	ActiveSpecName    string `json:"active_spec_name"`
	ActiveSpecRole    string `json:"active_spec_role"`
	Race              string `json:"race"`
	Faction           string `json:"faction"`
	AchievementPoints int    `json:"achievement_points"`
	ThumbnailURL      string `json:"thumbnail_url"`
	ProfileURL        string `json:"profile_url"`
	Gear              struct {
		ItemLevelEquipped float64 `json:"item_level_equipped"`
		ItemLevelTotal    float64 `json:"item_level_total"`
	} `json:"gear"`
	MythicPlusScoresBySeason []struct {
		Scores struct {
			All float64 `json:"all"`
		} `json:"scores"`
		Segments struct {
			All struct {
				Color string `json:"color"`
			} `json:"all"`
		} `json:"segments"`
	} `json:"mythic_plus_scores_by_season"`
	MythicPlusBestRuns []struct {
		Dungeon             string  `json:"dungeon"`
		ShortName           string  `json:"short_name"`
		MythicLevel         int     `json:"mythic_level"`
		Score               float64 `json:"score"`
		NumKeystoneUpgrades int     `json:"num_keystone_upgrades"`
		URL                 string  `json:"url"`
		IconURL             string  `json:"icon_url"`
		Affixes             []struct {
			Name string `json:"name"`
		} `json:"affixes"`
	} `json:"mythic_plus_best_runs"`
	RaidProgression map[string]struct {
		Summary            string `json:"summary"`
		NormalBossesKilled int    `json:"normal_bosses_killed"`
		HeroicBossesKilled int    `json:"heroic_bosses_killed"`
		MythicBossesKilled int    `json:"mythic_bosses_killed"`
		TotalBosses        int    `json:"total_bosses"`
	} `json:"raid_progression"`
}

// Client fetches WoW character data from Raider.io.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different host, for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a Raider.io client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: utils.NewUpstreamClient(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CharacterProfile fetches and reshapes the full character profile,
// including mythic+ and raid progression, in one upstream call.
func (c *Client) CharacterProfile(ctx context.Context, region, realm, name string) (*Profile, error) {
	query := url.Values{
		"region": {region},
		"realm":  {realm},
		"name":   {name},
		"fields": {profileFields},
	}
	endpoint := fmt.Sprintf("%s/api/v1/characters/profile?%s", c.baseURL, query.Encode())

	var raw characterResponse
	if err := utils.GetJSON(ctx, c.httpClient, endpoint, nil, &raw); err != nil {
		return nil, err
	}

	profile := &Profile{
		Name:              raw.Name,
		Realm:             raw.Realm,
		Region:            raw.Region,
		Class:             raw.Class,
		ActiveSpec:        raw.ActiveSpecName,
		ActiveRole:        raw.ActiveSpecRole,
		Race:              raw.Race,
		Faction:           raw.Faction,
		AchievementPoints: raw.AchievementPoints,
		ThumbnailURL:      raw.ThumbnailURL,
		RenderURL:         renderURL(raw.ThumbnailURL),
		ProfileURL:        raw.ProfileURL,
		Gear: Gear{
			ItemLevel:      raw.Gear.ItemLevelEquipped,
			ItemLevelTotal: raw.Gear.ItemLevelTotal,
		},
		Raids: reshapeRaids(raw),
	}

	if len(raw.MythicPlusScoresBySeason) > 0 {
		season := raw.MythicPlusScoresBySeason[0]
		profile.MythicPlus.Rating = season.Scores.All
		profile.MythicPlus.RatingColor = season.Segments.All.Color
	}
	if profile.MythicPlus.RatingColor == "" {
		profile.MythicPlus.RatingColor = "#ffffff"
	}

	profile.MythicPlus.BestRuns = []Run{}
	for i, run := range raw.MythicPlusBestRuns {
		if i >= 8 {
			break
		}
		affixes := make([]string, 0, len(run.Affixes))
		for _, affix := range run.Affixes {
			affixes = append(affixes, affix.Name)
		}
		profile.MythicPlus.BestRuns = append(profile.MythicPlus.BestRuns, Run{
			Dungeon:         run.Dungeon,
			ShortName:       run.ShortName,
			Level:           run.MythicLevel,
			Score:           run.Score,
			CompletedInTime: run.NumKeystoneUpgrades > 0,
			Upgrades:        run.NumKeystoneUpgrades,
			Affixes:         affixes,
			URL:             run.URL,
			IconURL:         run.IconURL,
		})
	}

	return profile, nil
}

// renderURL derives the full character render from the avatar thumbnail:
// .../{id}-avatar.jpg?... -> .../{id}-main-raw.png
func renderURL(thumbnailURL string) string {
	if thumbnailURL == "" {
		return ""
	}
	return avatarSuffix.ReplaceAllString(thumbnailURL, "-main-raw.png")
}

// reshapeRaids orders raid progression current tier first and keeps the
// four most relevant tiers.
func reshapeRaids(raw characterResponse) []RaidTier {
	raids := make([]RaidTier, 0, len(raw.RaidProgression))
	for slug, progress := range raw.RaidProgression {
		raids = append(raids, RaidTier{
			Slug:        slug,
			Name:        formatRaidName(slug),
			Summary:     progress.Summary,
			NormalKills: progress.NormalBossesKilled,
			HeroicKills: progress.HeroicBossesKilled,
			MythicKills: progress.MythicBossesKilled,
			TotalBosses: progress.TotalBosses,
		})
	}

	priority := func(slug string) int {
		for i, s := range currentTierSlugs {
			if s == slug {
				return i
			}
		}
		return -1
	}

	sort.SliceStable(raids, func(i, j int) bool {
		pi, pj := priority(raids[i].Slug), priority(raids[j].Slug)
		switch {
		case pi != -1 && pj != -1:
			return pi < pj
		case pi != -1:
			return true
		case pj != -1:
			return false
		default:
			return raids[i].MythicKills > raids[j].MythicKills
		}
	})

	if len(raids) > 4 {
		raids = raids[:4]
	}
	return raids
}

// formatRaidName turns a raid slug into a display name, falling back to
// title-casing the slug for tiers not in the table.
func formatRaidName(slug string) string {
	if name, ok := raidNames[slug]; ok {
		return name
	}
	words := strings.Split(slug, "-")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
