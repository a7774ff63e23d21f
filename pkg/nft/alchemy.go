package nft

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yurikomh/portfolio-api/pkg/utils"
)

const defaultBaseURL = "https://eth-mainnet.g.alchemy.com"

// NFT is the reshaped gallery entry. Field names mirror what the gallery
// component consumed from the original OpenSea-era API, so swapping
// providers never touched the front-end.
type NFT struct {
	Contract    Contract   `json:"contract"`
	TokenID     string     `json:"tokenId"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Image       Image      `json:"image"`
	Collection  Collection `json:"collection"`
}

// Contract identifies the NFT's contract.
type Contract struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

// Image carries the cached, thumbnail and original image URLs; any of them
// may be empty.
type Image struct {
	CachedURL    string `json:"cachedUrl,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	OriginalURL  string `json:"originalUrl,omitempty"`
}

// Collection carries OpenSea collection metadata when Alchemy has it.
type Collection struct {
	Name string `json:"name,omitempty"`
	Slug string `json:"slug,omitempty"`
}

// Page is one page of a wallet's NFTs. PageKey is non-empty when more
// pages remain.
type Page struct {
	NFTs       []NFT  `json:"nfts"`
	PageKey    string `json:"pageKey,omitempty"`
	TotalCount int    `json:"totalCount"`
}

// alchemyResponse mirrors the getNFTsForOwner wire format, limited to the
// fields the reshape touches.
type alchemyResponse struct {
	OwnedNFTs []struct {
		Contract struct {
			Address             string   `json:"address"`
			Name                string   `json:"name"`
			SpamClassifications []string `json:"spamClassifications"`
			OpenSeaMetadata     struct {
				CollectionName string `json:"collectionName"`
				CollectionSlug string `json:"collectionSlug"`
			} `json:"openSeaMetadata"`
		} `json:"contract"`
		TokenID     string `json:"tokenId"`
		Name        string `json:"name"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Image       struct {
			CachedURL    string `json:"cachedUrl"`
			ThumbnailURL string `json:"thumbnailUrl"`
			OriginalURL  string `json:"originalUrl"`
		} `json:"image"`
		Raw struct {
			Metadata struct {
				Image string `json:"image"`
			} `json:"metadata"`
		} `json:"raw"`
	} `json:"ownedNfts"`
	PageKey    string `json:"pageKey"`
	TotalCount int    `json:"totalCount"`
}

// Client fetches a wallet's NFTs from the Alchemy NFT API.
type Client struct {
	apiKey     string
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

// NewClient creates an Alchemy NFT client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: utils.NewUpstreamClient(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// NFTsForOwner fetches one page of a wallet's NFTs, dropping anything
// Alchemy classifies as spam.
func (c *Client) NFTsForOwner(ctx context.Context, owner string, pageSize int, pageKey string) (*Page, error) {
	if pageSize <= 0 {
		pageSize = 100
	}

	params := url.Values{
		"owner":        {owner},
		"withMetadata": {"true"},
		"pageSize":     {fmt.Sprintf("%d", pageSize)},
	}
	if pageKey != "" {
		params.Set("pageKey", pageKey)
	}

	endpoint := fmt.Sprintf("%s/nft/v3/%s/getNFTsForOwner?%s", c.baseURL, c.apiKey, params.Encode())

	var raw alchemyResponse
	if err := utils.GetJSON(ctx, c.httpClient, endpoint, nil, &raw); err != nil {
		return nil, err
	}

	page := &Page{
		NFTs:       []NFT{},
		PageKey:    raw.PageKey,
		TotalCount: raw.TotalCount,
	}

	for _, owned := range raw.OwnedNFTs {
		if len(owned.Contract.SpamClassifications) > 0 {
			continue
		}

		name := owned.Name
		if name == "" {
			name = owned.Title
		}
		if name == "" {
			name = "#" + owned.TokenID
		}

		contractName := owned.Contract.Name
		if contractName == "" {
			contractName = owned.Contract.OpenSeaMetadata.CollectionName
		}

		collectionName := owned.Contract.OpenSeaMetadata.CollectionName
		if collectionName == "" {
			collectionName = owned.Contract.Name
		}

		cachedURL := owned.Image.CachedURL
		if cachedURL == "" {
			cachedURL = owned.Image.ThumbnailURL
		}
		thumbnailURL := owned.Image.ThumbnailURL
		if thumbnailURL == "" {
			thumbnailURL = owned.Image.CachedURL
		}
		originalURL := owned.Image.OriginalURL
		if originalURL == "" {
			originalURL = owned.Raw.Metadata.Image
		}

		page.NFTs = append(page.NFTs, NFT{
			Contract: Contract{
				Address: owned.Contract.Address,
				Name:    contractName,
			},
			TokenID:     owned.TokenID,
			Name:        name,
			Description: owned.Description,
			Image: Image{
				CachedURL:    cachedURL,
				ThumbnailURL: thumbnailURL,
				OriginalURL:  originalURL,
			},
			Collection: Collection{
				Name: collectionName,
				Slug: owned.Contract.OpenSeaMetadata.CollectionSlug,
			},
		})
	}

	if page.TotalCount == 0 {
		page.TotalCount = len(page.NFTs)
	}

	return page, nil
}
