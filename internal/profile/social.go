package profile

import (
	"context"

	"marketplace-service/internal/model"

	"go.uber.org/zap"
)

// SocialMetricUpdate carries new follower and engagement figures for one
// platform. Nil fields leave the stored value unchanged.
type SocialMetricUpdate struct {
	Platform       string   `json:"platform"`
	Followers      *int64   `json:"followers,omitempty"`
	EngagementRate *float64 `json:"engagement_rate,omitempty"`
}

// UpdateSocialMetrics applies per-platform metric updates to an influencer.
// Unknown platforms are ignored. The network list is rebuilt rather than
// patched in place and persisted as a whole.
func (r *Registry) UpdateSocialMetrics(ctx context.Context, influencerID uint, updates []SocialMetricUpdate) (*model.Influencer, error) {
	influencer, err := r.store.InfluencerByID(ctx, influencerID)
	if err != nil {
		return nil, err
	}

	byPlatform := make(map[string]SocialMetricUpdate, len(updates))
	for _, u := range updates {
		byPlatform[u.Platform] = u
	}

	networks := make([]model.SocialNetwork, 0, len(influencer.SocialNetworks))
	for _, network := range influencer.SocialNetworks {
		if update, ok := byPlatform[network.Platform]; ok {
			if update.Followers != nil {
				network.Followers = *update.Followers
			}
			if update.EngagementRate != nil {
				network.EngagementRate = *update.EngagementRate
			}
		}
		networks = append(networks, network)
	}

	if err := r.store.ReplaceSocialNetworks(ctx, influencerID, networks); err != nil {
		return nil, err
	}
	influencer.SocialNetworks = networks

	r.log.Info("Social metrics updated",
		zap.Uint("influencer_id", influencerID), zap.Int("platforms", len(updates)))
	return influencer, nil
}
