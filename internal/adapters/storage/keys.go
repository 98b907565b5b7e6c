package storage

// Storage keys. Bid histories live under one key per auction slug.
const (
	settingsKey = "auction_admin_settings_v1"
	auctionsKey = "auction_list_v1"
	bidsPrefix  = "auction_bids_v1_"
)

func bidsKey(slug string) string {
	return bidsPrefix + slug
}
