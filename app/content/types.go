package content

// Entry is a curated demo content entry loaded from a catalog YAML file.
// The entry name is derived from the filename and doubles as the stable
// catalog identifier in the database.
type Entry struct {
	Name     string `yaml:"-"`
	Creator  string `yaml:"creator"`
	Caption  string `yaml:"caption"`
	Category string `yaml:"category"`

	Media struct {
		Kind      string   `yaml:"kind"`
		VideoURL  string   `yaml:"video_url"`
		ImageURLs []string `yaml:"image_urls"`
	} `yaml:"media"`

	Monetized   bool  `yaml:"monetized"`
	RewardCents int64 `yaml:"reward_cents"`

	Counters struct {
		Likes    int `yaml:"likes"`
		Comments int `yaml:"comments"`
		Shares   int `yaml:"shares"`
	} `yaml:"counters"`
}
