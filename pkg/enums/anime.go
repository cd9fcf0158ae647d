package enums

// AnimeOrder sorts anime listings.
type AnimeOrder string

const (
	AnimeOrderID            AnimeOrder = "id"
	AnimeOrderIDDesc        AnimeOrder = "id_desc"
	AnimeOrderRanked        AnimeOrder = "ranked"
	AnimeOrderKind          AnimeOrder = "kind"
	AnimeOrderPopularity    AnimeOrder = "popularity"
	AnimeOrderName          AnimeOrder = "name"
	AnimeOrderAiredOn       AnimeOrder = "aired_on"
	AnimeOrderEpisodes      AnimeOrder = "episodes"
	AnimeOrderStatus        AnimeOrder = "status"
	AnimeOrderCreatedAt     AnimeOrder = "created_at"
	AnimeOrderCreatedAtDesc AnimeOrder = "created_at_desc"
	AnimeOrderRandom        AnimeOrder = "random"
)

var animeOrders = newSet("id", "id_desc", "ranked", "kind", "popularity", "name",
	"aired_on", "episodes", "status", "created_at", "created_at_desc", "random")

func (v AnimeOrder) String() string { return string(v) }
func (v AnimeOrder) Valid() bool    { return animeOrders.has(string(v)) }

// AnimeKind filters anime by format. Negatable.
type AnimeKind string

const (
	AnimeKindTV      AnimeKind = "tv"
	AnimeKindTV13    AnimeKind = "tv_13"
	AnimeKindTV24    AnimeKind = "tv_24"
	AnimeKindTV48    AnimeKind = "tv_48"
	AnimeKindMovie   AnimeKind = "movie"
	AnimeKindOVA     AnimeKind = "ova"
	AnimeKindONA     AnimeKind = "ona"
	AnimeKindSpecial AnimeKind = "special"
	AnimeKindMusic   AnimeKind = "music"
)

var animeKinds = newSet("tv", "tv_13", "tv_24", "tv_48", "movie", "ova", "ona", "special", "music")

func (v AnimeKind) String() string { return string(v) }
func (v AnimeKind) Valid() bool    { return animeKinds.hasNegatable(string(v)) }

// AnimeStatus filters anime by airing state. Negatable.
type AnimeStatus string

const (
	AnimeStatusAnons    AnimeStatus = "anons"
	AnimeStatusOngoing  AnimeStatus = "ongoing"
	AnimeStatusReleased AnimeStatus = "released"
)

var animeStatuses = newSet("anons", "ongoing", "released")

func (v AnimeStatus) String() string { return string(v) }
func (v AnimeStatus) Valid() bool    { return animeStatuses.hasNegatable(string(v)) }

// AnimeTopicKind filters anime topics.
type AnimeTopicKind string

const (
	AnimeTopicAnons    AnimeTopicKind = "anons"
	AnimeTopicOngoing  AnimeTopicKind = "ongoing"
	AnimeTopicReleased AnimeTopicKind = "released"
	AnimeTopicEpisode  AnimeTopicKind = "episode"
)

var animeTopicKinds = newSet("anons", "ongoing", "released", "episode")

func (v AnimeTopicKind) String() string { return string(v) }
func (v AnimeTopicKind) Valid() bool    { return animeTopicKinds.has(string(v)) }

// AnimeDuration filters anime by episode length: S under 10 minutes,
// D up to 30 minutes, F longer. Negatable.
type AnimeDuration string

const (
	AnimeDurationShort  AnimeDuration = "S"
	AnimeDurationMedium AnimeDuration = "D"
	AnimeDurationLong   AnimeDuration = "F"
)

var animeDurations = newSet("S", "D", "F")

func (v AnimeDuration) String() string { return string(v) }
func (v AnimeDuration) Valid() bool    { return animeDurations.hasNegatable(string(v)) }

// AnimeRating filters anime by age rating. Negatable.
type AnimeRating string

const (
	AnimeRatingNone  AnimeRating = "none"
	AnimeRatingG     AnimeRating = "g"
	AnimeRatingPG    AnimeRating = "pg"
	AnimeRatingPG13  AnimeRating = "pg_13"
	AnimeRatingR     AnimeRating = "r"
	AnimeRatingRPlus AnimeRating = "r_plus"
	AnimeRatingRX    AnimeRating = "rx"
)

var animeRatings = newSet("none", "g", "pg", "pg_13", "r", "r_plus", "rx")

func (v AnimeRating) String() string { return string(v) }
func (v AnimeRating) Valid() bool    { return animeRatings.hasNegatable(string(v)) }

// Censorship toggles adult content in catalogue listings.
type Censorship string

const (
	Censored   Censorship = "true"
	Uncensored Censorship = "false"
)

func (v Censorship) String() string { return string(v) }
func (v Censorship) Valid() bool    { return v == Censored || v == Uncensored }

// ListStatus filters catalogue listings by the current user's list
// (the "mylist" parameter). Negatable.
type ListStatus string

const (
	ListPlanned    ListStatus = "planned"
	ListWatching   ListStatus = "watching"
	ListRewatching ListStatus = "rewatching"
	ListCompleted  ListStatus = "completed"
	ListOnHold     ListStatus = "on_hold"
	ListDropped    ListStatus = "dropped"
)

var listStatuses = newSet("planned", "watching", "rewatching", "completed", "on_hold", "dropped")

func (v ListStatus) String() string { return string(v) }
func (v ListStatus) Valid() bool    { return listStatuses.hasNegatable(string(v)) }
