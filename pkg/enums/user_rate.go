package enums

// UserRateStatus is the state of a title in a user's list.
type UserRateStatus string

const (
	UserRatePlanned    UserRateStatus = "planned"
	UserRateWatching   UserRateStatus = "watching"
	UserRateRewatching UserRateStatus = "rewatching"
	UserRateCompleted  UserRateStatus = "completed"
	UserRateOnHold     UserRateStatus = "on_hold"
	UserRateDropped    UserRateStatus = "dropped"
)

func (v UserRateStatus) String() string { return string(v) }
func (v UserRateStatus) Valid() bool    { return listStatuses.has(string(v)) }

// UserRateTarget is the kind of title a user rate points at.
type UserRateTarget string

const (
	UserRateTargetAnime UserRateTarget = "Anime"
	UserRateTargetManga UserRateTarget = "Manga"
)

func (v UserRateTarget) String() string { return string(v) }
func (v UserRateTarget) Valid() bool    { return v == UserRateTargetAnime || v == UserRateTargetManga }

// UserRateType selects the list reset by the v1 user_rates cleanup call.
type UserRateType string

const (
	UserRateTypeAnime UserRateType = "anime"
	UserRateTypeManga UserRateType = "manga"
)

func (v UserRateType) String() string { return string(v) }
func (v UserRateType) Valid() bool    { return v == UserRateTypeAnime || v == UserRateTypeManga }
