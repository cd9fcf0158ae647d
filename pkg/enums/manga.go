package enums

// MangaOrder sorts manga and ranobe listings.
type MangaOrder string

const (
	MangaOrderID            MangaOrder = "id"
	MangaOrderIDDesc        MangaOrder = "id_desc"
	MangaOrderRanked        MangaOrder = "ranked"
	MangaOrderKind          MangaOrder = "kind"
	MangaOrderPopularity    MangaOrder = "popularity"
	MangaOrderName          MangaOrder = "name"
	MangaOrderAiredOn       MangaOrder = "aired_on"
	MangaOrderVolumes       MangaOrder = "volumes"
	MangaOrderChapters      MangaOrder = "chapters"
	MangaOrderStatus        MangaOrder = "status"
	MangaOrderCreatedAt     MangaOrder = "created_at"
	MangaOrderCreatedAtDesc MangaOrder = "created_at_desc"
	MangaOrderRandom        MangaOrder = "random"
)

var mangaOrders = newSet("id", "id_desc", "ranked", "kind", "popularity", "name", "aired_on",
	"volumes", "chapters", "status", "created_at", "created_at_desc", "random")

func (v MangaOrder) String() string { return string(v) }
func (v MangaOrder) Valid() bool    { return mangaOrders.has(string(v)) }

// MangaKind filters manga by format. Negatable.
type MangaKind string

const (
	MangaKindManga      MangaKind = "manga"
	MangaKindManhwa     MangaKind = "manhwa"
	MangaKindManhua     MangaKind = "manhua"
	MangaKindLightNovel MangaKind = "light_novel"
	MangaKindNovel      MangaKind = "novel"
	MangaKindOneShot    MangaKind = "one_shot"
	MangaKindDoujin     MangaKind = "doujin"
)

var mangaKinds = newSet("manga", "manhwa", "manhua", "light_novel", "novel", "one_shot", "doujin")

func (v MangaKind) String() string { return string(v) }
func (v MangaKind) Valid() bool    { return mangaKinds.hasNegatable(string(v)) }

// IsRanobe reports whether the kind is published under /api/ranobe.
func (v MangaKind) IsRanobe() bool {
	return v == MangaKindLightNovel || v == MangaKindNovel
}

// MangaStatus filters manga and ranobe by publication state. Negatable.
type MangaStatus string

const (
	MangaStatusAnons        MangaStatus = "anons"
	MangaStatusOngoing      MangaStatus = "ongoing"
	MangaStatusReleased     MangaStatus = "released"
	MangaStatusPaused       MangaStatus = "paused"
	MangaStatusDiscontinued MangaStatus = "discontinued"
)

var mangaStatuses = newSet("anons", "ongoing", "released", "paused", "discontinued")

func (v MangaStatus) String() string { return string(v) }
func (v MangaStatus) Valid() bool    { return mangaStatuses.hasNegatable(string(v)) }
