package enums

// MessageType filters a user's mailbox.
type MessageType string

const (
	MessageInbox         MessageType = "inbox"
	MessagePrivate       MessageType = "private"
	MessageSent          MessageType = "sent"
	MessageNews          MessageType = "news"
	MessageNotifications MessageType = "notifications"
)

var messageTypes = newSet("inbox", "private", "sent", "news", "notifications")

func (v MessageType) String() string { return string(v) }
func (v MessageType) Valid() bool    { return messageTypes.has(string(v)) }

// CommentableType names what a comment is attached to.
type CommentableType string

const (
	CommentableTopic     CommentableType = "Topic"
	CommentableUser      CommentableType = "User"
	CommentableReview    CommentableType = "Review"
	CommentableAnime     CommentableType = "Anime"
	CommentableManga     CommentableType = "Manga"
	CommentableCharacter CommentableType = "Character"
	CommentablePerson    CommentableType = "Person"
)

var commentableTypes = newSet("Topic", "User", "Review", "Anime", "Manga", "Character", "Person")

func (v CommentableType) String() string { return string(v) }
func (v CommentableType) Valid() bool    { return commentableTypes.has(string(v)) }

// FavoriteType names what can be added to favourites.
type FavoriteType string

const (
	FavoriteAnime     FavoriteType = "Anime"
	FavoriteManga     FavoriteType = "Manga"
	FavoriteRanobe    FavoriteType = "Ranobe"
	FavoritePerson    FavoriteType = "Person"
	FavoriteCharacter FavoriteType = "Character"
)

var favoriteTypes = newSet("Anime", "Manga", "Ranobe", "Person", "Character")

func (v FavoriteType) String() string { return string(v) }
func (v FavoriteType) Valid() bool    { return favoriteTypes.has(string(v)) }

// PersonKind narrows a Person favourite.
type PersonKind string

const (
	PersonCommon   PersonKind = "common"
	PersonSeyu     PersonKind = "seyu"
	PersonMangaka  PersonKind = "mangaka"
	PersonProducer PersonKind = "producer"
	PersonPerson   PersonKind = "person"
)

var personKinds = newSet("common", "seyu", "mangaka", "producer", "person")

func (v PersonKind) String() string { return string(v) }
func (v PersonKind) Valid() bool    { return personKinds.has(string(v)) }

// HistoryTarget filters a user's history.
type HistoryTarget string

const (
	HistoryAnime HistoryTarget = "Anime"
	HistoryManga HistoryTarget = "Manga"
)

func (v HistoryTarget) String() string { return string(v) }
func (v HistoryTarget) Valid() bool    { return v == HistoryAnime || v == HistoryManga }

// VideoKind classifies anime videos.
type VideoKind string

const (
	VideoPV               VideoKind = "pv"
	VideoCharacterTrailer VideoKind = "character_trailer"
	VideoCM               VideoKind = "cm"
	VideoOP               VideoKind = "op"
	VideoED               VideoKind = "ed"
	VideoOPEDClip         VideoKind = "op_ed_clip"
	VideoClip             VideoKind = "clip"
	VideoOther            VideoKind = "other"
	VideoEpisodePreview   VideoKind = "episode_preview"
)

var videoKinds = newSet("pv", "character_trailer", "cm", "op", "ed", "op_ed_clip", "clip", "other", "episode_preview")

func (v VideoKind) String() string { return string(v) }
func (v VideoKind) Valid() bool    { return videoKinds.has(string(v)) }

// ClubPolicy is a club permission setting. Join policy accepts the invite
// values, the others accept members and admins.
type ClubPolicy string

const (
	PolicyFree         ClubPolicy = "free"
	PolicyMembers      ClubPolicy = "members"
	PolicyAdmins       ClubPolicy = "admins"
	PolicyMemberInvite ClubPolicy = "member_invite"
	PolicyAdminInvite  ClubPolicy = "admin_invite"
	PolicyOwnerInvite  ClubPolicy = "owner_invite"
)

var clubPolicies = newSet("free", "members", "admins", "member_invite", "admin_invite", "owner_invite")

func (v ClubPolicy) String() string { return string(v) }
func (v ClubPolicy) Valid() bool    { return clubPolicies.has(string(v)) }
