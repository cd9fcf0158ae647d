package enums

// TopicType is the server-side class of a topic.
type TopicType string

const (
	TopicRegular        TopicType = "Topic"
	TopicClubUser       TopicType = "Topics::ClubUserTopic"
	TopicEntry          TopicType = "Topics::EntryTopic"
	TopicNews           TopicType = "Topics::NewsTopic"
	TopicAnime          TopicType = "Topics::EntryTopics::AnimeTopic"
	TopicArticle        TopicType = "Topics::EntryTopics::ArticleTopic"
	TopicCharacter      TopicType = "Topics::EntryTopics::CharacterTopic"
	TopicClubPage       TopicType = "Topics::EntryTopics::ClubPageTopic"
	TopicClub           TopicType = "Topics::EntryTopics::ClubTopic"
	TopicCollection     TopicType = "Topics::EntryTopics::CollectionTopic"
	TopicContest        TopicType = "Topics::EntryTopics::ContestTopic"
	TopicCosplayGallery TopicType = "Topics::EntryTopics::CosplayGalleryTopic"
	TopicManga          TopicType = "Topics::EntryTopics::MangaTopic"
	TopicPerson         TopicType = "Topics::EntryTopics::PersonTopic"
	TopicRanobe         TopicType = "Topics::EntryTopics::RanobeTopic"
	TopicCritique       TopicType = "Topics::EntryTopics::CritiqueTopic"
	TopicReview         TopicType = "Topics::EntryTopics::ReviewTopic"
	TopicContestStatus  TopicType = "Topics::NewsTopics::ContestStatusTopic"
)

var topicTypes = newSet(
	"Topic", "Topics::ClubUserTopic", "Topics::EntryTopic", "Topics::NewsTopic",
	"Topics::EntryTopics::AnimeTopic", "Topics::EntryTopics::ArticleTopic",
	"Topics::EntryTopics::CharacterTopic", "Topics::EntryTopics::ClubPageTopic",
	"Topics::EntryTopics::ClubTopic", "Topics::EntryTopics::CollectionTopic",
	"Topics::EntryTopics::ContestTopic", "Topics::EntryTopics::CosplayGalleryTopic",
	"Topics::EntryTopics::MangaTopic", "Topics::EntryTopics::PersonTopic",
	"Topics::EntryTopics::RanobeTopic", "Topics::EntryTopics::CritiqueTopic",
	"Topics::EntryTopics::ReviewTopic", "Topics::NewsTopics::ContestStatusTopic",
)

func (v TopicType) String() string { return string(v) }
func (v TopicType) Valid() bool    { return topicTypes.has(string(v)) }

// Forum selects a forum section.
type Forum string

const (
	ForumAll         Forum = "all"
	ForumAnimanga    Forum = "animanga"
	ForumSite        Forum = "site"
	ForumGames       Forum = "games"
	ForumVN          Forum = "vn"
	ForumContests    Forum = "contests"
	ForumOfftopic    Forum = "offtopic"
	ForumClubs       Forum = "clubs"
	ForumMyClubs     Forum = "my_clubs"
	ForumCritiques   Forum = "critiques"
	ForumNews        Forum = "news"
	ForumCollections Forum = "collections"
	ForumArticles    Forum = "articles"
	ForumCosplay     Forum = "cosplay"
)

var forums = newSet("all", "animanga", "site", "games", "vn", "contests", "offtopic",
	"clubs", "my_clubs", "critiques", "news", "collections", "articles", "cosplay")

func (v Forum) String() string { return string(v) }
func (v Forum) Valid() bool    { return forums.has(string(v)) }

// LinkedType names the entity a topic, comment target or favourite refers to.
type LinkedType string

const (
	LinkedAnime          LinkedType = "Anime"
	LinkedManga          LinkedType = "Manga"
	LinkedRanobe         LinkedType = "Ranobe"
	LinkedCharacter      LinkedType = "Character"
	LinkedPerson         LinkedType = "Person"
	LinkedClub           LinkedType = "Club"
	LinkedClubPage       LinkedType = "ClubPage"
	LinkedCritique       LinkedType = "Critique"
	LinkedReview         LinkedType = "Review"
	LinkedContest        LinkedType = "Contest"
	LinkedCosplayGallery LinkedType = "CosplayGallery"
	LinkedCollection     LinkedType = "Collection"
	LinkedArticle        LinkedType = "Article"
)

var linkedTypes = newSet("Anime", "Manga", "Ranobe", "Character", "Person", "Club", "ClubPage",
	"Critique", "Review", "Contest", "CosplayGallery", "Collection", "Article")

func (v LinkedType) String() string { return string(v) }
func (v LinkedType) Valid() bool    { return linkedTypes.has(string(v)) }
