package book

// 体裁白名单
// 设计说明:
// 创建接口只接受7个值，整体替换接口接受60个值。这一不对称是
// 源系统的既有对外行为，客户端可能依赖，保留不做统一。
// 查询接口的genre过滤沿用创建侧的7值集合。

// creationGenres 创建图书时接受的体裁(窄集合)
var creationGenres = []string{
	"Fiction", "Children", "Biography", "Science",
	"Science Fiction", "Fantasy", "Other",
}

// replacementGenres 整体替换时接受的体裁(宽集合)
var replacementGenres = []string{
	"Fiction", "Non-fiction", "Science Fiction", "Fantasy", "Romance",
	"Mystery", "Thriller", "Horror", "Poetry", "Biography", "Autobiography",
	"Historical Fiction", "Crime", "Adventure", "Western", "Humor", "Satire",
	"Drama", "Action", "Children's", "Young Adult", "Self-help", "Philosophy",
	"Science", "Technology", "Engineering", "Mathematics", "Business",
	"Finance", "Economics", "Politics", "History", "Art", "Music", "Film",
	"Sports", "Cooking", "Travel", "Religion", "Spirituality", "Health",
	"Fitness", "Psychology", "Education", "Reference", "Comics",
	"Graphic Novel", "Anthology", "Short Stories", "Essays",
	"Literary Criticism", "Journalism", "Memoir", "True Crime",
	"Encyclopedia", "Dictionaries", "Textbooks", "Manuals", "Guides",
	"Directories",
}

// IsCreationGenre 校验体裁是否允许用于创建
func IsCreationGenre(genre string) bool {
	return containsGenre(creationGenres, genre)
}

// IsReplacementGenre 校验体裁是否允许用于整体替换
func IsReplacementGenre(genre string) bool {
	return containsGenre(replacementGenres, genre)
}

// IsQueryGenre 校验体裁是否允许用于查询过滤(与创建侧同集合)
func IsQueryGenre(genre string) bool {
	return containsGenre(creationGenres, genre)
}

func containsGenre(genres []string, genre string) bool {
	for _, g := range genres {
		if g == genre {
			return true
		}
	}
	return false
}
