package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Mark
	Link
	Search
	WatchLater
	Star
	Movie
	TV
	Play
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "👾",
		nerd:    "",
		plain:   "...",
		kaomoji: "(o_O)",
		squares: "🟪",
	},
	Mark: {
		emoji:   "🔖",
		nerd:    "",
		plain:   "*",
		kaomoji: "(＾▽＾)",
		squares: "🟨",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "->",
		kaomoji: "(°▽°)→",
		squares: "🟦",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(⊙_☉)",
		squares: "🟫",
	},
	WatchLater: {
		emoji:   "⏰",
		nerd:    "",
		plain:   "+",
		kaomoji: "(￣ω￣)",
		squares: "🟧",
	},
	Star: {
		emoji:   "⭐",
		nerd:    "",
		plain:   "*",
		kaomoji: "(☆▽☆)",
		squares: "🟨",
	},
	Movie: {
		emoji:   "🎬",
		nerd:    "",
		plain:   "M",
		kaomoji: "[▶]",
		squares: "⬛",
	},
	TV: {
		emoji:   "📺",
		nerd:    "",
		plain:   "TV",
		kaomoji: "[□]",
		squares: "⬜",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "ᕕ( ᐛ )ᕗ",
		squares: "🟩",
	},
}
